package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/config"
	appHTTP "github.com/epayroll/payroll-backend-go/internal/handler/http"
	"github.com/epayroll/payroll-backend-go/internal/pkg/cron"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/epayroll/payroll-backend-go/internal/pkg/email"
	"github.com/epayroll/payroll-backend-go/internal/pkg/jwt"
	"github.com/epayroll/payroll-backend-go/internal/pkg/payslip"
	"github.com/epayroll/payroll-backend-go/internal/pkg/storage"
	"github.com/epayroll/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/epayroll/payroll-backend-go/internal/service/attendance"
	authService "github.com/epayroll/payroll-backend-go/internal/service/auth"
	backupService "github.com/epayroll/payroll-backend-go/internal/service/backup"
	dashboardService "github.com/epayroll/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/epayroll/payroll-backend-go/internal/service/employee"
	payrollService "github.com/epayroll/payroll-backend-go/internal/service/payroll"
)

const companyName = "ePayroll"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal("Failed to bootstrap schema:", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	otpRepo := postgresql.NewOTPRepository(db)
	pendingRepo := postgresql.NewPendingRegistrationRepository(db)
	adminLogRepo := postgresql.NewAdminLogRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	payslipGen := payslip.NewPDFGenerator(companyName)
	calculator := payrollService.NewSalaryCalculator()

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, adminLogRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, adminLogRepo, emailService)
	authSvc := authService.NewAuthService(db, employeeRepo, otpRepo, pendingRepo, jwtService, emailService)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, attendanceSvc, adminLogRepo, calculator, payslipGen, fileStorage)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, payrollRepo, adminLogRepo, attendanceSvc)
	backupSvc := backupService.NewBackupService(employeeRepo, payrollRepo, adminLogRepo, fileStorage,
		filepath.Join(cfg.Storage.BasePath, "payslips"))

	scheduler := cron.NewScheduler()
	scheduler.AddJob("auth-cleanup", 30*time.Minute, cron.NewAuthCleanupJob(otpRepo, pendingRepo))
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Admin:      appHTTP.NewAdminHandler(backupSvc, adminLogRepo),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
