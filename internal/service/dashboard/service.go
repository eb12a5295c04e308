package dashboard

import (
	"context"
	"fmt"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/dashboard"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

const (
	payrollTotalMonths = 6
	recentLogLimit     = 20
	recentPayslipLimit = 3
)

type DashboardServiceImpl struct {
	dashboardRepo     dashboard.DashboardRepository
	payrollRepo       payroll.PayrollRepository
	adminLogRepo      adminlog.AdminLogRepository
	attendanceService attendance.AttendanceService
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	payrollRepo payroll.PayrollRepository,
	adminLogRepo adminlog.AdminLogRepository,
	attendanceService attendance.AttendanceService,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo:     dashboardRepo,
		payrollRepo:       payrollRepo,
		adminLogRepo:      adminLogRepo,
		attendanceService: attendanceService,
	}
}

func getClaimsFromContext(ctx context.Context) (employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context) (dashboard.AdminDashboardResponse, error) {
	var (
		counts      dashboard.EmployeeCounts
		departments []dashboard.DepartmentCount
		totals      []payroll.MonthlyTotal
		logs        []adminlog.AdminLog
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.dashboardRepo.GetEmployeeCounts(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = s.dashboardRepo.GetDepartmentCounts(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.payrollRepo.GetMonthlyTotals(gCtx, payrollTotalMonths)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.adminLogRepo.ListRecent(gCtx, recentLogLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}

	resp := dashboard.AdminDashboardResponse{
		TotalEmployees:    counts.Total,
		ActiveEmployees:   counts.Active,
		InactiveEmployees: counts.Inactive,
		Departments:       departments,
		PayrollTotals:     make([]payroll.MonthlyTotalResponse, 0, len(totals)),
		RecentLogs:        make([]adminlog.LogResponse, 0, len(logs)),
	}
	for _, t := range totals {
		resp.PayrollTotals = append(resp.PayrollTotals, payroll.MonthlyTotalResponse{
			Month:    t.Month,
			Records:  t.Records,
			TotalNet: t.TotalNet,
		})
	}
	for _, l := range logs {
		resp.RecentLogs = append(resp.RecentLogs, adminlog.ToResponse(l))
	}

	return resp, nil
}

func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, month string) (dashboard.EmployeeDashboardResponse, error) {
	employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	if month == "" {
		month = payroll.CurrentMonth()
	}

	summary, err := s.attendanceService.GetMonthSummary(ctx, employeeID, month)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	records, err := s.payrollRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}
	if len(records) > recentPayslipLimit {
		records = records[:recentPayslipLimit]
	}

	payslips := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, rec := range records {
		payslips = append(payslips, payroll.ToRecordResponse(rec))
	}

	return dashboard.EmployeeDashboardResponse{
		Month:          month,
		Present:        summary.Present,
		Absent:         summary.Absent,
		Leave:          summary.Leave,
		HalfDay:        summary.HalfDay,
		EffectiveDays:  summary.EffectiveDays,
		RecentPayslips: payslips,
	}, nil
}
