package http

import (
	"log/slog"
	"os"

	"github.com/epayroll/payroll-backend-go/internal/config"
	"github.com/epayroll/payroll-backend-go/internal/handler/http/middleware"
	"github.com/epayroll/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
	Admin      AdminHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.ClientIP)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/register/verify", h.Auth.VerifyRegistration)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/forgot-password/verify", h.Auth.VerifyReset)
			r.Post("/reset-password", h.Auth.ResetPassword)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetProfile)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.GetByID)
					r.Put("/{id}", h.Employee.Update)
					r.Post("/{id}/activate", h.Employee.Activate)
					r.Post("/{id}/deactivate", h.Employee.Deactivate)

					r.Get("/{id}/attendance", h.Attendance.ListEmployeeMonth)
					r.Get("/{id}/attendance/summary", h.Attendance.GetMonthSummary)
					r.Get("/{id}/payslips", h.Payroll.ListEmployee)
					r.Get("/{id}/salary-preview", h.Payroll.Preview)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/me", h.Attendance.ListOwnMonth)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.ListMonth)
					r.Post("/", h.Attendance.Mark)
					r.Put("/", h.Attendance.Amend)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/payslips/me", h.Payroll.ListOwn)
				r.Get("/payslips/{transactionID}/download", h.Payroll.Download)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/run", h.Payroll.Run)
					r.Get("/", h.Payroll.ListMonth)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/me", h.Dashboard.Employee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/admin", h.Dashboard.Admin)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/backup", h.Admin.RunBackup)
				r.Get("/logs", h.Admin.ListLogs)
			})
		})
	})
	return r
}
