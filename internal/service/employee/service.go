package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/epayroll/payroll-backend-go/internal/pkg/email"
	"github.com/epayroll/payroll-backend-go/internal/pkg/validator"
	"github.com/epayroll/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	adminLogRepo adminlog.AdminLogRepository
	emailService email.EmailService
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	adminLogRepo adminlog.AdminLogRepository,
	emailService email.EmailService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		adminLogRepo: adminLogRepo,
		emailService: emailService,
	}
}

// Helper to get employee_id from JWT context
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

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joiningDate := time.Now()
	if req.JoiningDate != "" {
		joiningDate, _ = validator.IsValidDate(req.JoiningDate)
	}

	role := employee.RoleEmployee
	if req.Role == string(employee.RoleAdmin) {
		role = employee.RoleAdmin
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		id, err := s.employeeRepo.NextID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to allocate employee ID: %w", err)
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			ID:           id,
			Name:         req.Name,
			Email:        strings.ToLower(req.Email),
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Department:   req.Department,
			Designation:  req.Designation,
			JoiningDate:  joiningDate,
			BaseSalary:   req.BaseSalary,
			Role:         role,
			Status:       employee.StatusActive,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logAdminAction(ctx, adminlog.ActionEmployeeAdded,
		fmt.Sprintf("Added employee %s (%s)", created.ID, created.Name))

	if s.emailService != nil {
		if err := s.emailService.SendWelcome(created.Email, created.Name, created.ID); err != nil {
			slog.Warn("Failed to send welcome email", "employee_id", created.ID, "error", err)
		}
	}

	return employee.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) GetProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetByID(ctx, employeeID)
}

func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logAdminAction(ctx, adminlog.ActionEmployeeUpdated,
		fmt.Sprintf("Updated employee %s", req.ID))

	return s.GetByID(ctx, req.ID)
}

func (s *EmployeeServiceImpl) Activate(ctx context.Context, id string) error {
	if err := s.employeeRepo.SetStatus(ctx, id, employee.StatusActive); err != nil {
		return err
	}

	s.logAdminAction(ctx, adminlog.ActionEmployeeActivated,
		fmt.Sprintf("Activated employee %s", id))
	return nil
}

func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.employeeRepo.SetStatus(ctx, id, employee.StatusInactive); err != nil {
		return err
	}

	s.logAdminAction(ctx, adminlog.ActionEmployeeDeactivated,
		fmt.Sprintf("Deactivated employee %s", id))
	return nil
}

func (s *EmployeeServiceImpl) logAdminAction(ctx context.Context, action adminlog.Action, description string) {
	adminID, err := getClaimsFromContext(ctx)
	if err != nil {
		return
	}

	logErr := s.adminLogRepo.Create(ctx, adminlog.AdminLog{
		AdminID:     adminID,
		Action:      action,
		Description: description,
		IPAddress:   adminlog.ClientIPFromContext(ctx),
	})
	if logErr != nil {
		slog.Error("Failed to write admin log", "action", action, "error", logErr)
	}
}
