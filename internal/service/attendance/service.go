package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	adminLogRepo   adminlog.AdminLogRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	adminLogRepo adminlog.AdminLogRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		adminLogRepo:   adminLogRepo,
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

func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.RecordResponse{}, attendance.ErrEmployeeNotActive
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	if date.After(time.Now()) {
		return attendance.RecordResponse{}, attendance.ErrDateInFuture
	}

	rec := attendance.Record{
		EmployeeID: emp.ID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Remarks:    req.Remarks,
	}
	if req.CheckIn != nil {
		t := combineDateTime(date, *req.CheckIn)
		rec.CheckIn = &t
	}
	if req.CheckOut != nil {
		t := combineDateTime(date, *req.CheckOut)
		rec.CheckOut = &t
	}

	created, err := s.attendanceRepo.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.logAdminAction(ctx, adminlog.ActionAttendanceMarked,
		fmt.Sprintf("Marked %s %s for %s", req.Status, req.Date, emp.ID))

	return attendance.ToRecordResponse(created), nil
}

func (s *AttendanceServiceImpl) Amend(ctx context.Context, req attendance.AmendAttendanceRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := s.attendanceRepo.GetByEmployeeDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := s.attendanceRepo.Update(ctx, attendance.Record{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Remarks:    req.Remarks,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.logAdminAction(ctx, adminlog.ActionAttendanceAmended,
		fmt.Sprintf("Amended %s from %s to %s for %s", req.Date, existing.Status, req.Status, req.EmployeeID))

	return attendance.ToRecordResponse(updated), nil
}

func (s *AttendanceServiceImpl) ListEmployeeMonth(ctx context.Context, employeeID string, month string) ([]attendance.RecordResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return s.listMonth(ctx, employeeID, month)
}

func (s *AttendanceServiceImpl) ListOwnMonth(ctx context.Context, month string) ([]attendance.RecordResponse, error) {
	employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.listMonth(ctx, employeeID, month)
}

func (s *AttendanceServiceImpl) ListMonth(ctx context.Context, month string) ([]attendance.RecordResponse, error) {
	if !validMonth(month) {
		return nil, attendance.ErrInvalidMonth
	}

	records, err := s.attendanceRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToRecordResponse(rec))
	}

	return responses, nil
}

func (s *AttendanceServiceImpl) listMonth(ctx context.Context, employeeID string, month string) ([]attendance.RecordResponse, error) {
	if !validMonth(month) {
		return nil, attendance.ErrInvalidMonth
	}

	records, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToRecordResponse(rec))
	}

	return responses, nil
}

func (s *AttendanceServiceImpl) GetMonthSummary(ctx context.Context, employeeID string, month string) (attendance.MonthSummaryResponse, error) {
	if !validMonth(month) {
		return attendance.MonthSummaryResponse{}, attendance.ErrInvalidMonth
	}

	summary, err := s.attendanceRepo.GetMonthSummary(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthSummaryResponse{}, err
	}

	effective, err := s.EffectiveDaysPresent(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthSummaryResponse{}, err
	}

	return attendance.MonthSummaryResponse{
		EmployeeID:    summary.EmployeeID,
		Month:         summary.Month,
		Present:       summary.Present,
		Absent:        summary.Absent,
		Leave:         summary.Leave,
		HalfDay:       summary.HalfDay,
		EffectiveDays: effective,
	}, nil
}

func (s *AttendanceServiceImpl) EffectiveDaysPresent(ctx context.Context, employeeID string, month string) (decimal.Decimal, error) {
	if !validMonth(month) {
		return decimal.Zero, attendance.ErrInvalidMonth
	}

	records, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		return decimal.Zero, err
	}

	// Unknown employees and unmarked months legitimately aggregate to zero.
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Status.Weight())
	}

	return total, nil
}

func (s *AttendanceServiceImpl) logAdminAction(ctx context.Context, action adminlog.Action, description string) {
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

func combineDateTime(date time.Time, hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}
