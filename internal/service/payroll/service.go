package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/epayroll/payroll-backend-go/internal/pkg/payslip"
	"github.com/epayroll/payroll-backend-go/internal/pkg/storage"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	db                *database.DB
	payrollRepo       payroll.PayrollRepository
	employeeRepo      employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	adminLogRepo      adminlog.AdminLogRepository
	calculator        *SalaryCalculator
	payslipGen        payslip.Generator
	fileStorage       storage.FileStorage

	// Guards against two concurrent runs of the same month.
	mu           sync.Mutex
	activeMonths map[string]bool
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	adminLogRepo adminlog.AdminLogRepository,
	calculator *SalaryCalculator,
	payslipGen payslip.Generator,
	fileStorage storage.FileStorage,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                db,
		payrollRepo:       payrollRepo,
		employeeRepo:      employeeRepo,
		attendanceService: attendanceService,
		adminLogRepo:      adminLogRepo,
		calculator:        calculator,
		payslipGen:        payslipGen,
		fileStorage:       fileStorage,
		activeMonths:      make(map[string]bool),
	}
}

// Helper to get employee_id and role from JWT context
func getClaimsFromContext(ctx context.Context) (employeeID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	role, _ = claims["role"].(string)

	return employeeID, role, nil
}

func (s *PayrollServiceImpl) RunPayroll(ctx context.Context, req payroll.RunPayrollRequest) (payroll.RunSummary, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunSummary{}, err
	}

	if !s.acquireMonth(req.Month) {
		return payroll.RunSummary{}, payroll.ErrRunInProgress
	}
	defer s.releaseMonth(req.Month)

	totalDays, err := payroll.DaysInMonth(req.Month)
	if err != nil {
		return payroll.RunSummary{}, err
	}

	employees, err := s.employeeRepo.List(ctx, true)
	if err != nil {
		return payroll.RunSummary{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	summary := payroll.RunSummary{Month: req.Month}
	for _, emp := range employees {
		outcome := s.processEmployee(ctx, emp, req.Month, totalDays)
		switch outcome {
		case outcomeSuccess:
			summary.Success++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		case outcomeSuccessNoAttendance:
			summary.Success++
			summary.NoAttendance++
		}
	}

	slog.Info("Payroll run finished",
		"month", req.Month,
		"success", summary.Success,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"no_attendance", summary.NoAttendance,
	)

	s.logAdminAction(ctx, adminlog.ActionPayrollProcessed,
		fmt.Sprintf("Processed payroll %s: %d success, %d skipped, %d failed",
			req.Month, summary.Success, summary.Skipped, summary.Failed))

	return summary, nil
}

type runOutcome int

const (
	outcomeSuccess runOutcome = iota
	outcomeSuccessNoAttendance
	outcomeSkipped
	outcomeFailed
)

// processEmployee handles exactly one employee month. Any failure is
// contained here so the run always continues with the next employee.
func (s *PayrollServiceImpl) processEmployee(ctx context.Context, emp employee.Employee, month string, totalDays int) runOutcome {
	exists, err := s.payrollRepo.Exists(ctx, emp.ID, month)
	if err != nil {
		slog.Error("Payroll existence check failed", "employee_id", emp.ID, "month", month, "error", err)
		return outcomeFailed
	}
	if exists {
		return outcomeSkipped
	}

	if emp.BaseSalary.IsZero() {
		slog.Error("Skipping ledger entry", "employee_id", emp.ID, "month", month, "error", employee.ErrEmployeeHasNoSalary)
		return outcomeFailed
	}

	effectiveDays, err := s.attendanceService.EffectiveDaysPresent(ctx, emp.ID, month)
	if err != nil {
		slog.Error("Attendance aggregation failed", "employee_id", emp.ID, "month", month, "error", err)
		return outcomeFailed
	}

	noAttendance := effectiveDays.IsZero()
	if noAttendance {
		slog.Warn("No attendance recorded, processing with zero days", "employee_id", emp.ID, "month", month)
	}

	breakdown := s.calculator.Calculate(emp.BaseSalary, effectiveDays, totalDays)

	// Artifact generation failure is non-fatal: the ledger entry is still
	// written, just without a payslip path.
	pdfPath := s.generatePayslip(ctx, emp, month, breakdown)

	rec := payroll.PayrollRecord{
		TransactionID: uuid.Must(uuid.NewV7()).String(),
		EmployeeID:    emp.ID,
		Month:         month,
		DaysPresent:   effectiveDays,
		TotalDays:     totalDays,
		EarnedBasic:   breakdown.EarnedBasic,
		HRA:           breakdown.HRA,
		Bonus:         breakdown.Bonus,
		GrossSalary:   breakdown.GrossSalary,
		EPF:           breakdown.EPF,
		TDS:           breakdown.TDS,
		LOPDeduction:  breakdown.LOPDeduction,
		NetSalary:     breakdown.NetSalary,
		PDFPath:       pdfPath,
		PaymentDate:   time.Now(),
		Status:        payroll.PayrollStatusProcessed,
	}

	if _, err := s.payrollRepo.Create(ctx, rec); err != nil {
		// Lost a race with another writer; the month is already covered.
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
			return outcomeSkipped
		}
		slog.Error("Failed to save payroll record", "employee_id", emp.ID, "month", month, "error", err)
		return outcomeFailed
	}

	if noAttendance {
		return outcomeSuccessNoAttendance
	}
	return outcomeSuccess
}

// generatePayslip renders and stores the PDF, returning nil on any failure.
func (s *PayrollServiceImpl) generatePayslip(ctx context.Context, emp employee.Employee, month string, breakdown payroll.SalaryBreakdown) *string {
	data := payslip.Data{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Month:        month,
		DaysPresent:  breakdown.EffectiveDays,
		TotalDays:    breakdown.TotalDays,
		EarnedBasic:  breakdown.EarnedBasic,
		HRA:          breakdown.HRA,
		Bonus:        breakdown.Bonus,
		GrossSalary:  breakdown.GrossSalary,
		EPF:          breakdown.EPF,
		TDS:          breakdown.TDS,
		LOPDeduction: breakdown.LOPDeduction,
		NetSalary:    breakdown.NetSalary,
	}
	if emp.Department != nil {
		data.Department = *emp.Department
	}
	if emp.Designation != nil {
		data.Designation = *emp.Designation
	}

	content, err := s.payslipGen.Render(data)
	if err != nil {
		slog.Warn("Payslip rendering failed, continuing without artifact",
			"employee_id", emp.ID, "month", month, "error", err)
		return nil
	}

	filePath := fmt.Sprintf("payslips/%s_%s.pdf", emp.ID, month)
	stored, err := s.fileStorage.Upload(ctx, bytes.NewReader(content), filePath, "application/pdf")
	if err != nil {
		slog.Warn("Payslip upload failed, continuing without artifact",
			"employee_id", emp.ID, "month", month, "error", err)
		return nil
	}

	return &stored
}

func (s *PayrollServiceImpl) CalculateSalary(ctx context.Context, employeeID string, month string) (payroll.SalaryBreakdownResponse, error) {
	totalDays, err := payroll.DaysInMonth(month)
	if err != nil {
		return payroll.SalaryBreakdownResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryBreakdownResponse{}, err
	}
	if !emp.IsActive() {
		return payroll.SalaryBreakdownResponse{}, employee.ErrEmployeeInactive
	}

	effectiveDays, err := s.attendanceService.EffectiveDaysPresent(ctx, emp.ID, month)
	if err != nil {
		return payroll.SalaryBreakdownResponse{}, err
	}

	breakdown := s.calculator.Calculate(emp.BaseSalary, effectiveDays, totalDays)

	return payroll.SalaryBreakdownResponse{
		EmployeeID:    emp.ID,
		Month:         month,
		BaseSalary:    breakdown.BaseSalary,
		TotalDays:     breakdown.TotalDays,
		EffectiveDays: breakdown.EffectiveDays,
		PerDayRate:    breakdown.PerDayRate,
		EarnedBasic:   breakdown.EarnedBasic,
		HRA:           breakdown.HRA,
		Bonus:         breakdown.Bonus,
		GrossSalary:   breakdown.GrossSalary,
		EPF:           breakdown.EPF,
		TDS:           breakdown.TDS,
		LOPDeduction:  breakdown.LOPDeduction,
		NetSalary:     breakdown.NetSalary,
	}, nil
}

func (s *PayrollServiceImpl) ListEmployeePayslips(ctx context.Context, employeeID string) ([]payroll.PayrollRecordResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return s.listByEmployee(ctx, employeeID)
}

func (s *PayrollServiceImpl) ListOwnPayslips(ctx context.Context) ([]payroll.PayrollRecordResponse, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.listByEmployee(ctx, employeeID)
}

func (s *PayrollServiceImpl) listByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecordResponse, error) {
	records, err := s.payrollRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.ToRecordResponse(rec))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) ListMonth(ctx context.Context, month string) ([]payroll.PayrollRecordResponse, error) {
	if _, err := payroll.ParseMonth(month); err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.ToRecordResponse(rec))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) DownloadPayslip(ctx context.Context, transactionID string) (io.ReadCloser, string, error) {
	requesterID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	rec, err := s.payrollRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}

	if rec.EmployeeID != requesterID && role != string(employee.RoleAdmin) {
		return nil, "", payroll.ErrNotRecordOwner
	}

	if rec.PDFPath == nil {
		return nil, "", payroll.ErrPayslipNotAvailable
	}

	file, err := s.fileStorage.Download(ctx, *rec.PDFPath)
	if err != nil {
		return nil, "", payroll.ErrPayslipNotAvailable
	}

	return file, path.Base(*rec.PDFPath), nil
}

func (s *PayrollServiceImpl) acquireMonth(month string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeMonths[month] {
		return false
	}
	s.activeMonths[month] = true
	return true
}

func (s *PayrollServiceImpl) releaseMonth(month string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeMonths, month)
}

func (s *PayrollServiceImpl) logAdminAction(ctx context.Context, action adminlog.Action, description string) {
	adminID, _, err := getClaimsFromContext(ctx)
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
