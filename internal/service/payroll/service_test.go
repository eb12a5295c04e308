package payroll

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/pkg/payslip"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord // key: employeeID + "|" + month
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	key := rec.EmployeeID + "|" + rec.Month
	if _, ok := f.records[key]; ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}
	rec.CreatedAt = time.Now()
	f.records[key] = rec
	return rec, nil
}

func (f *fakePayrollRepo) Exists(ctx context.Context, employeeID string, month string) (bool, error) {
	_, ok := f.records[employeeID+"|"+month]
	return ok, nil
}

func (f *fakePayrollRepo) GetByTransactionID(ctx context.Context, transactionID string) (payroll.PayrollRecord, error) {
	for _, rec := range f.records {
		if rec.TransactionID == transactionID {
			return rec, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) ListByMonth(ctx context.Context, month string) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, rec := range f.records {
		if rec.Month == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) GetMonthlyTotals(ctx context.Context, months int) ([]payroll.MonthlyTotal, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	if !activeOnly {
		return f.employees, nil
	}
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive() {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetStatus(ctx context.Context, id string, status employee.Status) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return nil
}

func (f *fakeEmployeeRepo) NextID(ctx context.Context) (string, error) {
	return "EMP999", nil
}

// fakeAttendanceService only answers EffectiveDaysPresent; the runner
// touches nothing else.
type fakeAttendanceService struct {
	effectiveDays map[string]decimal.Decimal // key: employeeID + "|" + month
}

func (f *fakeAttendanceService) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, errors.New("not implemented")
}

func (f *fakeAttendanceService) Amend(ctx context.Context, req attendance.AmendAttendanceRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, errors.New("not implemented")
}

func (f *fakeAttendanceService) ListEmployeeMonth(ctx context.Context, employeeID string, month string) ([]attendance.RecordResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) ListOwnMonth(ctx context.Context, month string) ([]attendance.RecordResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) ListMonth(ctx context.Context, month string) ([]attendance.RecordResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) GetMonthSummary(ctx context.Context, employeeID string, month string) (attendance.MonthSummaryResponse, error) {
	return attendance.MonthSummaryResponse{}, nil
}

func (f *fakeAttendanceService) EffectiveDaysPresent(ctx context.Context, employeeID string, month string) (decimal.Decimal, error) {
	return f.effectiveDays[employeeID+"|"+month], nil
}

type fakeAdminLogRepo struct {
	logs []adminlog.AdminLog
}

func (f *fakeAdminLogRepo) Create(ctx context.Context, log adminlog.AdminLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeAdminLogRepo) ListRecent(ctx context.Context, limit int) ([]adminlog.AdminLog, error) {
	return f.logs, nil
}

type fakePayslipGen struct {
	fail     bool
	rendered int
}

func (f *fakePayslipGen) Render(data payslip.Data) ([]byte, error) {
	if f.fail {
		return nil, errors.New("render failed")
	}
	f.rendered++
	return []byte("%PDF-1.4 fake"), nil
}

type fakeStorage struct {
	files      map[string][]byte
	failUpload bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	if f.failUpload {
		return "", errors.New("upload failed")
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.files[path] = content
	return path, nil
}

func (f *fakeStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost/" + path, nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

type testEnv struct {
	service     payroll.PayrollService
	payrollRepo *fakePayrollRepo
	attendance  *fakeAttendanceService
	payslipGen  *fakePayslipGen
	storage     *fakeStorage
	adminLogs   *fakeAdminLogRepo
}

func newTestEnv(employees []employee.Employee) *testEnv {
	env := &testEnv{
		payrollRepo: newFakePayrollRepo(),
		attendance:  &fakeAttendanceService{effectiveDays: make(map[string]decimal.Decimal)},
		payslipGen:  &fakePayslipGen{},
		storage:     newFakeStorage(),
		adminLogs:   &fakeAdminLogRepo{},
	}
	env.service = NewPayrollService(
		nil,
		env.payrollRepo,
		&fakeEmployeeRepo{employees: employees},
		env.attendance,
		env.adminLogs,
		NewSalaryCalculator(),
		env.payslipGen,
		env.storage,
	)
	return env
}

func activeEmployee(id string, baseSalary string) employee.Employee {
	return employee.Employee{
		ID:         id,
		Name:       "Employee " + id,
		Email:      id + "@example.com",
		BaseSalary: decimal.RequireFromString(baseSalary),
		Role:       employee.RoleEmployee,
		Status:     employee.StatusActive,
	}
}

func claimsContext(t *testing.T, employeeID string, role string) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().
		Claim("employee_id", employeeID).
		Claim("role", role).
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestRunPayrollProcessesAllActiveEmployees(t *testing.T) {
	env := newTestEnv([]employee.Employee{
		activeEmployee("EMP001", "30000"),
		activeEmployee("EMP002", "45000"),
		activeEmployee("EMP003", "60000"),
	})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)
	env.attendance.effectiveDays["EMP002|2025-06"] = decimal.NewFromInt(30)
	env.attendance.effectiveDays["EMP003|2025-06"] = decimal.RequireFromString("15.5")

	summary, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Success)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.NoAttendance)
	assert.Len(t, env.payrollRepo.records, 3)
	assert.Len(t, env.storage.files, 3)
	assert.Contains(t, env.storage.files, "payslips/EMP001_2025-06.pdf")
}

func TestRunPayrollSecondRunSkipsEverything(t *testing.T) {
	env := newTestEnv([]employee.Employee{
		activeEmployee("EMP001", "30000"),
		activeEmployee("EMP002", "45000"),
	})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)
	env.attendance.effectiveDays["EMP002|2025-06"] = decimal.NewFromInt(22)

	first, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)
	require.Equal(t, 2, first.Success)

	second, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 0, second.Success)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 0, second.Failed)
	assert.Len(t, env.payrollRepo.records, 2)
}

func TestRunPayrollZeroAttendanceStillProcessed(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})

	summary, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.NoAttendance)

	rec := env.payrollRepo.records["EMP001|2025-06"]
	assert.True(t, rec.DaysPresent.IsZero())
	assert.True(t, rec.NetSalary.IsZero(), "full-LOP month should net zero, got %s", rec.NetSalary)
}

func TestRunPayrollZeroSalaryCountsAsFailed(t *testing.T) {
	env := newTestEnv([]employee.Employee{
		activeEmployee("EMP001", "30000"),
		activeEmployee("EMP002", "0"),
	})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	summary, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, env.payrollRepo.records, 1)
}

func TestRunPayrollSkipsInactiveEmployees(t *testing.T) {
	inactive := activeEmployee("EMP002", "45000")
	inactive.Status = employee.StatusInactive

	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000"), inactive})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	summary, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Success)
	assert.Len(t, env.payrollRepo.records, 1)
	_, exists := env.payrollRepo.records["EMP002|2025-06"]
	assert.False(t, exists)
}

func TestRunPayrollRenderFailureIsNonFatal(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)
	env.payslipGen.fail = true

	summary, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Success)
	rec := env.payrollRepo.records["EMP001|2025-06"]
	assert.Nil(t, rec.PDFPath)
}

func TestRunPayrollUploadFailureIsNonFatal(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)
	env.storage.failUpload = true

	summary, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Success)
	rec := env.payrollRepo.records["EMP001|2025-06"]
	assert.Nil(t, rec.PDFPath)
}

func TestRunPayrollRejectsInvalidMonth(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "June 2025"})
	assert.Error(t, err)
}

func TestRunPayrollWritesAdminLog(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	ctx := claimsContext(t, "EMP100", string(employee.RoleAdmin))
	_, err := env.service.RunPayroll(ctx, payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	require.Len(t, env.adminLogs.logs, 1)
	assert.Equal(t, adminlog.ActionPayrollProcessed, env.adminLogs.logs[0].Action)
	assert.Equal(t, "EMP100", env.adminLogs.logs[0].AdminID)
}

func TestCalculateSalaryPreviewDoesNotWriteLedger(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	resp, err := env.service.CalculateSalary(context.Background(), "EMP001", "2025-06")
	require.NoError(t, err)

	assert.Equal(t, "EMP001", resp.EmployeeID)
	assert.True(t, resp.NetSalary.Equal(decimal.RequireFromString("19441.67")), "net was %s", resp.NetSalary)
	assert.Empty(t, env.payrollRepo.records)
}

func TestCalculateSalaryUnknownEmployee(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.service.CalculateSalary(context.Background(), "EMP404", "2025-06")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDownloadPayslipOwnerAllowed(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	_, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)
	rec := env.payrollRepo.records["EMP001|2025-06"]

	ctx := claimsContext(t, "EMP001", string(employee.RoleEmployee))
	file, name, err := env.service.DownloadPayslip(ctx, rec.TransactionID)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, "EMP001_2025-06.pdf", name)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestDownloadPayslipAdminAllowed(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	_, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)
	rec := env.payrollRepo.records["EMP001|2025-06"]

	ctx := claimsContext(t, "EMP100", string(employee.RoleAdmin))
	file, _, err := env.service.DownloadPayslip(ctx, rec.TransactionID)
	require.NoError(t, err)
	file.Close()
}

func TestDownloadPayslipOtherEmployeeForbidden(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)

	_, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)
	rec := env.payrollRepo.records["EMP001|2025-06"]

	ctx := claimsContext(t, "EMP002", string(employee.RoleEmployee))
	_, _, err = env.service.DownloadPayslip(ctx, rec.TransactionID)
	assert.ErrorIs(t, err, payroll.ErrNotRecordOwner)
}

func TestDownloadPayslipMissingArtifact(t *testing.T) {
	env := newTestEnv([]employee.Employee{activeEmployee("EMP001", "30000")})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)
	env.payslipGen.fail = true

	_, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)
	rec := env.payrollRepo.records["EMP001|2025-06"]

	ctx := claimsContext(t, "EMP001", string(employee.RoleEmployee))
	_, _, err = env.service.DownloadPayslip(ctx, rec.TransactionID)
	assert.ErrorIs(t, err, payroll.ErrPayslipNotAvailable)
}

func TestListOwnPayslipsUsesClaims(t *testing.T) {
	env := newTestEnv([]employee.Employee{
		activeEmployee("EMP001", "30000"),
		activeEmployee("EMP002", "45000"),
	})
	env.attendance.effectiveDays["EMP001|2025-06"] = decimal.NewFromInt(20)
	env.attendance.effectiveDays["EMP002|2025-06"] = decimal.NewFromInt(20)

	_, err := env.service.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: "2025-06"})
	require.NoError(t, err)

	ctx := claimsContext(t, "EMP001", string(employee.RoleEmployee))
	payslips, err := env.service.ListOwnPayslips(ctx)
	require.NoError(t, err)

	require.Len(t, payslips, 1)
	assert.Equal(t, "EMP001", payslips[0].EmployeeID)
}
