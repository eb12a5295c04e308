package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
	nextID  int64
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return attendance.Record{}, attendance.ErrAlreadyMarked
		}
	}
	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	for i, existing := range f.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			f.records[i].Status = rec.Status
			f.records[i].Remarks = rec.Remarks
			return f.records[i], nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ListByEmployeeMonth(ctx context.Context, employeeID string, month string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Format("2006-01") == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByMonth(ctx context.Context, month string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Date.Format("2006-01") == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetMonthSummary(ctx context.Context, employeeID string, month string) (attendance.MonthSummary, error) {
	summary := attendance.MonthSummary{EmployeeID: employeeID, Month: month}
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID || rec.Date.Format("2006-01") != month {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLeave:
			summary.Leave++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		}
	}
	return summary, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if !activeOnly || emp.IsActive() {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetStatus(ctx context.Context, id string, status employee.Status) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Status = status
	f.employees[id] = emp
	return nil
}

func (f *fakeEmployeeRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return nil
}

func (f *fakeEmployeeRepo) NextID(ctx context.Context) (string, error) {
	return "EMP999", nil
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

func newTestService() (attendance.AttendanceService, *fakeAttendanceRepo, *fakeEmployeeRepo) {
	attRepo := &fakeAttendanceRepo{}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"EMP001": {ID: "EMP001", Name: "Jane Doe", Email: "jane@example.com", Status: employee.StatusActive},
		"EMP002": {ID: "EMP002", Name: "John Roe", Email: "john@example.com", Status: employee.StatusInactive},
	}}
	svc := NewAttendanceService(nil, attRepo, empRepo, &fakeAdminLogRepo{})
	return svc, attRepo, empRepo
}

func mustMark(t *testing.T, svc attendance.AttendanceService, employeeID, date, status string) {
	t.Helper()
	_, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	})
	require.NoError(t, err)
}

func TestEffectiveDaysPresentWeights(t *testing.T) {
	svc, _, _ := newTestService()

	mustMark(t, svc, "EMP001", "2025-06-02", "Present")
	mustMark(t, svc, "EMP001", "2025-06-03", "Present")
	mustMark(t, svc, "EMP001", "2025-06-04", "Half-Day")
	mustMark(t, svc, "EMP001", "2025-06-05", "Absent")
	mustMark(t, svc, "EMP001", "2025-06-06", "Leave")

	got, err := svc.EffectiveDaysPresent(context.Background(), "EMP001", "2025-06")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.5").Equal(got), "effective days: %s", got)
}

func TestEffectiveDaysPresentEmptyMonthIsZero(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.EffectiveDaysPresent(context.Background(), "EMP001", "2025-06")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestEffectiveDaysPresentUnknownEmployeeIsZero(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.EffectiveDaysPresent(context.Background(), "NOPE", "2025-06")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestEffectiveDaysPresentRejectsBadMonth(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.EffectiveDaysPresent(context.Background(), "EMP001", "June 2025")
	assert.ErrorIs(t, err, attendance.ErrInvalidMonth)
}

func TestMarkRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestService()

	mustMark(t, svc, "EMP001", "2025-06-02", "Present")

	_, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "EMP001",
		Date:       "2025-06-02",
		Status:     "Absent",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
}

func TestMarkRejectsInactiveEmployee(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "EMP002",
		Date:       "2025-06-02",
		Status:     "Present",
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotActive)
}

func TestAmendOverwritesExistingRecord(t *testing.T) {
	svc, repo, _ := newTestService()

	mustMark(t, svc, "EMP001", "2025-06-02", "Absent")

	updated, err := svc.Amend(context.Background(), attendance.AmendAttendanceRequest{
		EmployeeID: "EMP001",
		Date:       "2025-06-02",
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, updated.Status)
	assert.Len(t, repo.records, 1)
}

func TestAmendMissingRecordFails(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Amend(context.Background(), attendance.AmendAttendanceRequest{
		EmployeeID: "EMP001",
		Date:       "2025-06-02",
		Status:     "Present",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
