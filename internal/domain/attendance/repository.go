package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, rec Record) (Record, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// ListByEmployeeMonth returns all records for the employee inside the
	// calendar month, newest first.
	ListByEmployeeMonth(ctx context.Context, employeeID string, month string) ([]Record, error)
	ListByMonth(ctx context.Context, month string) ([]Record, error)
	GetMonthSummary(ctx context.Context, employeeID string, month string) (MonthSummary, error)
}
