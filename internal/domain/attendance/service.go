package attendance

import (
	"context"

	"github.com/shopspring/decimal"
)

type AttendanceService interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (RecordResponse, error)
	Amend(ctx context.Context, req AmendAttendanceRequest) (RecordResponse, error)
	ListEmployeeMonth(ctx context.Context, employeeID string, month string) ([]RecordResponse, error)
	ListOwnMonth(ctx context.Context, month string) ([]RecordResponse, error)
	ListMonth(ctx context.Context, month string) ([]RecordResponse, error)
	GetMonthSummary(ctx context.Context, employeeID string, month string) (MonthSummaryResponse, error)

	// EffectiveDaysPresent aggregates payable days for the employee month:
	// Present counts 1.0, Half-Day 0.5, everything else 0. An employee or
	// month with no records yields zero, not an error.
	EffectiveDaysPresent(ctx context.Context, employeeID string, month string) (decimal.Decimal, error)
}
