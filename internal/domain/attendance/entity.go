package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusHalfDay Status = "Half-Day"
)

var (
	weightFull = decimal.NewFromInt(1)
	weightHalf = decimal.NewFromFloat(0.5)
)

// Weight returns the payable-day weight of a status: a full day for
// Present, half a day for Half-Day, zero otherwise.
func (s Status) Weight() decimal.Decimal {
	switch s {
	case StatusPresent:
		return weightFull
	case StatusHalfDay:
		return weightHalf
	default:
		return decimal.Zero
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay:
		return true
	}
	return false
}

// Record - One attendance entry per employee per calendar day
type Record struct {
	ID         int64
	EmployeeID string
	Date       time.Time
	Status     Status
	CheckIn    *time.Time
	CheckOut   *time.Time
	Remarks    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MonthSummary - Per-status counts for an employee month
type MonthSummary struct {
	EmployeeID string
	Month      string
	Present    int
	Absent     int
	Leave      int
	HalfDay    int
}
