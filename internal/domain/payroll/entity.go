package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "Pending"
	PayrollStatusProcessed PayrollStatus = "Processed"
	PayrollStatusPaid      PayrollStatus = "Paid"
)

// SalaryBreakdown - Result of the salary calculation for one employee month.
// All components are derived from the base salary, the effective days present
// and the calendar length of the month; nothing else feeds in.
type SalaryBreakdown struct {
	BaseSalary    decimal.Decimal
	TotalDays     int
	EffectiveDays decimal.Decimal
	PerDayRate    decimal.Decimal
	EarnedBasic   decimal.Decimal
	HRA           decimal.Decimal
	Bonus         decimal.Decimal
	GrossSalary   decimal.Decimal
	EPF           decimal.Decimal
	TDS           decimal.Decimal
	LOPDeduction  decimal.Decimal
	NetSalary     decimal.Decimal
}

// PayrollRecord - One processed ledger entry per (employee, month).
// Records are written once by the batch runner and never mutated by reruns.
type PayrollRecord struct {
	TransactionID string
	EmployeeID    string
	Month         string // "YYYY-MM"
	DaysPresent   decimal.Decimal
	TotalDays     int
	EarnedBasic   decimal.Decimal
	HRA           decimal.Decimal
	Bonus         decimal.Decimal
	GrossSalary   decimal.Decimal
	EPF           decimal.Decimal
	TDS           decimal.Decimal
	LOPDeduction  decimal.Decimal
	NetSalary     decimal.Decimal
	PDFPath       *string
	PaymentDate   time.Time
	Status        PayrollStatus
	CreatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

// MonthlyTotal - Aggregate for reporting
type MonthlyTotal struct {
	Month    string
	Records  int64
	TotalNet decimal.Decimal
}

// RunSummary - Tally of one batch run. The runner never aborts mid-run;
// this is its only result.
type RunSummary struct {
	Month        string `json:"month"`
	Success      int    `json:"success"`
	Skipped      int    `json:"skipped"`
	Failed       int    `json:"failed"`
	NoAttendance int    `json:"no_attendance"`
}
