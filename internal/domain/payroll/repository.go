package payroll

import "context"

// PayrollRepository defines data access methods for the payroll ledger.
// Create relies on the (employee_id, month) unique constraint so that
// insert-if-absent is atomic; callers map the conflict to a benign skip.
type PayrollRepository interface {
	Create(ctx context.Context, rec PayrollRecord) (PayrollRecord, error)
	Exists(ctx context.Context, employeeID string, month string) (bool, error)
	GetByTransactionID(ctx context.Context, transactionID string) (PayrollRecord, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error)
	ListByMonth(ctx context.Context, month string) ([]PayrollRecord, error)
	GetMonthlyTotals(ctx context.Context, months int) ([]MonthlyTotal, error)
}
