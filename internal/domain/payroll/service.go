package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// RunPayroll processes the month for every active employee. It is
	// idempotent: already-processed employees are skipped and individual
	// failures never abort the run.
	RunPayroll(ctx context.Context, req RunPayrollRequest) (RunSummary, error)

	// CalculateSalary previews the breakdown for one employee month
	// without touching the ledger.
	CalculateSalary(ctx context.Context, employeeID string, month string) (SalaryBreakdownResponse, error)

	ListEmployeePayslips(ctx context.Context, employeeID string) ([]PayrollRecordResponse, error)
	ListOwnPayslips(ctx context.Context) ([]PayrollRecordResponse, error)
	ListMonth(ctx context.Context, month string) ([]PayrollRecordResponse, error)

	// DownloadPayslip streams the stored PDF. Only the owning employee or
	// an admin may fetch it.
	DownloadPayslip(ctx context.Context, transactionID string) (io.ReadCloser, string, error)
}
