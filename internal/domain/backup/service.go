package backup

import "context"

type BackupService interface {
	// Run archives the payslip artifacts and exports the directory and
	// ledger tables. The two halves run concurrently.
	Run(ctx context.Context) (BackupResponse, error)
}
