package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `p.transaction_id, p.employee_id, p.month, p.days_present, p.total_days,
	p.earned_basic, p.hra, p.bonus, p.gross_salary, p.epf, p.tds, p.lop_deduction,
	p.net_salary, p.pdf_path, p.payment_date, p.status, p.created_at`

func scanPayrollRecord(row pgx.Row, withName bool) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	dest := []interface{}{
		&rec.TransactionID, &rec.EmployeeID, &rec.Month, &rec.DaysPresent, &rec.TotalDays,
		&rec.EarnedBasic, &rec.HRA, &rec.Bonus, &rec.GrossSalary, &rec.EPF, &rec.TDS,
		&rec.LOPDeduction, &rec.NetSalary, &rec.PDFPath, &rec.PaymentDate, &rec.Status, &rec.CreatedAt,
	}
	if withName {
		dest = append(dest, &rec.EmployeeName)
	}
	err := row.Scan(dest...)
	return rec, err
}

func (r *payrollRepository) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (transaction_id, employee_id, month, days_present, total_days,
			earned_basic, hra, bonus, gross_salary, epf, tds, lop_deduction,
			net_salary, pdf_path, payment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + strings.ReplaceAll(payrollColumns, "p.", "")

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		rec.TransactionID, rec.EmployeeID, rec.Month, rec.DaysPresent, rec.TotalDays,
		rec.EarnedBasic, rec.HRA, rec.Bonus, rec.GrossSalary, rec.EPF, rec.TDS,
		rec.LOPDeduction, rec.NetSalary, rec.PDFPath, rec.PaymentDate, rec.Status,
	), false)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_month") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) Exists(ctx context.Context, employeeID string, month string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payroll_records WHERE employee_id = $1 AND month = $2)`,
		employeeID, month,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll record: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) GetByTransactionID(ctx context.Context, transactionID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, e.name
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.transaction_id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, transactionID), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records p
		WHERE p.employee_id = $1
		ORDER BY p.month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *payrollRepository) ListByMonth(ctx context.Context, month string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, e.name
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1
		ORDER BY p.employee_id
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *payrollRepository) GetMonthlyTotals(ctx context.Context, months int) ([]payroll.MonthlyTotal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month, COUNT(*), COALESCE(SUM(net_salary), 0)
		FROM payroll_records
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []payroll.MonthlyTotal
	for rows.Next() {
		var t payroll.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Records, &t.TotalNet); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
