package postgresql

import (
	"context"
	"fmt"

	"github.com/epayroll/payroll-backend-go/internal/domain/dashboard"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetEmployeeCounts(ctx context.Context) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Active'),
			COUNT(*) FILTER (WHERE status = 'Inactive')
		FROM employees
	`

	var counts dashboard.EmployeeCounts
	err := q.QueryRow(ctx, query).Scan(&counts.Total, &counts.Active, &counts.Inactive)
	if err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to get employee counts: %w", err)
	}

	return counts, nil
}

func (r *dashboardRepository) GetDepartmentCounts(ctx context.Context) ([]dashboard.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(department, 'Unassigned'), COUNT(*)
		FROM employees
		WHERE status = 'Active'
		GROUP BY department
		ORDER BY COUNT(*) DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get department counts: %w", err)
	}
	defer rows.Close()

	var counts []dashboard.DepartmentCount
	for rows.Next() {
		var c dashboard.DepartmentCount
		if err := rows.Scan(&c.Department, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
