package dashboard

import "context"

// EmployeeCounts - Headcount split by status
type EmployeeCounts struct {
	Total    int64
	Active   int64
	Inactive int64
}

type DashboardRepository interface {
	GetEmployeeCounts(ctx context.Context) (EmployeeCounts, error)
	GetDepartmentCounts(ctx context.Context) ([]DepartmentCount, error)
}
