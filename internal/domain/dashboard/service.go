package dashboard

import "context"

type DashboardService interface {
	GetAdminDashboard(ctx context.Context) (AdminDashboardResponse, error)
	GetEmployeeDashboard(ctx context.Context, month string) (EmployeeDashboardResponse, error)
}
