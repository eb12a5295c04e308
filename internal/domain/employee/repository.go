package employee

import "context"

// EmployeeRepository defines data access methods for the employee directory.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	SetStatus(ctx context.Context, id string, status Status) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// NextID returns the next sequential employee ID ("EMP001", "EMP002", ...).
	NextID(ctx context.Context) (string, error)
}
