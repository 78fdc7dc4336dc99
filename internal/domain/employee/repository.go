package employee

import "context"

// EmployeeRepository defines data access methods for the employee roster.
type EmployeeRepository interface {
	// Create inserts a new roster entry (status pending).
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves an employee by email, used to reject duplicate registrations.
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// GetByEmployeeCode resolves the code carried in the QR image.
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)

	// List retrieves employees with filters and pagination, in creation order.
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)

	// ListByStatus retrieves the full roster slice for one status, in creation order.
	ListByStatus(ctx context.Context, status Status) ([]Employee, error)

	// UpdateStatus transitions the approval state of an employee.
	UpdateStatus(ctx context.Context, emp Employee) error

	// Delete removes an employee from the roster.
	Delete(ctx context.Context, id string) error
}

type EmployeeService interface {
	Register(ctx context.Context, req RegisterRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) (ListEmployeeResponse, error)
	Approve(ctx context.Context, id string) (EmployeeResponse, error)
	Reject(ctx context.Context, id string, req RejectRequest) (EmployeeResponse, error)
	Suspend(ctx context.Context, id string) (EmployeeResponse, error)
	Reactivate(ctx context.Context, id string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}
