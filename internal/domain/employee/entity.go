package employee

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

type Employee struct {
	ID              string
	EmployeeCode    string
	FullName        string
	Email           string
	Position        *string
	PhoneNumber     *string
	Status          Status
	ApprovedAt      *time.Time
	ApprovedBy      *string
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsApproved reports whether the employee may check in and is eligible
// for salary calculation.
func (e *Employee) IsApproved() bool {
	return e.Status == StatusApproved
}
