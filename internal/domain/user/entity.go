package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access: approvals, config, payroll
	RoleOperator Role = "operator" // Read-only access to reports and logs
)

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	FullName        string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
