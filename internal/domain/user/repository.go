package user

import "context"

// UserRepository defines data access methods for admin accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateOAuthProvider(ctx context.Context, id string, provider string, providerID string) error
}
