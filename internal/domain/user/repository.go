package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// ListActive returns active users ordered by username, optionally restricted to a role
	ListActive(ctx context.Context, role *Role) ([]User, error)
	SetActive(ctx context.Context, id string, active bool) error
	CountActive(ctx context.Context, role Role) (int64, error)
}
