package user

import "context"

// UserService covers the admin user-management surface.
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	// ListUsers returns active users together with their group memberships
	ListUsers(ctx context.Context) ([]UserResponse, error)
	SetActive(ctx context.Context, req SetActiveRequest) (UserResponse, error)
}
