package user

import (
	"unicode/utf8"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	FullName    *string        `json:"full_name,omitempty"`
	DisplayName string         `json:"display_name"`
	Email       *string        `json:"email,omitempty"`
	Role        string         `json:"role"`
	IsActive    bool           `json:"is_active"`
	Groups      []GroupSummary `json:"groups"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// GroupSummary is the slice of a permission group shown next to a user.
type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AllowedDays string `json:"allowed_days"`
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     string  `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 3-150 characters: letters, digits and @.+-_ only")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}

	if r.Email != nil && !validator.IsEmpty(*r.Email) && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}

	if r.FullName != nil && utf8.RuneCountInString(*r.FullName) > 150 {
		errs.Add("full_name", "full_name must not exceed 150 characters")
	}

	if validator.IsEmpty(r.Role) {
		r.Role = string(RoleEmployee)
	} else if !validator.IsInSlice(r.Role, RoleValues) {
		errs.Add("role", "role must be one of: admin, employee")
	}

	return errs.Err()
}

// SetActiveRequest toggles whether a user may log in
type SetActiveRequest struct {
	ID       string `json:"-"`
	IsActive *bool  `json:"is_active"`
}

func (r *SetActiveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.IsActive == nil {
		errs.Add("is_active", "is_active is required")
	}

	return errs.Err()
}
