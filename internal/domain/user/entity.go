package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full system access
	RoleEmployee Role = "employee" // Can only clock in/out and view own attendance
)

var RoleValues = []string{string(RoleAdmin), string(RoleEmployee)}

type User struct {
	ID           string
	Username     string
	FullName     *string
	Email        *string
	PasswordHash *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEmployee checks if user is a regular employee
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// DisplayName returns the full name when set, else the username.
func (u *User) DisplayName() string {
	return DisplayName(u.FullName, u.Username)
}

func DisplayName(fullName *string, username string) string {
	if fullName != nil && *fullName != "" {
		return *fullName
	}
	return username
}
