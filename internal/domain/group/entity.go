package group

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
)

// PermissionGroup defines which days its members are allowed to clock in.
type PermissionGroup struct {
	ID              string
	Name            string
	AllowedWeekdays calendar.WeekdaySet
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	MemberCount int64
}

// AllowedDays implements calendar.DayRule.
func (g PermissionGroup) AllowedDays() calendar.WeekdaySet {
	return g.AllowedWeekdays
}

// Membership links a user to a permission group.
type Membership struct {
	UserID     string
	GroupID    string
	AssignedAt time.Time

	// DTO / Join
	Username  string
	FullName  *string
	GroupName string
}
