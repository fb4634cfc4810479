package group

import (
	"unicode/utf8"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// GroupResponse represents a permission group in API responses
type GroupResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	AllowedWeekdays    []int  `json:"allowed_weekdays"`
	AllowedDaysDisplay string `json:"allowed_days_display"`
	MemberCount        int64  `json:"member_count"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// MemberResponse represents one member of a group
type MemberResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	GroupID     string `json:"group_id"`
	GroupName   string `json:"group_name"`
	AssignedAt  string `json:"assigned_at"`
}

type CreateGroupRequest struct {
	Name            string `json:"name"`
	AllowedWeekdays []int  `json:"allowed_weekdays"`
}

func (r *CreateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	validateName(&errs, r.Name)
	validateWeekdays(&errs, r.AllowedWeekdays)

	return errs.Err()
}

type UpdateGroupRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name,omitempty"`
	AllowedWeekdays *[]int  `json:"allowed_weekdays,omitempty"`
}

func (r *UpdateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		validateName(&errs, *r.Name)
	}
	if r.AllowedWeekdays != nil {
		validateWeekdays(&errs, *r.AllowedWeekdays)
	}

	return errs.Err()
}

// AssignGroupsRequest replaces every group membership of a user.
// An empty GroupIDs list removes the user from all groups.
type AssignGroupsRequest struct {
	UserID   string   `json:"-"`
	GroupIDs []string `json:"group_ids"`
}

func (r *AssignGroupsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	for _, id := range r.GroupIDs {
		if validator.IsEmpty(id) {
			errs.Add("group_ids", "group_ids must not contain empty values")
			break
		}
	}

	return errs.Err()
}

func validateName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("name", "name is required")
	} else if utf8.RuneCountInString(name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
}

func validateWeekdays(errs *validator.ValidationErrors, days []int) {
	if len(days) == 0 {
		errs.Add("allowed_weekdays", "select at least one day")
		return
	}
	if _, err := calendar.ParseWeekdays(days); err != nil {
		errs.Add("allowed_weekdays", err.Error())
	}
}
