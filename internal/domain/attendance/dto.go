package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ClockStatus is the business outcome of a clock operation.
type ClockStatus string

const (
	ClockOK           ClockStatus = "ok"
	ClockAlready      ClockStatus = "already"
	ClockDenied       ClockStatus = "denied"
	ClockNotStarted   ClockStatus = "not_started"
	ClockInvalidOrder ClockStatus = "invalid_order"
)

// RecordResponse represents an attendance record in API responses
type RecordResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	TotalHours float64 `json:"total_hours"`
	State      State   `json:"state"`
}

// ClockInResult is returned for every clock-in attempt; Err holds the matching sentinel when Status is not ok.
type ClockInResult struct {
	Status      ClockStatus     `json:"status"`
	CheckInTime *string         `json:"check_in_time,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Record      *RecordResponse `json:"record,omitempty"`
	Err         error           `json:"-"`
}

type ClockOutResult struct {
	Status            ClockStatus     `json:"status"`
	CheckOutTime      *string         `json:"check_out_time,omitempty"`
	TotalHours        *float64        `json:"total_hours,omitempty"`
	TotalHoursDisplay string          `json:"total_hours_display,omitempty"`
	Reason            string          `json:"reason,omitempty"`
	Record            *RecordResponse `json:"record,omitempty"`
	Err               error           `json:"-"`
}

// StatusResponse is the employee's view of today
type StatusResponse struct {
	Today          string              `json:"today"`
	Weekday        string              `json:"weekday"`
	IsAllowedToday bool                `json:"is_allowed_today"`
	AllowedGroups  []string            `json:"allowed_groups"`
	TodayRecord    *RecordResponse     `json:"today_record"`
	CanCheckIn     bool                `json:"can_check_in"`
	CanCheckOut    bool                `json:"can_check_out"`
	IsFinished     bool                `json:"is_finished"`
	Groups         []user.GroupSummary `json:"groups"`
	RecentRecords  []RecordResponse    `json:"recent_records"`
}

type EligibilityRequest struct {
	Date string `json:"date"`
}

func (r *EligibilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type EligibilityResponse struct {
	Date          string   `json:"date"`
	Weekday       string   `json:"weekday"`
	IsEligible    bool     `json:"is_eligible"`
	AllowedGroups []string `json:"allowed_groups"`
}

// NewRecordResponse renders r with timestamps in loc.
func NewRecordResponse(r AttendanceRecord, loc *time.Location) RecordResponse {
	resp := RecordResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       r.Date.Format(validator.DateLayout),
		TotalHours: r.TotalHours(),
		State:      r.State(),
	}
	if r.CheckIn != nil {
		s := r.CheckIn.In(loc).Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if r.CheckOut != nil {
		s := r.CheckOut.In(loc).Format(time.RFC3339)
		resp.CheckOut = &s
	}
	return resp
}
