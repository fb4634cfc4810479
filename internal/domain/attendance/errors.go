package attendance

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
)

// Attendance domain errors
var (
	// Clock-in errors
	ErrDayNotAllowed    = errors.New("you are not allowed to clock in today")
	ErrAlreadyCheckedIn = errors.New("you have already clocked in today")

	// Clock-out errors
	ErrNotCheckedIn      = errors.New("you must clock in before clocking out")
	ErrAlreadyCheckedOut = errors.New("you have already clocked out today")
	ErrInvalidOrder      = errors.New("check-out time must be after check-in time")
)

// DayNotAllowedError carries the weekday that was refused.
type DayNotAllowedError struct {
	Weekday calendar.Weekday
}

func (e *DayNotAllowedError) Error() string {
	return fmt.Sprintf("You are not allowed to clock in on %s.", e.Weekday)
}

func (e *DayNotAllowedError) Unwrap() error {
	return ErrDayNotAllowed
}
