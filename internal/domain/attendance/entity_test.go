package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
)

func at(hour, min int) *time.Time {
	t := time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
	return &t
}

func TestAttendanceRecord_State(t *testing.T) {
	assert.Equal(t, StateNoRecord, StateOf(nil))
	assert.Equal(t, StateNoRecord, AttendanceRecord{}.State())
	assert.Equal(t, StateCheckedIn, AttendanceRecord{CheckIn: at(9, 0)}.State())
	assert.Equal(t, StateCheckedOut, AttendanceRecord{CheckIn: at(9, 0), CheckOut: at(17, 30)}.State())
}

func TestAttendanceRecord_TotalHours(t *testing.T) {
	r := AttendanceRecord{CheckIn: at(9, 0), CheckOut: at(17, 30)}
	assert.True(t, r.IsComplete())
	assert.False(t, r.IsActive())
	assert.Equal(t, 8.5, r.TotalHours())

	r = AttendanceRecord{CheckIn: at(9, 0)}
	assert.True(t, r.IsActive())
	assert.Equal(t, 0.0, r.TotalHours())
}

func TestAttendanceRecord_Check(t *testing.T) {
	assert.NoError(t, AttendanceRecord{}.Check())
	assert.NoError(t, AttendanceRecord{CheckIn: at(9, 0)}.Check())
	assert.NoError(t, AttendanceRecord{CheckIn: at(9, 0), CheckOut: at(9, 1)}.Check())
	assert.ErrorIs(t, AttendanceRecord{CheckOut: at(9, 0)}.Check(), ErrNotCheckedIn)
	assert.ErrorIs(t, AttendanceRecord{CheckIn: at(9, 0), CheckOut: at(9, 0)}.Check(), ErrInvalidOrder)
	assert.ErrorIs(t, AttendanceRecord{CheckIn: at(9, 0), CheckOut: at(8, 0)}.Check(), ErrInvalidOrder)
}

func TestDayNotAllowedError(t *testing.T) {
	var err error = &DayNotAllowedError{Weekday: calendar.Saturday}
	assert.Equal(t, "You are not allowed to clock in on Saturday.", err.Error())
	assert.True(t, errors.Is(err, ErrDayNotAllowed))

	var dna *DayNotAllowedError
	assert.True(t, errors.As(err, &dna))
	assert.Equal(t, calendar.Saturday, dna.Weekday)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8.50", FormatHours(8.5))
	assert.Equal(t, "0.00", FormatHours(0))
	assert.Equal(t, "7.33", FormatHours(22.0/3))
	// Ties on the exact binary value round to even; near-ties follow the binary value.
	assert.Equal(t, "8.12", FormatHours(8.125))
	assert.Equal(t, "8.38", FormatHours(8.375))
	assert.Equal(t, "1.00", FormatHours(1.005))
	assert.Equal(t, "2.67", FormatHours(2.675))
}

func TestFormatHours_FromRecord(t *testing.T) {
	out := time.Date(2024, 1, 1, 17, 7, 30, 0, time.UTC)
	r := AttendanceRecord{CheckIn: at(9, 0), CheckOut: &out}
	assert.Equal(t, 8.125, r.TotalHours())
	assert.Equal(t, "8.12", FormatHours(r.TotalHours()))
}
