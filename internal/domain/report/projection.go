package report

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Project renders a record for display with times in loc.
func Project(rec attendance.AttendanceRecord, loc *time.Location) RecordProjection {
	p := RecordProjection{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Username:   rec.Username,
		User:       user.DisplayName(rec.FullName, rec.Username),
		Date:       rec.Date.Format(validator.DateLayout),
		CheckIn:    formatClock(rec.CheckIn, loc),
		CheckOut:   formatClock(rec.CheckOut, loc),
		TotalHours: NotAvailable,
	}

	switch {
	case rec.IsComplete():
		p.TotalHours = attendance.FormatHours(rec.TotalHours())
		p.Status = StatusComplete
	case rec.IsActive():
		p.Status = StatusActive
	default:
		p.Status = StatusPending
	}
	return p
}

func formatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return NotAvailable
	}
	return t.In(loc).Format(TimeLayout)
}
