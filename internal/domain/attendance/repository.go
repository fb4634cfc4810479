package attendance

import (
	"context"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// RecordQuery selects records by inclusive date range and/or user.
// Nil fields are not filtered on.
type RecordQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	UserID    *string
	SortOrder SortOrder
	Limit     int
}

// Store persists attendance records. Dates are local calendar dates at midnight.
type Store interface {
	// GetRecord returns nil, nil when the user has no record for date
	GetRecord(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error)

	// UpsertCheckIn atomically creates the record or fills an empty check-in.
	// Returns ErrAlreadyCheckedIn when a check-in is already stored.
	UpsertCheckIn(ctx context.Context, userID string, date time.Time, at time.Time) (AttendanceRecord, error)

	// SetCheckOut records the check-out. Returns ErrNotCheckedIn, ErrAlreadyCheckedOut
	// or ErrInvalidOrder without touching the record.
	SetCheckOut(ctx context.Context, userID string, date time.Time, at time.Time) (AttendanceRecord, error)

	// List returns records ordered by date then username
	List(ctx context.Context, q RecordQuery) ([]AttendanceRecord, error)

	// ListByDate returns every record of date ordered by check-in
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)
}
