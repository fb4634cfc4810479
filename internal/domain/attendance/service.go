package attendance

import (
	"context"
	"time"
)

// AttendanceService is the clock engine. Business refusals come back in the result
// status; the error return is reserved for storage failures.
type AttendanceService interface {
	ClockIn(ctx context.Context, userID string, now time.Time) (ClockInResult, error)
	ClockOut(ctx context.Context, userID string, now time.Time) (ClockOutResult, error)

	// Status returns the employee dashboard for the local day of now
	Status(ctx context.Context, userID string, now time.Time) (StatusResponse, error)

	CheckEligibility(ctx context.Context, userID string, date time.Time) (EligibilityResponse, error)
}
