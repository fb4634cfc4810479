package attendance

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// State is the position of a (user, day) pair in the clock state machine.
type State string

const (
	StateNoRecord   State = "NO_RECORD"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
)

// AttendanceRecord is the single record a user may hold for one local date.
type AttendanceRecord struct {
	ID        string
	UserID    string
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	Username string
	FullName *string
}

// IsComplete reports whether both check-in and check-out are recorded.
func (r AttendanceRecord) IsComplete() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}

// IsActive reports whether the user is checked in but not yet out.
func (r AttendanceRecord) IsActive() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// TotalHours is the worked duration in hours, 0 unless the record is complete.
func (r AttendanceRecord) TotalHours() float64 {
	if !r.IsComplete() {
		return 0
	}
	return r.CheckOut.Sub(*r.CheckIn).Seconds() / 3600
}

// FormatHours renders hours with two decimals, e.g. "8.50". The float's exact
// binary value is rounded half to even, so 8.125 renders as "8.12".
func FormatHours(hours float64) string {
	return exactDecimal(hours).StringFixedBank(2)
}

func exactDecimal(f float64) decimal.Decimal {
	frac, exp := math.Frexp(f)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	mant.Mul(mant, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil))
	return decimal.NewFromBigInt(mant, int32(exp))
}

func (r AttendanceRecord) State() State {
	switch {
	case r.CheckOut != nil:
		return StateCheckedOut
	case r.CheckIn != nil:
		return StateCheckedIn
	default:
		return StateNoRecord
	}
}

// StateOf returns the state of an optional record.
func StateOf(r *AttendanceRecord) State {
	if r == nil {
		return StateNoRecord
	}
	return r.State()
}

// Check enforces the record invariants: check-out needs a check-in and must come strictly after it.
func (r AttendanceRecord) Check() error {
	if r.CheckOut == nil {
		return nil
	}
	if r.CheckIn == nil {
		return ErrNotCheckedIn
	}
	if !r.CheckOut.After(*r.CheckIn) {
		return ErrInvalidOrder
	}
	return nil
}
