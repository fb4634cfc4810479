// Package memory holds process-local implementations of every repository.
// It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// DB is the shared state behind the memory repositories. A single mutex
// serializes every read-modify-write, which is what makes check-in atomic.
type DB struct {
	mu            sync.Mutex
	users         map[string]user.User
	groups        map[string]group.PermissionGroup
	memberships   map[membershipKey]group.Membership
	records       map[recordKey]attendance.AttendanceRecord
	refreshTokens map[string]refreshToken
}

type membershipKey struct {
	userID  string
	groupID string
}

type recordKey struct {
	userID string
	date   string
}

func NewDB() *DB {
	return &DB{
		users:         make(map[string]user.User),
		groups:        make(map[string]group.PermissionGroup),
		memberships:   make(map[membershipKey]group.Membership),
		records:       make(map[recordKey]attendance.AttendanceRecord),
		refreshTokens: make(map[string]refreshToken),
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func copyDays(set calendar.WeekdaySet) calendar.WeekdaySet {
	return calendar.NewWeekdaySet(set.Slice()...)
}
