package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type attendanceStore struct {
	db *DB
}

func NewAttendanceStore(db *DB) attendance.Store {
	return &attendanceStore{db: db}
}

func keyOf(userID string, date time.Time) recordKey {
	return recordKey{userID: userID, date: date.Format(validator.DateLayout)}
}

func (db *DB) joinRecord(rec attendance.AttendanceRecord) attendance.AttendanceRecord {
	u := db.users[rec.UserID]
	rec.Username = u.Username
	rec.FullName = u.FullName
	return rec
}

// GetRecord implements attendance.Store.
func (s *attendanceStore) GetRecord(ctx context.Context, userID string, date time.Time) (*attendance.AttendanceRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.records[keyOf(userID, date)]
	if !ok {
		return nil, nil
	}
	rec = s.db.joinRecord(rec)
	return &rec, nil
}

// UpsertCheckIn implements attendance.Store.
func (s *attendanceStore) UpsertCheckIn(ctx context.Context, userID string, date time.Time, at time.Time) (attendance.AttendanceRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[userID]; !ok {
		return attendance.AttendanceRecord{}, user.ErrUserNotFound
	}

	key := keyOf(userID, date)
	now := time.Now()
	rec, ok := s.db.records[key]
	switch {
	case !ok:
		id, err := newID()
		if err != nil {
			return attendance.AttendanceRecord{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		rec = attendance.AttendanceRecord{
			ID:        id,
			UserID:    userID,
			Date:      date,
			CreatedAt: now,
		}
	case rec.CheckIn != nil:
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn := at
	rec.CheckIn = &checkIn
	rec.UpdatedAt = now
	s.db.records[key] = rec
	return s.db.joinRecord(rec), nil
}

// SetCheckOut implements attendance.Store.
func (s *attendanceStore) SetCheckOut(ctx context.Context, userID string, date time.Time, at time.Time) (attendance.AttendanceRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	key := keyOf(userID, date)
	rec, ok := s.db.records[key]
	switch {
	case !ok || rec.CheckIn == nil:
		return attendance.AttendanceRecord{}, attendance.ErrNotCheckedIn
	case rec.CheckOut != nil:
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := at
	next := rec
	next.CheckOut = &checkOut
	if err := next.Check(); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	next.UpdatedAt = time.Now()
	s.db.records[key] = next
	return s.db.joinRecord(next), nil
}

// List implements attendance.Store.
func (s *attendanceStore) List(ctx context.Context, q attendance.RecordQuery) ([]attendance.AttendanceRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var start, end string
	if q.StartDate != nil {
		start = q.StartDate.Format(validator.DateLayout)
	}
	if q.EndDate != nil {
		end = q.EndDate.Format(validator.DateLayout)
	}

	records := []attendance.AttendanceRecord{}
	for key, rec := range s.db.records {
		if start != "" && key.date < start {
			continue
		}
		if end != "" && key.date > end {
			continue
		}
		if q.UserID != nil && rec.UserID != *q.UserID {
			continue
		}
		records = append(records, s.db.joinRecord(rec))
	}

	desc := q.SortOrder != attendance.SortAsc
	sort.Slice(records, func(i, j int) bool {
		di := records[i].Date.Format(validator.DateLayout)
		dj := records[j].Date.Format(validator.DateLayout)
		if di != dj {
			if desc {
				return di > dj
			}
			return di < dj
		}
		return records[i].Username < records[j].Username
	})

	if q.Limit > 0 && len(records) > q.Limit {
		records = records[:q.Limit]
	}
	return records, nil
}

// ListByDate implements attendance.Store.
func (s *attendanceStore) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	day := date.Format(validator.DateLayout)
	records := []attendance.AttendanceRecord{}
	for key, rec := range s.db.records {
		if key.date == day {
			records = append(records, s.db.joinRecord(rec))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case a.CheckIn == nil && b.CheckIn == nil:
			return a.Username < b.Username
		case a.CheckIn == nil:
			return false
		case b.CheckIn == nil:
			return true
		case !a.CheckIn.Equal(*b.CheckIn):
			return a.CheckIn.Before(*b.CheckIn)
		}
		return a.Username < b.Username
	})
	return records, nil
}
