package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const recentDays = 7

// Messages shown to the employee for refused clock operations
const (
	msgAlreadyCheckedIn  = "You have already clocked in today."
	msgNoRecordToday     = "No clock in record found for today."
	msgNotCheckedIn      = "You must clock in before clocking out."
	msgAlreadyCheckedOut = "You have already clocked out today."
	msgInvalidOrder      = "Check-out time must be after check-in time."
)

// EventPublisher receives clock events for the admin live feed.
type EventPublisher interface {
	Publish(topic string, event sse.Event)
}

type AttendanceServiceImpl struct {
	store attendance.Store
	group.MembershipRepository
	publisher EventPublisher
	loc       *time.Location
}

// NewAttendanceService builds the clock engine. "Today" is the calendar day of now in loc.
// publisher may be nil.
func NewAttendanceService(store attendance.Store, membershipRepository group.MembershipRepository, publisher EventPublisher, loc *time.Location) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		store:                store,
		MembershipRepository: membershipRepository,
		publisher:            publisher,
		loc:                  loc,
	}
}

func (s *AttendanceServiceImpl) formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.loc).Format(time.RFC3339)
	return &formatted
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, userID string, now time.Time) (attendance.ClockInResult, error) {
	now = now.In(s.loc)
	today := calendar.LocalDate(now, s.loc)

	groups, err := s.ListGroupsByUser(ctx, userID)
	if err != nil {
		return attendance.ClockInResult{}, fmt.Errorf("failed to load user groups: %w", err)
	}

	if !calendar.IsEligible(today, groups) {
		denied := &attendance.DayNotAllowedError{Weekday: calendar.WeekdayOf(today)}
		return attendance.ClockInResult{
			Status: attendance.ClockDenied,
			Reason: denied.Error(),
			Err:    denied,
		}, nil
	}

	rec, err := s.store.UpsertCheckIn(ctx, userID, today, now)
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		result := attendance.ClockInResult{
			Status: attendance.ClockAlready,
			Reason: msgAlreadyCheckedIn,
			Err:    attendance.ErrAlreadyCheckedIn,
		}
		existing, err := s.store.GetRecord(ctx, userID, today)
		if err != nil {
			return attendance.ClockInResult{}, fmt.Errorf("failed to load attendance record: %w", err)
		}
		if existing != nil {
			resp := attendance.NewRecordResponse(*existing, s.loc)
			result.CheckInTime = s.formatTime(existing.CheckIn)
			result.Record = &resp
		}
		return result, nil
	}
	if err != nil {
		return attendance.ClockInResult{}, fmt.Errorf("failed to clock in: %w", err)
	}

	slog.Info("User clocked in", "user_id", userID, "date", today.Format(validator.DateLayout))
	s.publish(dashboard.EventClockIn, rec, *rec.CheckIn)

	resp := attendance.NewRecordResponse(rec, s.loc)
	return attendance.ClockInResult{
		Status:      attendance.ClockOK,
		CheckInTime: s.formatTime(rec.CheckIn),
		Record:      &resp,
	}, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, userID string, now time.Time) (attendance.ClockOutResult, error) {
	now = now.In(s.loc)
	today := calendar.LocalDate(now, s.loc)

	current, err := s.store.GetRecord(ctx, userID, today)
	if err != nil {
		return attendance.ClockOutResult{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if current == nil {
		return notStarted(msgNoRecordToday), nil
	}
	if current.CheckIn == nil {
		return notStarted(msgNotCheckedIn), nil
	}

	rec, err := s.store.SetCheckOut(ctx, userID, today, now)
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		resp := attendance.NewRecordResponse(*current, s.loc)
		return attendance.ClockOutResult{
			Status: attendance.ClockAlready,
			Reason: msgAlreadyCheckedOut,
			Record: &resp,
			Err:    attendance.ErrAlreadyCheckedOut,
		}, nil
	case errors.Is(err, attendance.ErrInvalidOrder):
		return attendance.ClockOutResult{
			Status: attendance.ClockInvalidOrder,
			Reason: msgInvalidOrder,
			Err:    attendance.ErrInvalidOrder,
		}, nil
	case errors.Is(err, attendance.ErrNotCheckedIn):
		return notStarted(msgNotCheckedIn), nil
	case err != nil:
		return attendance.ClockOutResult{}, fmt.Errorf("failed to clock out: %w", err)
	}

	hours := rec.TotalHours()
	display := attendance.FormatHours(hours)

	slog.Info("User clocked out", "user_id", userID, "date", today.Format(validator.DateLayout), "total_hours", display)
	s.publish(dashboard.EventClockOut, rec, *rec.CheckOut)

	resp := attendance.NewRecordResponse(rec, s.loc)
	return attendance.ClockOutResult{
		Status:            attendance.ClockOK,
		CheckOutTime:      s.formatTime(rec.CheckOut),
		TotalHours:        &hours,
		TotalHoursDisplay: display,
		Record:            &resp,
	}, nil
}

func notStarted(reason string) attendance.ClockOutResult {
	return attendance.ClockOutResult{
		Status: attendance.ClockNotStarted,
		Reason: reason,
		Err:    attendance.ErrNotCheckedIn,
	}
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context, userID string, now time.Time) (attendance.StatusResponse, error) {
	now = now.In(s.loc)
	today := calendar.LocalDate(now, s.loc)

	groups, err := s.ListGroupsByUser(ctx, userID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load user groups: %w", err)
	}

	rec, err := s.store.GetRecord(ctx, userID, today)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	// Inclusive on both ends: today and the seven days before it.
	since := today.AddDate(0, 0, -recentDays)
	recent, err := s.store.List(ctx, attendance.RecordQuery{
		StartDate: &since,
		EndDate:   &today,
		UserID:    &userID,
		SortOrder: attendance.SortDesc,
	})
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load recent records: %w", err)
	}

	allowing := calendar.Allowing(today, groups)
	resp := attendance.StatusResponse{
		Today:          today.Format(validator.DateLayout),
		Weekday:        calendar.WeekdayOf(today).String(),
		IsAllowedToday: len(allowing) > 0,
		AllowedGroups:  groupNames(allowing),
		CanCheckIn:     len(allowing) > 0 && (rec == nil || rec.CheckIn == nil),
		CanCheckOut:    rec != nil && rec.IsActive(),
		IsFinished:     rec != nil && rec.CheckOut != nil,
		Groups:         make([]user.GroupSummary, 0, len(groups)),
		RecentRecords:  make([]attendance.RecordResponse, 0, len(recent)),
	}
	if rec != nil {
		r := attendance.NewRecordResponse(*rec, s.loc)
		resp.TodayRecord = &r
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, user.GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			AllowedDays: g.AllowedWeekdays.String(),
		})
	}
	for _, r := range recent {
		resp.RecentRecords = append(resp.RecentRecords, attendance.NewRecordResponse(r, s.loc))
	}

	return resp, nil
}

// CheckEligibility implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckEligibility(ctx context.Context, userID string, date time.Time) (attendance.EligibilityResponse, error) {
	day := calendar.LocalDate(date, s.loc)

	groups, err := s.ListGroupsByUser(ctx, userID)
	if err != nil {
		return attendance.EligibilityResponse{}, fmt.Errorf("failed to load user groups: %w", err)
	}

	allowing := calendar.Allowing(day, groups)
	return attendance.EligibilityResponse{
		Date:          day.Format(validator.DateLayout),
		Weekday:       calendar.WeekdayOf(day).String(),
		IsEligible:    len(allowing) > 0,
		AllowedGroups: groupNames(allowing),
	}, nil
}

func groupNames(groups []group.PermissionGroup) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

func (s *AttendanceServiceImpl) publish(event string, rec attendance.AttendanceRecord, at time.Time) {
	if s.publisher == nil {
		return
	}

	payload := dashboard.ClockEvent{
		UserID:      rec.UserID,
		Username:    rec.Username,
		DisplayName: user.DisplayName(rec.FullName, rec.Username),
		Date:        rec.Date.Format(validator.DateLayout),
		At:          at.In(s.loc).Format(time.RFC3339),
	}
	if rec.IsComplete() {
		hours := attendance.FormatHours(rec.TotalHours())
		payload.TotalHours = &hours
	}

	s.publisher.Publish(sse.TopicAttendance, sse.Event{Event: event, Data: payload, At: at})
}
