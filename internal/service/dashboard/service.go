package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// SubscriberCounter reports how many clients are listening on a live topic.
type SubscriberCounter interface {
	SubscriberCount(topic string) int
}

type DashboardServiceImpl struct {
	store attendance.Store
	user.UserRepository
	group.GroupRepository
	subscribers SubscriberCounter
	loc         *time.Location
}

func NewDashboardService(store attendance.Store, userRepository user.UserRepository, groupRepository group.GroupRepository, subscribers SubscriberCounter, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		store:           store,
		UserRepository:  userRepository,
		GroupRepository: groupRepository,
		subscribers:     subscribers,
		loc:             loc,
	}
}

// GetAdminDashboard returns today's overview using parallel goroutines
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context, now time.Time) (dashboard.AdminDashboardResponse, error) {
	now = now.In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	var (
		records        []attendance.AttendanceRecord
		totalEmployees int64
		totalGroups    int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.store.ListByDate(gCtx, today)
		return err
	})

	g.Go(func() error {
		var err error
		totalEmployees, err = s.UserRepository.CountActive(gCtx, user.RoleEmployee)
		return err
	})

	g.Go(func() error {
		var err error
		totalGroups, err = s.GroupRepository.Count(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}

	resp := dashboard.AdminDashboardResponse{
		Today:            today.Format(validator.DateLayout),
		ActiveRecords:    []dashboard.DashboardRecord{},
		CompletedRecords: []dashboard.DashboardRecord{},
		TotalEmployees:   totalEmployees,
		TotalGroups:      totalGroups,
	}

	// ListByDate is ordered by check-in, which is what the active list wants.
	var completed []attendance.AttendanceRecord
	for _, rec := range records {
		switch {
		case rec.IsActive():
			resp.ActiveRecords = append(resp.ActiveRecords, s.toRecord(rec))
		case rec.IsComplete():
			completed = append(completed, rec)
		}
	}

	// Most recent check-out first.
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CheckOut.After(*completed[j].CheckOut)
	})
	for _, rec := range completed {
		resp.CompletedRecords = append(resp.CompletedRecords, s.toRecord(rec))
	}

	resp.ActiveCount = len(resp.ActiveRecords)
	resp.CompletedCount = len(resp.CompletedRecords)
	if s.subscribers != nil {
		resp.LiveSubscribers = s.subscribers.SubscriberCount(sse.TopicAttendance)
	}

	return resp, nil
}

func (s *DashboardServiceImpl) toRecord(rec attendance.AttendanceRecord) dashboard.DashboardRecord {
	out := dashboard.DashboardRecord{
		UserID:      rec.UserID,
		Username:    rec.Username,
		DisplayName: user.DisplayName(rec.FullName, rec.Username),
		CheckIn:     rec.CheckIn.In(s.loc).Format(report.TimeLayout),
	}
	if rec.CheckOut != nil {
		checkOut := rec.CheckOut.In(s.loc).Format(report.TimeLayout)
		out.CheckOut = &checkOut
		hours := attendance.FormatHours(rec.TotalHours())
		out.TotalHours = &hours
	}
	return out
}
