package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func TestGetAdminDashboard(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	users := memory.NewUserRepository(db)
	groups := memory.NewGroupRepository(db)
	store := memory.NewAttendanceStore(db)
	hub := sse.NewHub()

	create := func(username string, role user.Role) user.User {
		u, err := users.Create(ctx, user.User{Username: username, Role: role, IsActive: true})
		require.NoError(t, err)
		return u
	}
	create("admin", user.RoleAdmin)
	alice := create("alice", user.RoleEmployee)
	bob := create("bob", user.RoleEmployee)
	carol := create("carol", user.RoleEmployee)

	_, err := groups.Create(ctx, group.PermissionGroup{Name: "Full Time", AllowedWeekdays: calendar.NewWeekdaySet(calendar.Monday, calendar.Tuesday)})
	require.NoError(t, err)

	day := time.Date(2024, time.January, 8, 0, 0, 0, 0, wib)
	clock := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	_, err = store.UpsertCheckIn(ctx, alice.ID, day, clock(9, 0))
	require.NoError(t, err)
	_, err = store.UpsertCheckIn(ctx, bob.ID, day, clock(8, 0))
	require.NoError(t, err)
	_, err = store.SetCheckOut(ctx, bob.ID, day, clock(12, 0))
	require.NoError(t, err)
	_, err = store.UpsertCheckIn(ctx, carol.ID, day, clock(7, 0))
	require.NoError(t, err)
	_, err = store.SetCheckOut(ctx, carol.ID, day, clock(16, 30))
	require.NoError(t, err)

	_, unsubscribe := hub.Subscribe(sse.TopicAttendance)
	defer unsubscribe()

	svc := NewDashboardService(store, users, groups, hub, wib)
	resp, err := svc.GetAdminDashboard(ctx, clock(17, 0))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-08", resp.Today)
	assert.Equal(t, int64(3), resp.TotalEmployees)
	assert.Equal(t, int64(1), resp.TotalGroups)
	assert.Equal(t, 1, resp.LiveSubscribers)

	require.Len(t, resp.ActiveRecords, 1)
	assert.Equal(t, 1, resp.ActiveCount)
	assert.Equal(t, "alice", resp.ActiveRecords[0].Username)
	assert.Equal(t, "09:00 AM", resp.ActiveRecords[0].CheckIn)
	assert.Nil(t, resp.ActiveRecords[0].CheckOut)

	require.Len(t, resp.CompletedRecords, 2)
	assert.Equal(t, 2, resp.CompletedCount)
	assert.Equal(t, "carol", resp.CompletedRecords[0].Username)
	assert.Equal(t, "bob", resp.CompletedRecords[1].Username)
	require.NotNil(t, resp.CompletedRecords[0].TotalHours)
	assert.Equal(t, "9.50", *resp.CompletedRecords[0].TotalHours)
	assert.Equal(t, "04:30 PM", *resp.CompletedRecords[0].CheckOut)
}

func TestGetAdminDashboard_Empty(t *testing.T) {
	db := memory.NewDB()
	svc := NewDashboardService(memory.NewAttendanceStore(db), memory.NewUserRepository(db), memory.NewGroupRepository(db), nil, wib)

	resp, err := svc.GetAdminDashboard(context.Background(), time.Date(2024, time.January, 8, 10, 0, 0, 0, wib))
	require.NoError(t, err)
	assert.NotNil(t, resp.ActiveRecords)
	assert.NotNil(t, resp.CompletedRecords)
	assert.Zero(t, resp.LiveSubscribers)
	assert.Zero(t, resp.TotalEmployees)
}
