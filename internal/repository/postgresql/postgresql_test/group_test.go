package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	groupRepo := postgresql.NewGroupRepository(db)

	created, err := groupRepo.Create(ctx, group.PermissionGroup{
		Name:            "Weekday Shift",
		AllowedWeekdays: calendar.NewWeekdaySet(calendar.Monday, calendar.Tuesday, calendar.Wednesday, calendar.Thursday, calendar.Friday),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, created.AllowedWeekdays.Ints())

	_, err = groupRepo.Create(ctx, group.PermissionGroup{Name: "Weekday Shift", AllowedWeekdays: calendar.NewWeekdaySet(calendar.Monday)})
	assert.ErrorIs(t, err, group.ErrDuplicateName)

	created.Name = "Weekend Shift"
	created.AllowedWeekdays = calendar.NewWeekdaySet(calendar.Saturday, calendar.Sunday)
	updated, err := groupRepo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Weekend Shift", updated.Name)
	assert.Equal(t, "Saturday, Sunday", updated.AllowedWeekdays.String())

	got, err := groupRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.MemberCount)

	count, err := groupRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, groupRepo.Delete(ctx, created.ID))
	_, err = groupRepo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
	assert.ErrorIs(t, groupRepo.Delete(ctx, created.ID), group.ErrGroupNotFound)
}

func TestMembershipRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	groupRepo := postgresql.NewGroupRepository(db)
	memberRepo := postgresql.NewMembershipRepository(db)

	u := createTestUser(t, db, "employee1")
	weekday, err := groupRepo.Create(ctx, group.PermissionGroup{Name: "Weekday Shift", AllowedWeekdays: calendar.NewWeekdaySet(calendar.Monday)})
	require.NoError(t, err)
	weekend, err := groupRepo.Create(ctx, group.PermissionGroup{Name: "Weekend Shift", AllowedWeekdays: calendar.NewWeekdaySet(calendar.Saturday)})
	require.NoError(t, err)

	_, err = memberRepo.Add(ctx, group.Membership{UserID: u.ID, GroupID: weekday.ID})
	require.NoError(t, err)
	_, err = memberRepo.Add(ctx, group.Membership{UserID: u.ID, GroupID: weekday.ID})
	assert.ErrorIs(t, err, group.ErrMembershipExists)

	members, err := memberRepo.ListMembers(ctx, weekday.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "employee1", members[0].Username)
	assert.Equal(t, "Weekday Shift", members[0].GroupName)

	require.NoError(t, memberRepo.ReplaceForUser(ctx, u.ID, []string{weekend.ID}))
	groups, err := memberRepo.ListGroupsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, weekend.ID, groups[0].ID)

	assert.ErrorIs(t, memberRepo.Remove(ctx, u.ID, weekday.ID), group.ErrMembershipNotFound)

	// Deleting a group cascades to its memberships.
	require.NoError(t, groupRepo.Delete(ctx, weekend.ID))
	groups, err = memberRepo.ListGroupsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestMembershipRepository_UnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	groupRepo := postgresql.NewGroupRepository(db)
	memberRepo := postgresql.NewMembershipRepository(db)

	u := createTestUser(t, db, "employee1")
	g, err := groupRepo.Create(ctx, group.PermissionGroup{Name: "Weekday Shift", AllowedWeekdays: calendar.NewWeekdaySet(calendar.Monday)})
	require.NoError(t, err)
	missing := uuid.NewString()

	_, err = memberRepo.Add(ctx, group.Membership{UserID: missing, GroupID: g.ID})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = memberRepo.Add(ctx, group.Membership{UserID: u.ID, GroupID: missing})
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
	_, err = memberRepo.Add(ctx, group.Membership{UserID: "not-a-uuid", GroupID: g.ID})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = memberRepo.Add(ctx, group.Membership{UserID: u.ID, GroupID: "not-a-uuid"})
	assert.ErrorIs(t, err, group.ErrGroupNotFound)

	assert.ErrorIs(t, memberRepo.ReplaceForUser(ctx, missing, []string{g.ID}), user.ErrUserNotFound)
	assert.ErrorIs(t, memberRepo.ReplaceForUser(ctx, u.ID, []string{missing}), group.ErrGroupNotFound)
}
