package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, testLoc)
}

func TestAttendanceStore_CheckInCheckOut(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := postgresql.NewAttendanceRepository(db, testLoc)
	u := createTestUser(t, db, "employee1")

	date := day(2024, time.January, 1)
	in := time.Date(2024, 1, 1, 9, 0, 0, 0, testLoc)
	out := time.Date(2024, 1, 1, 17, 30, 0, 0, testLoc)

	rec, err := store.GetRecord(ctx, u.ID, date)
	require.NoError(t, err)
	assert.Nil(t, rec)

	created, err := store.UpsertCheckIn(ctx, u.ID, date, in)
	require.NoError(t, err)
	assert.True(t, created.CheckIn.Equal(in))
	assert.Equal(t, date, created.Date)
	assert.Equal(t, "employee1", created.Username)

	_, err = store.UpsertCheckIn(ctx, u.ID, date, in.Add(time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = store.SetCheckOut(ctx, u.ID, date, in)
	assert.ErrorIs(t, err, attendance.ErrInvalidOrder)

	done, err := store.SetCheckOut(ctx, u.ID, date, out)
	require.NoError(t, err)
	assert.Equal(t, 8.5, done.TotalHours())

	_, err = store.SetCheckOut(ctx, u.ID, date, out.Add(time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = store.SetCheckOut(ctx, u.ID, day(2024, time.January, 2), out)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	stored, err := store.GetRecord(ctx, u.ID, date)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.CheckIn.Equal(in))
	assert.True(t, stored.CheckOut.Equal(out))
}

func TestAttendanceStore_ConcurrentCheckIn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := postgresql.NewAttendanceRepository(db, testLoc)
	u := createTestUser(t, db, "employee1")

	date := day(2024, time.January, 1)
	const callers = 8

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.UpsertCheckIn(ctx, u.ID, date, time.Date(2024, 1, 1, 9, i, 0, 0, testLoc))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, already int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn):
			already++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, already)

	records, err := store.List(ctx, attendance.RecordQuery{UserID: &u.ID})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceStore_ListRangeAndOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := postgresql.NewAttendanceRepository(db, testLoc)
	bob := createTestUser(t, db, "bob")
	alice := createTestUser(t, db, "alice")

	for _, d := range []int{1, 3, 8} {
		for _, id := range []string{bob.ID, alice.ID} {
			_, err := store.UpsertCheckIn(ctx, id, day(2024, time.January, d), time.Date(2024, 1, d, 9, 0, 0, 0, testLoc))
			require.NoError(t, err)
		}
	}

	start, end := day(2024, time.January, 1), day(2024, time.January, 7)
	records, err := store.List(ctx, attendance.RecordQuery{StartDate: &start, EndDate: &end, SortOrder: attendance.SortAsc})
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, "bob", records[1].Username)
	assert.Equal(t, day(2024, time.January, 1), records[0].Date)
	assert.Equal(t, day(2024, time.January, 3), records[3].Date)

	desc, err := store.List(ctx, attendance.RecordQuery{UserID: &bob.ID, SortOrder: attendance.SortDesc})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, day(2024, time.January, 8), desc[0].Date)

	byDate, err := store.ListByDate(ctx, day(2024, time.January, 3))
	require.NoError(t, err)
	assert.Len(t, byDate, 2)
}
