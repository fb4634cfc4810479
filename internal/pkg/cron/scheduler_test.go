package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	before  time.Time
	removed int64
	err     error
}

func (f *fakePruner) PruneRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	f.before = before
	return f.removed, f.err
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	// Ignored once started.
	s.AddJob("late", time.Hour, func(ctx context.Context) error { return nil })
	assert.Len(t, s.jobs, 1)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error { runs.Add(1); return nil })
	s.AddJob("b", time.Hour, func(ctx context.Context) error { runs.Add(1); return errors.New("boom") })

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), runs.Load())
}

func TestSessionCleanupJob(t *testing.T) {
	pruner := &fakePruner{removed: 3}
	job := SessionCleanupJob(pruner, 24*time.Hour)

	require.NoError(t, job(context.Background()))
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), pruner.before, time.Minute)

	pruner.err = errors.New("db down")
	assert.Error(t, job(context.Background()))
}
