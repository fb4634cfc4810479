package cron

import (
	"context"
	"log/slog"
	"time"
)

// TokenPruner deletes refresh tokens that expired or were revoked before a cutoff.
type TokenPruner interface {
	PruneRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

// SessionCleanupJob returns a job that drops refresh tokens older than retention.
func SessionCleanupJob(pruner TokenPruner, retention time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		removed, err := pruner.PruneRefreshTokens(ctx, time.Now().Add(-retention))
		if err != nil {
			return err
		}
		if removed > 0 {
			slog.Info("Pruned refresh tokens", "count", removed)
		}
		return nil
	}
}
