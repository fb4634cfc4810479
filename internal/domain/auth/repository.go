package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository keeps hashed refresh tokens so they can be revoked on logout.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports true for revoked, expired or unknown tokens
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// PruneRefreshTokens deletes tokens that expired or were revoked before the cutoff
	PruneRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}
