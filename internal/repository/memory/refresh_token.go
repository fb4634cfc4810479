package memory

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revokedAt *time.Time
}

type refreshTokenRepository struct {
	db *DB
}

func NewRefreshTokenRepository(db *DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.refreshTokens[hashToken(token)] = refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *refreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.refreshTokens[hashToken(token)]
	if !ok || t.revokedAt != nil || !t.expiresAt.After(time.Now()) {
		return true, nil
	}
	return false, nil
}

func (r *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := hashToken(token)
	if t, ok := r.db.refreshTokens[key]; ok && t.revokedAt == nil {
		now := time.Now()
		t.revokedAt = &now
		r.db.refreshTokens[key] = t
	}
	return nil
}

func (r *refreshTokenRepository) PruneRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var removed int64
	for key, t := range r.db.refreshTokens {
		if t.expiresAt.Before(before) || (t.revokedAt != nil && t.revokedAt.Before(before)) {
			delete(r.db.refreshTokens, key)
			removed++
		}
	}
	return removed, nil
}
