package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.UserRepository {
	return &userRepository{db: db}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == newUser.Username {
			return user.User{}, user.ErrUsernameExists
		}
	}

	if newUser.ID == "" {
		id, err := newID()
		if err != nil {
			return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
		}
		newUser.ID = id
	}
	now := time.Now()
	newUser.CreatedAt = now
	newUser.UpdatedAt = now
	r.db.users[newUser.ID] = newUser
	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// ListActive implements user.UserRepository.
func (r *userRepository) ListActive(ctx context.Context, role *user.Role) ([]user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	users := []user.User{}
	for _, u := range r.db.users {
		if !u.IsActive || (role != nil && u.Role != *role) {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// SetActive implements user.UserRepository.
func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now()
	r.db.users[id] = u
	return nil
}

// CountActive implements user.UserRepository.
func (r *userRepository) CountActive(ctx context.Context, role user.Role) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var count int64
	for _, u := range r.db.users {
		if u.IsActive && u.Role == role {
			count++
		}
	}
	return count, nil
}
