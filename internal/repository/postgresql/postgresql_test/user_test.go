package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_Success(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	fullName := "John Doe"
	created, err := userRepo.Create(ctx, user.User{
		Username: "employee1",
		FullName: &fullName,
		Role:     user.RoleEmployee,
		IsActive: true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "employee1", created.Username)
	assert.Equal(t, "John Doe", created.DisplayName())
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "employee1")

	_, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		Username: "employee1",
		Role:     user.RoleEmployee,
	})

	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)
	created := createTestUser(t, db, "employee1")

	got, err := userRepo.GetByUsername(ctx, "employee1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = userRepo.GetByUsername(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = userRepo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_ListActiveAndSetActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	bob := createTestUser(t, db, "bob")
	createTestUser(t, db, "alice")

	require.NoError(t, userRepo.SetActive(ctx, bob.ID, false))

	users, err := userRepo.ListActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	role := user.RoleAdmin
	admins, err := userRepo.ListActive(ctx, &role)
	require.NoError(t, err)
	assert.Empty(t, admins)

	count, err := userRepo.CountActive(ctx, user.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
