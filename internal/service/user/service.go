package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	group.MembershipRepository
}

func NewUserService(userRepository user.UserRepository, membershipRepository group.MembershipRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository:       userRepository,
		MembershipRepository: membershipRepository,
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserServiceImpl) toResponse(ctx context.Context, u user.User) (user.UserResponse, error) {
	groups, err := s.MembershipRepository.ListGroupsByUser(ctx, u.ID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to list user groups: %w", err)
	}

	resp := user.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		DisplayName: u.DisplayName(),
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		Groups:      make([]user.GroupSummary, 0, len(groups)),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, user.GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			AllowedDays: g.AllowedWeekdays.String(),
		})
	}
	return resp, nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("Created user", "user_id", created.ID, "username", created.Username, "role", created.Role)
	return s.toResponse(ctx, created)
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return s.toResponse(ctx, u)
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.ListActive(ctx, nil)
	if err != nil {
		return nil, err
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		r, err := s.toResponse(ctx, u)
		if err != nil {
			return nil, err
		}
		resp = append(resp, r)
	}
	return resp, nil
}

// SetActive implements user.UserService.
func (s *UserServiceImpl) SetActive(ctx context.Context, req user.SetActiveRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.SetActive(ctx, req.ID, *req.IsActive); err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("Updated user active flag", "user_id", req.ID, "is_active", *req.IsActive)
	return s.GetUser(ctx, req.ID)
}
