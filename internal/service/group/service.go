package group

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type GroupServiceImpl struct {
	group.GroupRepository
	group.MembershipRepository
	user.UserRepository
}

func NewGroupService(groupRepository group.GroupRepository, membershipRepository group.MembershipRepository, userRepository user.UserRepository) group.GroupService {
	return &GroupServiceImpl{
		GroupRepository:      groupRepository,
		MembershipRepository: membershipRepository,
		UserRepository:       userRepository,
	}
}

func toGroupResponse(g group.PermissionGroup) group.GroupResponse {
	return group.GroupResponse{
		ID:                 g.ID,
		Name:               g.Name,
		AllowedWeekdays:    g.AllowedWeekdays.Ints(),
		AllowedDaysDisplay: g.AllowedWeekdays.String(),
		MemberCount:        g.MemberCount,
		CreatedAt:          g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          g.UpdatedAt.Format(time.RFC3339),
	}
}

func toMemberResponse(m group.Membership) group.MemberResponse {
	return group.MemberResponse{
		UserID:      m.UserID,
		Username:    m.Username,
		DisplayName: user.DisplayName(m.FullName, m.Username),
		GroupID:     m.GroupID,
		GroupName:   m.GroupName,
		AssignedAt:  m.AssignedAt.Format(time.RFC3339),
	}
}

// CreateGroup implements group.GroupService.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	days, err := calendar.ParseWeekdays(req.AllowedWeekdays)
	if err != nil {
		return group.GroupResponse{}, err
	}

	created, err := s.GroupRepository.Create(ctx, group.PermissionGroup{
		Name:            req.Name,
		AllowedWeekdays: days,
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	slog.Info("Created attendance group", "group_id", created.ID, "name", created.Name, "allowed_days", created.AllowedWeekdays.String())
	return toGroupResponse(created), nil
}

// GetGroup implements group.GroupService.
func (s *GroupServiceImpl) GetGroup(ctx context.Context, id string) (group.GroupResponse, error) {
	g, err := s.GroupRepository.GetByID(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}
	return toGroupResponse(g), nil
}

// ListGroups implements group.GroupService.
func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]group.GroupResponse, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]group.GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g))
	}
	return resp, nil
}

// UpdateGroup implements group.GroupService.
func (s *GroupServiceImpl) UpdateGroup(ctx context.Context, req group.UpdateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	current, err := s.GroupRepository.GetByID(ctx, req.ID)
	if err != nil {
		return group.GroupResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.AllowedWeekdays != nil {
		days, err := calendar.ParseWeekdays(*req.AllowedWeekdays)
		if err != nil {
			return group.GroupResponse{}, err
		}
		current.AllowedWeekdays = days
	}

	updated, err := s.GroupRepository.Update(ctx, current)
	if err != nil {
		return group.GroupResponse{}, err
	}
	return toGroupResponse(updated), nil
}

// DeleteGroup implements group.GroupService.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, id string) error {
	if err := s.GroupRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Deleted attendance group", "group_id", id)
	return nil
}

// ListMembers implements group.GroupService.
func (s *GroupServiceImpl) ListMembers(ctx context.Context, groupID string) ([]group.MemberResponse, error) {
	if _, err := s.GroupRepository.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.MembershipRepository.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	resp := make([]group.MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}
	return resp, nil
}

// AddMember implements group.GroupService.
func (s *GroupServiceImpl) AddMember(ctx context.Context, groupID string, userID string) (group.MemberResponse, error) {
	g, err := s.GroupRepository.GetByID(ctx, groupID)
	if err != nil {
		return group.MemberResponse{}, err
	}
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return group.MemberResponse{}, err
	}

	m, err := s.MembershipRepository.Add(ctx, group.Membership{UserID: u.ID, GroupID: g.ID})
	if err != nil {
		return group.MemberResponse{}, err
	}
	m.Username = u.Username
	m.FullName = u.FullName
	m.GroupName = g.Name
	return toMemberResponse(m), nil
}

// RemoveMember implements group.GroupService.
func (s *GroupServiceImpl) RemoveMember(ctx context.Context, groupID string, userID string) error {
	return s.MembershipRepository.Remove(ctx, userID, groupID)
}

// AssignUserGroups implements group.GroupService.
func (s *GroupServiceImpl) AssignUserGroups(ctx context.Context, req group.AssignGroupsRequest) ([]group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.GroupIDs))
	seen := make(map[string]struct{}, len(req.GroupIDs))
	for _, id := range req.GroupIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.GroupRepository.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("group %s: %w", id, err)
		}
		ids = append(ids, id)
	}

	if err := s.MembershipRepository.ReplaceForUser(ctx, req.UserID, ids); err != nil {
		return nil, err
	}

	slog.Info("Assigned user groups", "user_id", req.UserID, "group_count", len(ids))
	return s.ListUserGroups(ctx, req.UserID)
}

// ListUserGroups implements group.GroupService.
func (s *GroupServiceImpl) ListUserGroups(ctx context.Context, userID string) ([]group.GroupResponse, error) {
	groups, err := s.MembershipRepository.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]group.GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g))
	}
	return resp, nil
}
