package group

import "context"

// GroupService manages permission groups and memberships (admin only)
type GroupService interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	GetGroup(ctx context.Context, id string) (GroupResponse, error)
	ListGroups(ctx context.Context) ([]GroupResponse, error)
	UpdateGroup(ctx context.Context, req UpdateGroupRequest) (GroupResponse, error)
	DeleteGroup(ctx context.Context, id string) error

	ListMembers(ctx context.Context, groupID string) ([]MemberResponse, error)
	AddMember(ctx context.Context, groupID string, userID string) (MemberResponse, error)
	RemoveMember(ctx context.Context, groupID string, userID string) error
	AssignUserGroups(ctx context.Context, req AssignGroupsRequest) ([]GroupResponse, error)
	ListUserGroups(ctx context.Context, userID string) ([]GroupResponse, error)
}
