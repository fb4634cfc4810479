package group

import "context"

type GroupRepository interface {
	Create(ctx context.Context, newGroup PermissionGroup) (PermissionGroup, error)
	GetByID(ctx context.Context, id string) (PermissionGroup, error)
	// List returns all groups ordered by name with MemberCount populated
	List(ctx context.Context) ([]PermissionGroup, error)
	Update(ctx context.Context, g PermissionGroup) (PermissionGroup, error)
	// Delete removes the group and, by cascade, its memberships
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type MembershipRepository interface {
	Add(ctx context.Context, m Membership) (Membership, error)
	Remove(ctx context.Context, userID string, groupID string) error
	// ListGroupsByUser returns the groups a user belongs to, ordered by name
	ListGroupsByUser(ctx context.Context, userID string) ([]PermissionGroup, error)
	// ListMembers returns the memberships of a group ordered by username
	ListMembers(ctx context.Context, groupID string) ([]Membership, error)
	// ReplaceForUser drops every membership of userID and inserts one per groupID
	ReplaceForUser(ctx context.Context, userID string, groupIDs []string) error
}
