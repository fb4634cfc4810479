package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type membershipRepository struct {
	db *DB
}

func NewMembershipRepository(db *DB) group.MembershipRepository {
	return &membershipRepository{db: db}
}

func (db *DB) joinMembership(m group.Membership) group.Membership {
	u := db.users[m.UserID]
	m.Username = u.Username
	m.FullName = u.FullName
	m.GroupName = db.groups[m.GroupID].Name
	return m
}

// Add implements group.MembershipRepository.
func (r *membershipRepository) Add(ctx context.Context, m group.Membership) (group.Membership, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[m.UserID]; !ok {
		return group.Membership{}, user.ErrUserNotFound
	}
	if _, ok := r.db.groups[m.GroupID]; !ok {
		return group.Membership{}, group.ErrGroupNotFound
	}
	key := membershipKey{userID: m.UserID, groupID: m.GroupID}
	if _, ok := r.db.memberships[key]; ok {
		return group.Membership{}, group.ErrMembershipExists
	}
	m.AssignedAt = time.Now()
	r.db.memberships[key] = group.Membership{UserID: m.UserID, GroupID: m.GroupID, AssignedAt: m.AssignedAt}
	return r.db.joinMembership(m), nil
}

// Remove implements group.MembershipRepository.
func (r *membershipRepository) Remove(ctx context.Context, userID string, groupID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := membershipKey{userID: userID, groupID: groupID}
	if _, ok := r.db.memberships[key]; !ok {
		return group.ErrMembershipNotFound
	}
	delete(r.db.memberships, key)
	return nil
}

// ListGroupsByUser implements group.MembershipRepository.
func (r *membershipRepository) ListGroupsByUser(ctx context.Context, userID string) ([]group.PermissionGroup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	groups := []group.PermissionGroup{}
	for key := range r.db.memberships {
		if key.userID != userID {
			continue
		}
		if g, ok := r.db.groups[key.groupID]; ok {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

// ListMembers implements group.MembershipRepository.
func (r *membershipRepository) ListMembers(ctx context.Context, groupID string) ([]group.Membership, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	members := []group.Membership{}
	for key, m := range r.db.memberships {
		if key.groupID == groupID {
			members = append(members, r.db.joinMembership(m))
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Username < members[j].Username })
	return members, nil
}

// ReplaceForUser implements group.MembershipRepository.
func (r *membershipRepository) ReplaceForUser(ctx context.Context, userID string, groupIDs []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[userID]; !ok {
		return user.ErrUserNotFound
	}
	for _, id := range groupIDs {
		if _, ok := r.db.groups[id]; !ok {
			return group.ErrGroupNotFound
		}
	}

	for key := range r.db.memberships {
		if key.userID == userID {
			delete(r.db.memberships, key)
		}
	}
	now := time.Now()
	for _, id := range groupIDs {
		r.db.memberships[membershipKey{userID: userID, groupID: id}] = group.Membership{
			UserID:     userID,
			GroupID:    id,
			AssignedAt: now,
		}
	}
	return nil
}
