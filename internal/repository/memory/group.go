package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
)

type groupRepository struct {
	db *DB
}

func NewGroupRepository(db *DB) group.GroupRepository {
	return &groupRepository{db: db}
}

func (db *DB) memberCount(groupID string) int64 {
	var n int64
	for key := range db.memberships {
		if key.groupID == groupID {
			n++
		}
	}
	return n
}

func (db *DB) nameTaken(name, exceptID string) bool {
	for _, g := range db.groups {
		if g.Name == name && g.ID != exceptID {
			return true
		}
	}
	return false
}

// Create implements group.GroupRepository.
func (r *groupRepository) Create(ctx context.Context, newGroup group.PermissionGroup) (group.PermissionGroup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.nameTaken(newGroup.Name, "") {
		return group.PermissionGroup{}, group.ErrDuplicateName
	}
	if newGroup.ID == "" {
		id, err := newID()
		if err != nil {
			return group.PermissionGroup{}, fmt.Errorf("failed to generate group id: %w", err)
		}
		newGroup.ID = id
	}
	now := time.Now()
	newGroup.AllowedWeekdays = copyDays(newGroup.AllowedWeekdays)
	newGroup.CreatedAt = now
	newGroup.UpdatedAt = now
	newGroup.MemberCount = 0
	r.db.groups[newGroup.ID] = newGroup
	return newGroup, nil
}

// GetByID implements group.GroupRepository.
func (r *groupRepository) GetByID(ctx context.Context, id string) (group.PermissionGroup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	g, ok := r.db.groups[id]
	if !ok {
		return group.PermissionGroup{}, group.ErrGroupNotFound
	}
	g.MemberCount = r.db.memberCount(id)
	return g, nil
}

// List implements group.GroupRepository.
func (r *groupRepository) List(ctx context.Context) ([]group.PermissionGroup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	groups := make([]group.PermissionGroup, 0, len(r.db.groups))
	for _, g := range r.db.groups {
		g.MemberCount = r.db.memberCount(g.ID)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

// Update implements group.GroupRepository.
func (r *groupRepository) Update(ctx context.Context, g group.PermissionGroup) (group.PermissionGroup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.groups[g.ID]
	if !ok {
		return group.PermissionGroup{}, group.ErrGroupNotFound
	}
	if r.db.nameTaken(g.Name, g.ID) {
		return group.PermissionGroup{}, group.ErrDuplicateName
	}
	current.Name = g.Name
	current.AllowedWeekdays = copyDays(g.AllowedWeekdays)
	current.UpdatedAt = time.Now()
	r.db.groups[g.ID] = current

	current.MemberCount = r.db.memberCount(g.ID)
	return current, nil
}

// Delete implements group.GroupRepository.
func (r *groupRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.groups[id]; !ok {
		return group.ErrGroupNotFound
	}
	delete(r.db.groups, id)
	for key := range r.db.memberships {
		if key.groupID == id {
			delete(r.db.memberships, key)
		}
	}
	return nil
}

// Count implements group.GroupRepository.
func (r *groupRepository) Count(ctx context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return int64(len(r.db.groups)), nil
}
