package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	userGroupsUserFK  = "user_groups_user_id_fkey"
	userGroupsGroupFK = "user_groups_group_id_fkey"
)

type membershipRepositoryImpl struct {
	db *database.DB
}

func NewMembershipRepository(db *database.DB) group.MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

// Add implements group.MembershipRepository.
func (r *membershipRepositoryImpl) Add(ctx context.Context, m group.Membership) (group.Membership, error) {
	if _, err := uuid.Parse(m.UserID); err != nil {
		return group.Membership{}, user.ErrUserNotFound
	}
	if _, err := uuid.Parse(m.GroupID); err != nil {
		return group.Membership{}, group.ErrGroupNotFound
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_groups (user_id, group_id)
		VALUES ($1, $2)
		RETURNING assigned_at
	`
	if err := q.QueryRow(ctx, query, m.UserID, m.GroupID).Scan(&m.AssignedAt); err != nil {
		switch {
		case database.IsUniqueViolation(err, "user_groups_pkey"):
			return group.Membership{}, group.ErrMembershipExists
		case database.IsForeignKeyViolation(err, userGroupsUserFK):
			return group.Membership{}, user.ErrUserNotFound
		case database.IsForeignKeyViolation(err, userGroupsGroupFK):
			return group.Membership{}, group.ErrGroupNotFound
		}
		return group.Membership{}, fmt.Errorf("failed to add membership: %w", err)
	}
	return m, nil
}

// Remove implements group.MembershipRepository.
func (r *membershipRepositoryImpl) Remove(ctx context.Context, userID string, groupID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM user_groups WHERE user_id = $1 AND group_id = $2`, userID, groupID)
	if err != nil {
		if database.IsInvalidTextRepresentation(err) {
			return group.ErrMembershipNotFound
		}
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrMembershipNotFound
	}
	return nil
}

// ListGroupsByUser implements group.MembershipRepository.
func (r *membershipRepositoryImpl) ListGroupsByUser(ctx context.Context, userID string) ([]group.PermissionGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.name, g.allowed_days, g.created_at, g.updated_at
		FROM user_groups ug
		JOIN attendance_groups g ON g.id = ug.group_id
		WHERE ug.user_id = $1
		ORDER BY g.name
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		if database.IsInvalidTextRepresentation(err) {
			return []group.PermissionGroup{}, nil
		}
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	defer rows.Close()

	groups := []group.PermissionGroup{}
	for rows.Next() {
		g, err := scanGroup(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListMembers implements group.MembershipRepository.
func (r *membershipRepositoryImpl) ListMembers(ctx context.Context, groupID string) ([]group.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ug.user_id, ug.group_id, ug.assigned_at, u.username, u.full_name, g.name
		FROM user_groups ug
		JOIN users u ON u.id = ug.user_id
		JOIN attendance_groups g ON g.id = ug.group_id
		WHERE ug.group_id = $1
		ORDER BY u.username
	`
	rows, err := q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []group.Membership{}
	for rows.Next() {
		var m group.Membership
		if err := rows.Scan(&m.UserID, &m.GroupID, &m.AssignedAt, &m.Username, &m.FullName, &m.GroupName); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ReplaceForUser implements group.MembershipRepository.
func (r *membershipRepositoryImpl) ReplaceForUser(ctx context.Context, userID string, groupIDs []string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return user.ErrUserNotFound
	}
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_groups WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear memberships: %w", err)
		}
		if len(groupIDs) == 0 {
			return nil
		}

		query := `
			INSERT INTO user_groups (user_id, group_id)
			SELECT $1, gid FROM unnest($2::uuid[]) AS gid
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, query, userID, groupIDs); err != nil {
			switch {
			case database.IsForeignKeyViolation(err, userGroupsUserFK):
				return user.ErrUserNotFound
			case database.IsForeignKeyViolation(err, userGroupsGroupFK), database.IsInvalidTextRepresentation(err):
				return group.ErrGroupNotFound
			}
			return fmt.Errorf("failed to insert memberships: %w", err)
		}
		return nil
	})
}
