package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type groupRepositoryImpl struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) group.GroupRepository {
	return &groupRepositoryImpl{db: db}
}

func toDayArray(set calendar.WeekdaySet) []int32 {
	days := make([]int32, 0, len(set))
	for _, d := range set.Slice() {
		days = append(days, int32(d))
	}
	return days
}

func fromDayArray(days []int32) calendar.WeekdaySet {
	set := make(calendar.WeekdaySet, len(days))
	for _, d := range days {
		set[calendar.Weekday(d)] = struct{}{}
	}
	return set
}

func scanGroup(row pgx.Row, withCount bool) (group.PermissionGroup, error) {
	var g group.PermissionGroup
	var days []int32
	dest := []any{&g.ID, &g.Name, &days, &g.CreatedAt, &g.UpdatedAt}
	if withCount {
		dest = append(dest, &g.MemberCount)
	}
	if err := row.Scan(dest...); err != nil {
		return group.PermissionGroup{}, err
	}
	g.AllowedWeekdays = fromDayArray(days)
	return g, nil
}

// Create implements group.GroupRepository.
func (r *groupRepositoryImpl) Create(ctx context.Context, newGroup group.PermissionGroup) (group.PermissionGroup, error) {
	q := GetQuerier(ctx, r.db)

	if newGroup.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return group.PermissionGroup{}, fmt.Errorf("failed to generate group id: %w", err)
		}
		newGroup.ID = id.String()
	}

	query := `
		INSERT INTO attendance_groups (id, name, allowed_days)
		VALUES ($1, $2, $3)
		RETURNING id, name, allowed_days, created_at, updated_at
	`
	created, err := scanGroup(q.QueryRow(ctx, query, newGroup.ID, newGroup.Name, toDayArray(newGroup.AllowedWeekdays)), false)
	if err != nil {
		if database.IsUniqueViolation(err, "attendance_groups_name_key") {
			return group.PermissionGroup{}, group.ErrDuplicateName
		}
		return group.PermissionGroup{}, fmt.Errorf("failed to create group: %w", err)
	}
	return created, nil
}

// GetByID implements group.GroupRepository.
func (r *groupRepositoryImpl) GetByID(ctx context.Context, id string) (group.PermissionGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.name, g.allowed_days, g.created_at, g.updated_at,
		       (SELECT COUNT(*) FROM user_groups ug WHERE ug.group_id = g.id)
		FROM attendance_groups g
		WHERE g.id = $1
	`
	g, err := scanGroup(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidTextRepresentation(err) {
			return group.PermissionGroup{}, group.ErrGroupNotFound
		}
		return group.PermissionGroup{}, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

// List implements group.GroupRepository.
func (r *groupRepositoryImpl) List(ctx context.Context) ([]group.PermissionGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.name, g.allowed_days, g.created_at, g.updated_at, COUNT(ug.user_id)
		FROM attendance_groups g
		LEFT JOIN user_groups ug ON ug.group_id = g.id
		GROUP BY g.id
		ORDER BY g.name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []group.PermissionGroup{}
	for rows.Next() {
		g, err := scanGroup(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Update implements group.GroupRepository.
func (r *groupRepositoryImpl) Update(ctx context.Context, g group.PermissionGroup) (group.PermissionGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_groups
		SET name = $1, allowed_days = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, allowed_days, created_at, updated_at
	`
	updated, err := scanGroup(q.QueryRow(ctx, query, g.Name, toDayArray(g.AllowedWeekdays), g.ID), false)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), database.IsInvalidTextRepresentation(err):
			return group.PermissionGroup{}, group.ErrGroupNotFound
		case database.IsUniqueViolation(err, "attendance_groups_name_key"):
			return group.PermissionGroup{}, group.ErrDuplicateName
		}
		return group.PermissionGroup{}, fmt.Errorf("failed to update group: %w", err)
	}
	updated.MemberCount = g.MemberCount
	return updated, nil
}

// Delete implements group.GroupRepository.
func (r *groupRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_groups WHERE id = $1`, id)
	if err != nil {
		if database.IsInvalidTextRepresentation(err) {
			return group.ErrGroupNotFound
		}
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}
	return nil
}

// Count implements group.GroupRepository.
func (r *groupRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_groups`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}
