package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `a.id, a.user_id, a.date, a.check_in, a.check_out, a.created_at, a.updated_at, u.username, u.full_name`

type attendanceRepository struct {
	db  *database.DB
	loc *time.Location
}

// NewAttendanceRepository returns a Store whose dates are calendar days in loc.
func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.Store {
	return &attendanceRepository{db: db, loc: loc}
}

func (a *attendanceRepository) scanRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	var date time.Time
	err := row.Scan(
		&rec.ID, &rec.UserID, &date, &rec.CheckIn, &rec.CheckOut,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.Username, &rec.FullName,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	// DATE comes back as UTC midnight; re-anchor it in the configured location.
	rec.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, a.loc)
	return rec, nil
}

func dateArg(date time.Time) string {
	return date.Format(validator.DateLayout)
}

// GetRecord implements attendance.Store.
func (a *attendanceRepository) GetRecord(ctx context.Context, userID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_logs a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.date = $2::date
	`
	rec, err := a.scanRecord(q.QueryRow(ctx, query, userID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &rec, nil
}

// UpsertCheckIn implements attendance.Store.
// The conflict branch only fires while check_in is still empty, so concurrent
// callers for the same day see exactly one success.
func (a *attendanceRepository) UpsertCheckIn(ctx context.Context, userID string, date time.Time, at time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		WITH a AS (
			INSERT INTO attendance_logs (id, user_id, date, check_in)
			VALUES ($1, $2, $3::date, $4)
			ON CONFLICT (user_id, date) DO UPDATE
				SET check_in = EXCLUDED.check_in, updated_at = NOW()
				WHERE attendance_logs.check_in IS NULL
			RETURNING *
		)
		SELECT ` + recordColumns + `
		FROM a
		JOIN users u ON u.id = a.user_id
	`
	rec, err := a.scanRecord(q.QueryRow(ctx, query, id.String(), userID, dateArg(date), at))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
		case database.IsForeignKeyViolation(err, ""), database.IsInvalidTextRepresentation(err):
			return attendance.AttendanceRecord{}, user.ErrUserNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to check in: %w", err)
	}
	return rec, nil
}

// SetCheckOut implements attendance.Store.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, userID string, date time.Time, at time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH a AS (
			UPDATE attendance_logs
			SET check_out = $3, updated_at = NOW()
			WHERE user_id = $1 AND date = $2::date
			  AND check_in IS NOT NULL AND check_out IS NULL AND check_in < $3
			RETURNING *
		)
		SELECT ` + recordColumns + `
		FROM a
		JOIN users u ON u.id = a.user_id
	`
	rec, err := a.scanRecord(q.QueryRow(ctx, query, userID, dateArg(date), at))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to check out: %w", err)
	}

	// Nothing matched; find out which precondition failed.
	current, err := a.GetRecord(ctx, userID, date)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	switch {
	case current == nil || current.CheckIn == nil:
		return attendance.AttendanceRecord{}, attendance.ErrNotCheckedIn
	case current.CheckOut != nil:
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedOut
	default:
		return attendance.AttendanceRecord{}, attendance.ErrInvalidOrder
	}
}

// List implements attendance.Store.
func (a *attendanceRepository) List(ctx context.Context, rq attendance.RecordQuery) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if rq.StartDate != nil {
		where += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, dateArg(*rq.StartDate))
		argIdx++
	}
	if rq.EndDate != nil {
		where += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, dateArg(*rq.EndDate))
		argIdx++
	}
	if rq.UserID != nil {
		where += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *rq.UserID)
		argIdx++
	}

	sortOrder := "DESC"
	if rq.SortOrder == attendance.SortAsc {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_logs a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date %s, u.username ASC
	`, recordColumns, where, sortOrder)

	if rq.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, rq.Limit)
	}

	return a.queryRecords(ctx, q, query, args...)
}

// ListByDate implements attendance.Store.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_logs a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1::date
		ORDER BY a.check_in ASC NULLS LAST, u.username ASC
	`
	return a.queryRecords(ctx, q, query, dateArg(date))
}

func (a *attendanceRepository) queryRecords(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.AttendanceRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records := []attendance.AttendanceRecord{}
	for rows.Next() {
		rec, err := a.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		if database.IsInvalidTextRepresentation(err) {
			return []attendance.AttendanceRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}
	return records, nil
}
