package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studygo/internal/db"
	"github.com/alexanderramin/studygo/internal/domain"
)

// SQLiteTimetableRepo implements TimetableRepo using a SQLite database. The
// schedule is stored as its JSON object form, days in order.
type SQLiteTimetableRepo struct {
	db db.DBTX
}

func NewSQLiteTimetableRepo(conn db.DBTX) *SQLiteTimetableRepo {
	return &SQLiteTimetableRepo{db: conn}
}

// Upsert saves rec, replacing the schedule already saved under the same name.
// The original creation time is kept.
func (r *SQLiteTimetableRepo) Upsert(ctx context.Context, rec *domain.TimetableRecord) error {
	data, err := json.Marshal(rec.Schedule)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	query := `INSERT INTO timetables (user_id, name, schedule_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO UPDATE SET
			schedule_json = excluded.schedule_json,
			updated_at    = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		rec.UserID,
		rec.Name,
		string(data),
		formatTime(rec.CreatedAt),
		formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting timetable: %w", err)
	}
	return nil
}

func (r *SQLiteTimetableRepo) GetByName(ctx context.Context, userID, name string) (*domain.TimetableRecord, error) {
	query := `SELECT user_id, name, schedule_json, created_at, updated_at FROM timetables
		WHERE user_id = ? AND name = ?`
	rec, err := scanTimetable(r.db.QueryRowContext(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(fmt.Sprintf("timetable %q", name))
		}
		return nil, err
	}
	return rec, nil
}

// ListByUser returns saved timetables in creation order.
func (r *SQLiteTimetableRepo) ListByUser(ctx context.Context, userID string) ([]*domain.TimetableRecord, error) {
	query := `SELECT user_id, name, schedule_json, created_at, updated_at FROM timetables
		WHERE user_id = ? ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing timetables: %w", err)
	}
	defer rows.Close()

	var out []*domain.TimetableRecord
	for rows.Next() {
		rec, err := scanTimetable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteTimetableRepo) Delete(ctx context.Context, userID, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timetables WHERE user_id = ? AND name = ?`, userID, name)
	if err != nil {
		return fmt.Errorf("deleting timetable: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("timetable %q", name))
}

func (r *SQLiteTimetableRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timetables WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting timetables: %w", err)
	}
	return nil
}

func scanTimetable(s scanner) (*domain.TimetableRecord, error) {
	var rec domain.TimetableRecord
	var data, createdAt, updatedAt string
	if err := s.Scan(&rec.UserID, &rec.Name, &data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning timetable: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &rec.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule %q: %w", rec.Name, err)
	}
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}
