package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/studygo/internal/db"
	"github.com/alexanderramin/studygo/internal/domain"
)

// SQLiteChatRepo implements ChatRepo using a SQLite database. Messages are
// stored as a JSON array.
type SQLiteChatRepo struct {
	db db.DBTX
}

func NewSQLiteChatRepo(conn db.DBTX) *SQLiteChatRepo {
	return &SQLiteChatRepo{db: conn}
}

func (r *SQLiteChatRepo) Save(ctx context.Context, rec *domain.ChatRecord) error {
	messages, err := json.Marshal(rec.Messages)
	if err != nil {
		return fmt.Errorf("encoding chat messages: %w", err)
	}
	query := `INSERT INTO chats (id, user_id, title, messages_json, timestamp) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, rec.ID, rec.UserID, rec.Title, string(messages), formatTime(rec.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting chat: %w", err)
	}
	return nil
}

func (r *SQLiteChatRepo) GetByID(ctx context.Context, id string) (*domain.ChatRecord, error) {
	query := `SELECT id, user_id, title, messages_json, timestamp FROM chats WHERE id = ?`
	rec, err := scanChat(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("chat")
		}
		return nil, err
	}
	return rec, nil
}

// ListByUser returns the user's transcripts, oldest first.
func (r *SQLiteChatRepo) ListByUser(ctx context.Context, userID string) ([]*domain.ChatRecord, error) {
	query := `SELECT id, user_id, title, messages_json, timestamp FROM chats
		WHERE user_id = ? ORDER BY timestamp, rowid`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChatRecord
	for rows.Next() {
		rec, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteChatRepo) DeleteByTitle(ctx context.Context, userID, title string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE user_id = ? AND title = ?`, userID, title)
	if err != nil {
		return fmt.Errorf("deleting chat: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("chat %q", title))
}

func (r *SQLiteChatRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting chats: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChat(s scanner) (*domain.ChatRecord, error) {
	var rec domain.ChatRecord
	var messages, ts string
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Title, &messages, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chat: %w", err)
	}
	if err := json.Unmarshal([]byte(messages), &rec.Messages); err != nil {
		return nil, fmt.Errorf("decoding messages of chat %s: %w", rec.ID, err)
	}
	rec.Timestamp = parseTime(ts)
	return &rec, nil
}
