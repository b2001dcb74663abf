package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/studygo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

var stamp = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC).Format(time.RFC3339)

func insertUser(ctx context.Context, tx db.DBTX, id, username string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		id, username, "hash", stamp)
	return err
}

func insertChat(ctx context.Context, tx db.DBTX, id, userID, title string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO chats (id, user_id, title, messages_json, timestamp) VALUES (?, ?, ?, ?, ?)`,
		id, userID, title, `[{"role":"user","content":"hi"}]`, stamp)
	return err
}

func insertTimetable(ctx context.Context, tx db.DBTX, userID, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO timetables (user_id, name, schedule_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, name, `{"Day 1":[{"topic":"X","hours":2}]}`, stamp, stamp)
	return err
}

func count(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "u1", "ana"); err != nil {
			return err
		}
		if err := insertChat(ctx, tx, "c1", "u1", "Calculus"); err != nil {
			return err
		}
		return insertTimetable(ctx, tx, "u1", "Finals")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count(t, database, "users"))
	assert.Equal(t, 1, count(t, database, "chats"))
	assert.Equal(t, 1, count(t, database, "timetables"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "u1", "ana"); err != nil {
			return err
		}
		if err := insertTimetable(ctx, tx, "u1", "Finals"); err != nil {
			return err
		}
		return errors.New("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.Zero(t, count(t, database, "users"))
	assert.Zero(t, count(t, database, "timetables"))
}

func TestWithinTx_ForeignKeyFailureUndoesEarlierWrites(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "u1", "ana"); err != nil {
			return err
		}
		return insertChat(ctx, tx, "c1", "missing-user", "Orphan")
	})
	require.Error(t, err)

	assert.Zero(t, count(t, database, "users"))
	assert.Zero(t, count(t, database, "chats"))
}

// The account-delete order: owned rows first, then the user. A failure after
// the child deletes must leave everything in place.
func TestWithinTx_PartialCascadeRollsBack(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "u1", "ana"); err != nil {
			return err
		}
		if err := insertChat(ctx, tx, "c1", "u1", "Calculus"); err != nil {
			return err
		}
		return insertTimetable(ctx, tx, "u1", "Finals")
	}))

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE user_id = ?`, "u1"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM timetables WHERE user_id = ?`, "u1"); err != nil {
			return err
		}
		return errors.New("user delete failed")
	})
	require.Error(t, err)

	assert.Equal(t, 1, count(t, database, "users"))
	assert.Equal(t, 1, count(t, database, "chats"))
	assert.Equal(t, 1, count(t, database, "timetables"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			_ = insertUser(ctx, tx, "u1", "ana")
			panic("boom")
		})
	})

	assert.Zero(t, count(t, database, "users"))
}
