package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *SQLiteUserRepo, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestChatRepo_SaveAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteChatRepo(db)
	ctx := context.Background()

	rec := testutil.NewTestChat(u.ID, "How should I study organic chemistry?")
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, rec.Messages, got.Messages)
	assert.Equal(t, u.ID, got.UserID)
	assert.WithinDuration(t, rec.Timestamp, got.Timestamp, time.Second)
}

func TestChatRepo_Save_KeepsMultiTurnTranscript(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteChatRepo(db)
	ctx := context.Background()

	turns := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Wie lerne ich Ableitungen?"},
		{Role: domain.RoleAssistant, Content: "Start with limits."},
		{Role: domain.RoleUser, Content: "And then?"},
		{Role: domain.RoleAssistant, Content: "Practice the chain rule: f'(g(x))·g'(x)."},
	}
	rec := testutil.NewTestChat(u.ID, turns[0].Content, testutil.WithMessages(turns...))
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, turns, got.Messages)
}

func TestChatRepo_ListByUser_OldestFirstAndScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	ana := seedUser(t, users, "ana")
	ben := seedUser(t, users, "ben")
	repo := NewSQLiteChatRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(ana.ID, "second", testutil.WithTimestamp(base.Add(time.Hour)))))
	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(ana.ID, "first", testutil.WithTimestamp(base))))
	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(ben.ID, "other user", testutil.WithTimestamp(base))))

	list, err := repo.ListByUser(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
}

func TestChatRepo_DeleteByTitle_RemovesAllMatches(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteChatRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(u.ID, "Calculus")))
	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(u.ID, "Calculus")))
	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(u.ID, "Physics")))

	require.NoError(t, repo.DeleteByTitle(ctx, u.ID, "Calculus"))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Physics", list[0].Title)

	assert.ErrorIs(t, repo.DeleteByTitle(ctx, u.ID, "Calculus"), ErrNotFound)
}

func TestChatRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteChatRepo(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatRepo_DeleteByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteChatRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(u.ID, "a")))
	require.NoError(t, repo.Save(ctx, testutil.NewTestChat(u.ID, "b")))
	require.NoError(t, repo.DeleteByUser(ctx, u.ID))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
