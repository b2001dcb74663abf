package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/intelligence"
	"github.com/alexanderramin/studygo/internal/llm"
	"github.com/alexanderramin/studygo/internal/repository"
	"github.com/alexanderramin/studygo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyChatRepo fails Save a fixed number of times before delegating.
type flakyChatRepo struct {
	repository.ChatRepo
	failures int
	saves    int
}

func (r *flakyChatRepo) Save(ctx context.Context, rec *domain.ChatRecord) error {
	r.saves++
	if r.failures > 0 {
		r.failures--
		return errors.New("database is locked")
	}
	return r.ChatRepo.Save(ctx, rec)
}

func newChatService(client llm.LLMClient, chats repository.ChatRepo) ChatService {
	return NewChatService(intelligence.NewChatGuardrail(client), chats)
}

func TestChatService_Send_SavesOnceAfterFirstReply(t *testing.T) {
	database := testutil.NewTestDB(t)
	id := seedIdentity(t, repository.NewSQLiteUserRepo(database), "ana")
	chats := repository.NewSQLiteChatRepo(database)
	svc := newChatService(replies("Start with limits.", "Then derivatives."), chats)
	ctx := context.Background()
	session := domain.NewChatSession()

	reply, err := svc.Send(ctx, id, session, "  How should I learn calculus?  ")
	require.NoError(t, err)
	assert.Equal(t, "Start with limits.", reply)
	assert.True(t, session.Saved)

	_, err = svc.Send(ctx, id, session, "And after that?")
	require.NoError(t, err)

	recs, err := chats.ListByUser(ctx, id.UserID)
	require.NoError(t, err)
	require.Len(t, recs, 1, "a transcript is stored once")
	assert.Equal(t, "How should I learn calculus?", recs[0].Title)
	assert.Len(t, recs[0].Messages, 2, "the stored copy is the transcript at save time")

	user, assistant := session.Counts()
	assert.Equal(t, 2, user)
	assert.Equal(t, 2, assistant)
}

func TestChatService_Send_PassesPriorTurns(t *testing.T) {
	client := replies("first", "second")
	svc := newChatService(client, &flakyChatRepo{})
	session := domain.NewChatSession()
	ctx := context.Background()

	_, err := svc.Send(ctx, domain.Guest(), session, "one")
	require.NoError(t, err)
	_, err = svc.Send(ctx, domain.Guest(), session, "two")
	require.NoError(t, err)

	require.Len(t, client.calls, 2)
	assert.Contains(t, client.calls[1].UserPrompt, "user: one\nassistant: first")
	assert.Contains(t, client.calls[1].UserPrompt, "New Question: two")
	assert.NotContains(t, client.calls[1].UserPrompt, "user: two")
}

func TestChatService_Send_GuestNeverSaves(t *testing.T) {
	repo := &flakyChatRepo{}
	svc := newChatService(replies("answer"), repo)
	session := domain.NewChatSession()

	_, err := svc.Send(context.Background(), domain.Guest(), session, "What is a vector?")
	require.NoError(t, err)
	assert.False(t, session.Saved)
	assert.Zero(t, repo.saves)
}

func TestChatService_Send_EmptyMessage(t *testing.T) {
	client := replies()
	svc := newChatService(client, &flakyChatRepo{})

	_, err := svc.Send(context.Background(), domain.Guest(), domain.NewChatSession(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, client.calls)
}

func TestChatService_Send_GenerationFailureApologizes(t *testing.T) {
	client := &scriptedLLMClient{replies: []scriptedReply{{err: llm.ErrUnavailable}}}
	svc := newChatService(client, &flakyChatRepo{})
	session := domain.NewChatSession()

	reply, err := svc.Send(context.Background(), domain.Guest(), session, "Explain recursion")
	require.NoError(t, err)
	assert.Equal(t, intelligence.ApologyReply, reply)
	require.Len(t, session.Transcript, 2)
	assert.Equal(t, intelligence.ApologyReply, session.Transcript[1].Content)
}

func TestChatService_Send_SaveFailureRetriesNextTurn(t *testing.T) {
	database := testutil.NewTestDB(t)
	id := seedIdentity(t, repository.NewSQLiteUserRepo(database), "ana")
	repo := &flakyChatRepo{ChatRepo: repository.NewSQLiteChatRepo(database), failures: 1}
	svc := newChatService(replies("a1", "a2"), repo)
	ctx := context.Background()
	session := domain.NewChatSession()

	reply, err := svc.Send(ctx, id, session, "q1")
	assert.Equal(t, "a1", reply, "the reply survives a failed save")
	assert.ErrorIs(t, err, ErrChatNotSaved)
	assert.False(t, session.Saved)

	_, err = svc.Send(ctx, id, session, "q2")
	require.NoError(t, err)
	assert.True(t, session.Saved)
	assert.Equal(t, 2, repo.saves)

	recs, err := repo.ListByUser(ctx, id.UserID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "q1", recs[0].Title)
	assert.Len(t, recs[0].Messages, 4)
}

func TestChatService_HistoryLoadDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	id := seedIdentity(t, repository.NewSQLiteUserRepo(database), "ana")
	chats := repository.NewSQLiteChatRepo(database)
	ctx := context.Background()
	require.NoError(t, chats.Save(ctx, testutil.NewTestChat(id.UserID, "Plan for statistics")))

	client := replies("more detail")
	svc := newChatService(client, chats)

	history, err := svc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history.Records, 1)

	session := domain.NewChatSession()
	require.NoError(t, svc.Load(ctx, id, session, 0))
	assert.True(t, session.Saved)
	require.NotNil(t, session.SelectedIndex)
	assert.Equal(t, 0, *session.SelectedIndex)
	assert.Len(t, session.Transcript, 2)

	// Continuing a loaded chat does not store a second copy.
	_, err = svc.Send(ctx, id, session, "Go deeper")
	require.NoError(t, err)
	recs, err := chats.ListByUser(ctx, id.UserID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	assert.ErrorIs(t, svc.Load(ctx, id, session, 3), repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, id, "Plan for statistics"))
	assert.ErrorIs(t, svc.Delete(ctx, id, "Plan for statistics"), repository.ErrNotFound)
}

func TestChatService_GuestHasNoHistory(t *testing.T) {
	svc := newChatService(replies(), &flakyChatRepo{})
	ctx := context.Background()

	_, err := svc.History(ctx, domain.Guest())
	assert.ErrorIs(t, err, ErrGuest)
	assert.ErrorIs(t, svc.Load(ctx, domain.Guest(), domain.NewChatSession(), 0), ErrGuest)
	assert.ErrorIs(t, svc.Delete(ctx, domain.Guest(), "x"), ErrGuest)
}
