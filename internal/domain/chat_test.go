package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatTitle(t *testing.T) {
	assert.Equal(t, "short question", ChatTitle("short question"))

	exact := strings.Repeat("a", 40)
	assert.Equal(t, exact, ChatTitle(exact))

	long := strings.Repeat("b", 45)
	assert.Equal(t, strings.Repeat("b", 40)+"...", ChatTitle(long))
}

func TestChatTitle_CountsRunes(t *testing.T) {
	s := strings.Repeat("é", 41)
	assert.Equal(t, strings.Repeat("é", 40)+"...", ChatTitle(s))
}

func TestChatSession_AppendAndCounts(t *testing.T) {
	s := NewChatSession()
	assert.False(t, s.HasAssistantReply())

	s.Append(RoleUser, "How do I learn calculus?")
	s.Append(RoleAssistant, "Start with limits.")
	s.Append(RoleUser, "Then?")

	user, assistant := s.Counts()
	assert.Equal(t, 2, user)
	assert.Equal(t, 1, assistant)
	assert.True(t, s.HasAssistantReply())
	assert.Equal(t, "How do I learn calculus?", s.Title())
}

func TestChatSession_LoadAndReset(t *testing.T) {
	rec := &ChatRecord{
		Title:     "old",
		Messages:  []ChatMessage{{Role: RoleUser, Content: "old"}, {Role: RoleAssistant, Content: "reply"}},
		Timestamp: time.Now(),
	}

	s := NewChatSession()
	s.Load(3, rec)
	require.NotNil(t, s.SelectedIndex)
	assert.Equal(t, 3, *s.SelectedIndex)
	assert.True(t, s.Saved)
	assert.Len(t, s.Transcript, 2)

	// Appending to the session must not mutate the stored record.
	s.Append(RoleUser, "more")
	assert.Len(t, rec.Messages, 2)

	s.Reset()
	assert.Empty(t, s.Transcript)
	assert.False(t, s.Saved)
	assert.Nil(t, s.SelectedIndex)
	assert.Equal(t, "", s.Title())
}

func TestIdentity_Guest(t *testing.T) {
	assert.True(t, Guest().IsGuest())
	assert.Equal(t, "guest", Guest().DisplayName())

	id := IdentityOf(&User{ID: "u1", Username: "ana"})
	assert.False(t, id.IsGuest())
	assert.Equal(t, "ana", id.DisplayName())
}

func TestTopicRequest_TotalHours(t *testing.T) {
	req := TopicRequest{Topics: "  Linear Algebra  ", TotalDays: 5, DailyHours: 2}
	assert.Equal(t, 10, req.TotalHours())
	assert.Equal(t, "Linear Algebra", req.Normalized().Topics)
}

func TestDefaultPlanName(t *testing.T) {
	now := time.Date(2026, 3, 9, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "Study Plan 2026-03-09 14:05", DefaultPlanName(now))
}
