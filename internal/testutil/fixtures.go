package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/google/uuid"
)

// User options
type UserOption func(*domain.User)

func WithPasswordHash(h string) UserOption {
	return func(u *domain.User) {
		u.PasswordHash = h
	}
}

func NewTestUser(username string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Schedule options
type ScheduleOption func(*domain.Schedule)

func WithWarning(w string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.Warning = w
	}
}

// WithDay appends a day with one task per topic, each given hours.
func WithDay(hours float64, topics ...string) ScheduleOption {
	return func(s *domain.Schedule) {
		d := domain.DayAllocation{Label: fmt.Sprintf("Day %d", len(s.Days)+1)}
		for _, t := range topics {
			d.Tasks = append(d.Tasks, domain.StudyTask{Topic: t, Hours: hours})
		}
		s.Days = append(s.Days, d)
	}
}

// NewTestSchedule builds a schedule. Without options it has two days of two
// hours each.
func NewTestSchedule(opts ...ScheduleOption) *domain.Schedule {
	s := &domain.Schedule{}
	if len(opts) == 0 {
		opts = []ScheduleOption{WithDay(2, "Limits"), WithDay(2, "Derivatives")}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat options
type ChatOption func(*domain.ChatRecord)

func WithTimestamp(ts time.Time) ChatOption {
	return func(c *domain.ChatRecord) {
		c.Timestamp = ts
	}
}

func WithMessages(msgs ...domain.ChatMessage) ChatOption {
	return func(c *domain.ChatRecord) {
		c.Messages = msgs
	}
}

// NewTestChat builds a one-exchange transcript titled after its question.
func NewTestChat(userID, question string, opts ...ChatOption) *domain.ChatRecord {
	c := &domain.ChatRecord{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  domain.ChatTitle(question),
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: question},
			{Role: domain.RoleAssistant, Content: "Here is a plan."},
		},
		Timestamp: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
