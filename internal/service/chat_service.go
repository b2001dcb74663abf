package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/repository"
	"github.com/google/uuid"
)

type chatService struct {
	guardrail app.ReplyUseCase
	chats     repository.ChatRepo
	observer  UseCaseObserver
	now       func() time.Time
}

func NewChatService(
	guardrail app.ReplyUseCase,
	chats repository.ChatRepo,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		guardrail: guardrail,
		chats:     chats,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *chatService) Send(ctx context.Context, id domain.Identity, session *domain.ChatSession, message string) (reply string, err error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	startedAt := s.now()
	fields := map[string]any{"guest": id.IsGuest()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "chat-send",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	prior := session.Transcript
	session.Append(domain.RoleUser, message)
	reply = s.guardrail.Reply(ctx, prior, message)
	session.Append(domain.RoleAssistant, reply)
	fields["turns"] = len(session.Transcript)

	if id.IsGuest() || session.Saved || !session.HasAssistantReply() {
		return reply, nil
	}

	rec := &domain.ChatRecord{
		ID:        uuid.New().String(),
		UserID:    id.UserID,
		Title:     session.Title(),
		Messages:  append([]domain.ChatMessage(nil), session.Transcript...),
		Timestamp: s.now().UTC(),
	}
	if saveErr := s.chats.Save(ctx, rec); saveErr != nil {
		return reply, fmt.Errorf("%w: %v", ErrChatNotSaved, saveErr)
	}
	session.Saved = true
	fields["saved"] = rec.ID
	return reply, nil
}

func (s *chatService) History(ctx context.Context, id domain.Identity) (*app.ChatHistory, error) {
	if id.IsGuest() {
		return nil, ErrGuest
	}
	recs, err := s.chats.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return &app.ChatHistory{Records: recs}, nil
}

// Load replaces the session transcript with the history entry at index.
func (s *chatService) Load(ctx context.Context, id domain.Identity, session *domain.ChatSession, index int) error {
	history, err := s.History(ctx, id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(history.Records) {
		return fmt.Errorf("chat %d: %w", index+1, repository.ErrNotFound)
	}
	session.Load(index, history.Records[index])
	return nil
}

func (s *chatService) Delete(ctx context.Context, id domain.Identity, title string) error {
	if id.IsGuest() {
		return ErrGuest
	}
	return s.chats.DeleteByTitle(ctx, id.UserID, title)
}
