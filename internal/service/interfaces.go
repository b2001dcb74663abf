package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/domain"
)

var (
	// ErrGuest is returned by operations that need a stored account.
	ErrGuest = errors.New("guest mode: nothing is saved, sign up to keep your plans and chats")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmptyMessage       = errors.New("message is empty")

	// ErrChatNotSaved accompanies a reply whose transcript could not be stored.
	ErrChatNotSaved = errors.New("chat not saved")
)

type StudyPlanService interface {
	app.GenerateStudyPlanUseCase
	List(ctx context.Context, id domain.Identity) ([]app.TimetableSummary, error)
	Get(ctx context.Context, id domain.Identity, name string) (*domain.TimetableRecord, error)
	Delete(ctx context.Context, id domain.Identity, name string) error
}

type ChatService interface {
	app.SendChatMessageUseCase
	History(ctx context.Context, id domain.Identity) (*app.ChatHistory, error)
	Load(ctx context.Context, id domain.Identity, session *domain.ChatSession, index int) error
	Delete(ctx context.Context, id domain.Identity, title string) error
}

type AccountService interface {
	SignUp(ctx context.Context, creds app.Credentials) (*domain.User, error)
	Authenticate(ctx context.Context, creds app.Credentials) (*domain.User, error)
	// Delete removes the user together with every chat and timetable they own.
	Delete(ctx context.Context, userID string) error
}
