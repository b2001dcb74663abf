package repository

import (
	"context"

	"github.com/alexanderramin/studygo/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ChatRepo stores transcripts. Records are written once; titles are not
// unique, so deleting by title removes every match.
type ChatRepo interface {
	Save(ctx context.Context, rec *domain.ChatRecord) error
	GetByID(ctx context.Context, id string) (*domain.ChatRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ChatRecord, error)
	DeleteByTitle(ctx context.Context, userID, title string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// TimetableRepo stores named schedules. Upsert replaces a schedule saved
// under the same name.
type TimetableRepo interface {
	Upsert(ctx context.Context, rec *domain.TimetableRecord) error
	GetByName(ctx context.Context, userID, name string) (*domain.TimetableRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.TimetableRecord, error)
	Delete(ctx context.Context, userID, name string) error
	DeleteByUser(ctx context.Context, userID string) error
}
