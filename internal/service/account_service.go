package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/db"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	users    repository.UserRepo
	uow      db.UnitOfWork
	hashCost int
	observer UseCaseObserver
}

type AccountOption func(*accountService)

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) AccountOption {
	return func(s *accountService) {
		s.hashCost = cost
	}
}

func WithAccountObserver(o UseCaseObserver) AccountOption {
	return func(s *accountService) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewAccountService(users repository.UserRepo, uow db.UnitOfWork, opts ...AccountOption) AccountService {
	s := &accountService{
		users:    users,
		uow:      uow,
		hashCost: bcrypt.DefaultCost,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *accountService) SignUp(ctx context.Context, creds app.Credentials) (user *domain.User, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "signup",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	if err = app.ValidateCredentials(creds); err != nil {
		return nil, err
	}

	var hash []byte
	hash, err = bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user = &domain.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(creds.Username),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err = s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%q: %w", user.Username, ErrUsernameTaken)
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) Authenticate(ctx context.Context, creds app.Credentials) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Delete removes chats and timetables before the user row, in one
// transaction.
func (s *accountService) Delete(ctx context.Context, userID string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-account",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteChatRepo(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := repository.NewSQLiteTimetableRepo(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return repository.NewSQLiteUserRepo(tx).Delete(ctx, userID)
	})
}
