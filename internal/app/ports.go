package app

import (
	"context"

	"github.com/alexanderramin/studygo/internal/domain"
)

// PlanScheduleUseCase runs one generate, extract, validate pass.
type PlanScheduleUseCase interface {
	Plan(ctx context.Context, req domain.TopicRequest) (*PlanResult, error)
}

// GenerateStudyPlanUseCase plans a schedule and, for identified users, saves
// it under planName or a dated default name.
type GenerateStudyPlanUseCase interface {
	Generate(ctx context.Context, id domain.Identity, req domain.TopicRequest, planName string) (*StudyPlanResult, error)
}

type ReplyUseCase interface {
	Reply(ctx context.Context, transcript []domain.ChatMessage, message string) string
}

// SendChatMessageUseCase appends a message and the assistant's reply to the
// session. The reply is returned even when saving the transcript fails.
type SendChatMessageUseCase interface {
	Send(ctx context.Context, id domain.Identity, session *domain.ChatSession, message string) (string, error)
}
