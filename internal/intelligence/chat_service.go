package intelligence

import (
	"context"
	"strings"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/llm"
)

// ChatGuardrail answers study questions and refuses everything else. It never
// fails: generation errors become ApologyReply.
type ChatGuardrail interface {
	Reply(ctx context.Context, transcript []domain.ChatMessage, message string) string
}

type chatGuardrail struct {
	client llm.LLMClient
}

var _ app.ReplyUseCase = (*chatGuardrail)(nil)

// NewChatGuardrail creates a ChatGuardrail backed by an LLM client.
func NewChatGuardrail(client llm.LLMClient) ChatGuardrail {
	return &chatGuardrail{client: client}
}

func (g *chatGuardrail) Reply(ctx context.Context, transcript []domain.ChatMessage, message string) string {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: RenderPrompt(chatSystemPrompt, map[string]string{"refusal": RefusalReply}),
		UserPrompt:   BuildChatPrompt(transcript, message),
	})
	if err != nil {
		return ApologyReply
	}
	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		return ApologyReply
	}
	if isRefusal(reply) {
		return RefusalReply
	}
	return reply
}

// BuildChatPrompt renders prior turns as "role: content" lines followed by
// the new question.
func BuildChatPrompt(transcript []domain.ChatMessage, message string) string {
	return RenderPrompt(chatUserPrompt, map[string]string{
		"history": FormatHistory(transcript),
		"query":   message,
	})
}

func FormatHistory(transcript []domain.ChatMessage) string {
	lines := make([]string, 0, len(transcript))
	for _, m := range transcript {
		lines = append(lines, string(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

// isRefusal reports whether the model answered with the canned refusal,
// possibly quoted or reflowed.
func isRefusal(reply string) bool {
	return strings.Contains(foldText(reply), foldText(RefusalReply))
}

func foldText(s string) string {
	s = strings.NewReplacer("’", "'", "‘", "'").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
