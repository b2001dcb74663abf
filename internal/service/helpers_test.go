package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/llm"
	"github.com/alexanderramin/studygo/internal/repository"
	"github.com/alexanderramin/studygo/internal/testutil"
	"github.com/stretchr/testify/require"
)

// scriptedLLMClient returns queued responses in order; an entry with a
// non-nil err fails that call.
type scriptedLLMClient struct {
	mu      sync.Mutex
	replies []scriptedReply
	calls   []llm.GenerateRequest
}

type scriptedReply struct {
	text string
	err  error
}

func (c *scriptedLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if len(c.replies) == 0 {
		return &llm.GenerateResponse{Text: "ok", Model: "stub"}, nil
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &llm.GenerateResponse{Text: r.text, Model: "stub"}, nil
}

func (c *scriptedLLMClient) Available(context.Context) bool { return true }

func replies(texts ...string) *scriptedLLMClient {
	c := &scriptedLLMClient{}
	for _, t := range texts {
		c.replies = append(c.replies, scriptedReply{text: t})
	}
	return c
}

func seedIdentity(t *testing.T, users repository.UserRepo, name string) domain.Identity {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, users.Create(context.Background(), u))
	return domain.IdentityOf(u)
}

func newLogBuffer() (*bytes.Buffer, UseCaseObserver) {
	var buf bytes.Buffer
	return &buf, NewLogUseCaseObserver(&buf)
}
