package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func httpTestClient(endpoint string) llm.LLMClient {
	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	return llm.NewOllamaClient(cfg, llm.NoopObserver{})
}

// TestSchedulePlanner_WithHTTPTestServer runs the whole pass over real HTTP:
// httptest server, Ollama client, extraction, decoding and validation.
func TestSchedulePlanner_WithHTTPTestServer(t *testing.T) {
	srv := newHTTPTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["prompt"], "Topics: Statistics")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": "Here is your plan:\n```json\n{\"Day 1\":[{\"topic\":\"Descriptive statistics\",\"hours\":3}],\"Day 2\":[{\"topic\":\"Inference\",\"hours\":3}]}\n```",
		})
	}))
	defer srv.Close()

	res, err := NewSchedulePlanner(httpTestClient(srv.URL)).Plan(context.Background(), domain.TopicRequest{
		Topics:     "Statistics",
		TotalDays:  2,
		DailyHours: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Schedule.DayCount())
	assert.Equal(t, "test-model", res.Model)
}

func TestSchedulePlanner_WithHTTPTestServer_Timeout(t *testing.T) {
	srv := newHTTPTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.Tasks = map[llm.TaskType]llm.TaskConfig{
		llm.TaskSchedule: {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 50},
	}
	client := llm.NewOllamaClient(cfg, llm.NoopObserver{})

	_, err := NewSchedulePlanner(client).Plan(context.Background(), domain.TopicRequest{Topics: "X", TotalDays: 1, DailyHours: 1})
	requirePlanError(t, err, app.PlanErrServiceError)
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

func TestChatGuardrail_WithHTTPTestServer_ServerError(t *testing.T) {
	srv := newHTTPTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	reply := NewChatGuardrail(httpTestClient(srv.URL)).Reply(context.Background(), nil, "Explain Big-O")
	assert.Equal(t, ApologyReply, reply)
}
