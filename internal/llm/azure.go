package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// azureClient implements LLMClient against an Azure OpenAI chat deployment.
type azureClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewAzureOpenAIClient creates an LLMClient for an Azure OpenAI deployment.
// cfg.Endpoint is the resource endpoint, cfg.Azure carries key, version and
// deployment name.
func NewAzureOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &azureClient{
		cfg:      cfg,
		http:     newHTTPClient(),
		observer: observer,
	}
}

type azureMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type azureRequest struct {
	Messages    []azureMessage `json:"messages"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
}

type azureResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message azureMessage `json:"message"`
	} `json:"choices"`
}

func (c *azureClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := resolveSampling(c.cfg, req)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	body := azureRequest{Temperature: temp, MaxTokens: maxTok}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, azureMessage{Role: "system", Content: req.SystemPrompt})
	}
	body.Messages = append(body.Messages, azureMessage{Role: "user", Content: req.UserPrompt})

	var resp azureResponse
	err := postJSON(ctx, c.http, c.completionsURL(), c.authHeader(), body, &resp)
	if err == nil && len(resp.Choices) == 0 {
		err = fmt.Errorf("%w: response contained no choices", ErrServiceFailure)
	}
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = classifyError(ctx, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task:      req.Task,
			Provider:  ProviderAzure,
			Model:     c.cfg.Azure.Deployment,
			LatencyMs: latency,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = c.cfg.Azure.Deployment
	}
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderAzure,
		Model:     model,
		LatencyMs: latency,
		Success:   true,
	})
	return &GenerateResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     model,
		LatencyMs: latency,
	}, nil
}

func (c *azureClient) Available(ctx context.Context) bool {
	u := fmt.Sprintf("%s/openai/models?api-version=%s", c.cfg.Endpoint, url.QueryEscape(c.cfg.Azure.APIVersion))
	return probe(ctx, c.http, u, c.authHeader())
}

func (c *azureClient) completionsURL() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.cfg.Endpoint,
		url.PathEscape(c.cfg.Azure.Deployment),
		url.QueryEscape(c.cfg.Azure.APIVersion),
	)
}

func (c *azureClient) authHeader() http.Header {
	h := http.Header{}
	h.Set("api-key", c.cfg.Azure.APIKey)
	return h
}
