package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskSchedule TaskType = "schedule"
	TaskChat     TaskType = "chat"
)

// Provider selects the backing text-generation service.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderAzure  Provider = "azure"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// AzureConfig holds the Azure OpenAI deployment coordinates.
type AzureConfig struct {
	APIKey     string
	APIVersion string
	Deployment string
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled   bool
	LogCalls  bool
	Provider  Provider
	Endpoint  string
	Model     string
	TimeoutMs int
	Azure     AzureConfig
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:   false,
		LogCalls:  false,
		Provider:  ProviderOllama,
		Endpoint:  "http://localhost:11434",
		Model:     "llama3.2",
		TimeoutMs: 30000,
		Azure: AzureConfig{
			APIVersion: "2024-06-01",
		},
		Tasks: map[TaskType]TaskConfig{
			TaskSchedule: {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 60000},
			TaskChat:     {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYGO_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYGO_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYGO_LLM_PROVIDER"); v != "" {
		switch Provider(strings.ToLower(v)) {
		case ProviderAzure:
			cfg.Provider = ProviderAzure
		case ProviderOllama:
			cfg.Provider = ProviderOllama
		}
	}
	if v := os.Getenv("STUDYGO_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STUDYGO_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STUDYGO_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	// The Azure variables keep the names the hosted deployment already exports.
	if v := os.Getenv("AZURE_OPENAI_ENDPOINT"); v != "" && cfg.Provider == ProviderAzure {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("AZURE_OPENAI_API_KEY"); v != "" {
		cfg.Azure.APIKey = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_VERSION"); v != "" {
		cfg.Azure.APIVersion = v
	}
	if v := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"); v != "" {
		cfg.Azure.Deployment = v
	}

	applyTaskTimeoutEnv(&cfg, TaskSchedule, "STUDYGO_LLM_SCHEDULE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskChat, "STUDYGO_LLM_CHAT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
