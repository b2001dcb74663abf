package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_ScheduleTimeoutIsExplicit(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60000, cfg.TaskTimeout(TaskSchedule))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskChat))
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("STUDYGO_LLM_TIMEOUT_MS", "9000")
	t.Setenv("STUDYGO_LLM_SCHEDULE_TIMEOUT_MS", "15000")
	t.Setenv("STUDYGO_LLM_CHAT_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskSchedule))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskChat))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("STUDYGO_LLM_SCHEDULE_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 60000, cfg.TaskTimeout(TaskSchedule))
}

func TestLoadConfig_UnknownTaskFallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskType("other")))
}

func TestLoadConfig_AzureProvider(t *testing.T) {
	t.Setenv("STUDYGO_LLM_PROVIDER", "Azure")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com/")
	t.Setenv("AZURE_OPENAI_API_KEY", "secret")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-4o")
	t.Setenv("AZURE_OPENAI_API_VERSION", "2024-02-01")

	cfg := LoadConfig()

	assert.Equal(t, ProviderAzure, cfg.Provider)
	assert.Equal(t, "https://example.openai.azure.com", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.Azure.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Azure.Deployment)
	assert.Equal(t, "2024-02-01", cfg.Azure.APIVersion)
}

func TestLoadConfig_AzureEndpointIgnoredForOllama(t *testing.T) {
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
}
