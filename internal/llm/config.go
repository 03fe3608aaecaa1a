package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskCommand turns a question into a structured query command.
	TaskCommand TaskType = "command"
)

// Provider selects the wire protocol used to reach the model.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOpenAI,
		Endpoint:   defaultOpenAIEndpoint,
		Model:      defaultOpenAIModel,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskCommand: {Temperature: 0, MaxTokens: 200},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays VITALS_LLM_* environment variables onto cfg. Values that
// fail to parse are ignored. Switching provider without naming an endpoint
// or model moves both to that provider's defaults.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("VITALS_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("VITALS_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("VITALS_LLM_PROVIDER"); v != "" {
		cfg.SetProvider(Provider(strings.ToLower(strings.TrimSpace(v))))
	}
	if v := os.Getenv("VITALS_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("VITALS_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("VITALS_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("VITALS_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("VITALS_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("VITALS_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			tc := cfg.Tasks[TaskCommand]
			tc.Temperature = f
			cfg.setTask(TaskCommand, tc)
		}
	}
	if v := os.Getenv("VITALS_LLM_COMMAND_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc := cfg.Tasks[TaskCommand]
			tc.TimeoutMs = n
			cfg.setTask(TaskCommand, tc)
		}
	}
}

// SetProvider switches provider. Endpoint and model follow when they are
// still the previous provider's defaults.
func (c *LLMConfig) SetProvider(p Provider) {
	if p == c.Provider {
		return
	}
	if c.Endpoint == "" || c.Endpoint == defaultEndpoint(c.Provider) {
		c.Endpoint = defaultEndpoint(p)
	}
	if c.Model == "" || c.Model == defaultModel(c.Provider) {
		c.Model = defaultModel(p)
	}
	c.Provider = p
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func (c *LLMConfig) setTask(task TaskType, tc TaskConfig) {
	if c.Tasks == nil {
		c.Tasks = make(map[TaskType]TaskConfig)
	}
	c.Tasks[task] = tc
}

func defaultEndpoint(p Provider) string {
	if p == ProviderOllama {
		return defaultOllamaEndpoint
	}
	return defaultOpenAIEndpoint
}

func defaultModel(p Provider) string {
	if p == ProviderOllama {
		return defaultOllamaModel
	}
	return defaultOpenAIModel
}
