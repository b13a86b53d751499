package config

import (
	"os"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type LLMConfig struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	Timeout       time.Duration
}

func NewLLMConfig() *LLMConfig {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		// older deployments used this name
		apiKey = os.Getenv("OPEN_API_KEY")
	}
	return &LLMConfig{
		Provider:      getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:  apiKey,
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		Timeout:       getSecondsEnv("LLM_TIMEOUT_SEC", 60),
	}
}

// APIKey returns the credential of the selected provider
func (c *LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}
