package factory

import (
	"fmt"
	"time"

	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/llm/groq"
	"doc-assistant-be/pkg/llm/ollama"
)

type Params struct {
	Provider   string
	ApiKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "groq":
		return groq.NewGroqProvider(p.ApiKey, p.Model, p.MaxTokens, p.Timeout, p.MaxRetries), nil
	case "ollama":
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, p.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
