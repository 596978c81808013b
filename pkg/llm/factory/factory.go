package factory

import (
	"fmt"
	"time"

	"collabhub-be/pkg/llm"
	"collabhub-be/pkg/llm/gemini"
	"collabhub-be/pkg/llm/ollama"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini", "":
		model := cfg.Model
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return gemini.NewGeminiProvider(cfg.APIKey, model, cfg.Timeout), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
