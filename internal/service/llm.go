package service

import (
	"context"
	"fmt"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
)

// ChatMessage is one turn of model input. Role is one of the domain role
// constants.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient is the model backend. ChatStream calls onDelta for each text
// fragment as it arrives and returns the full reply once the backend signals
// completion. A stream that ends without the completion signal returns
// domain.ErrEmptyStream and the partial text must be discarded.
type ChatClient interface {
	Name() string
	DefaultModel() string
	ChatStream(ctx context.Context, model string, temperature float64, messages []ChatMessage, onDelta func(string)) (string, error)
	ListModels(ctx context.Context) ([]domain.AIModel, error)
	Healthy(ctx context.Context) bool
}

// ResolveBackend picks the chat backend once at startup. "auto" prefers a
// reachable Ollama and falls back to Gemini when an API key is configured.
func ResolveBackend(ctx context.Context, cfg *config.Config) (ChatClient, error) {
	switch cfg.LLMBackend {
	case "ollama":
		return NewOllamaService(cfg.OllamaURL), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini backend selected but GEMINI_API_KEY is empty")
		}
		return NewGeminiService(ctx, cfg.GeminiAPIKey)
	case "auto":
		ollama := NewOllamaService(cfg.OllamaURL)
		if ollama.Healthy(ctx) {
			return ollama, nil
		}
		if cfg.GeminiAPIKey != "" {
			return NewGeminiService(ctx, cfg.GeminiAPIKey)
		}
		return nil, fmt.Errorf("no chat backend available: ollama unreachable at %s and no gemini key", cfg.OllamaURL)
	default:
		return nil, fmt.Errorf("unknown LLM_BACKEND %q", cfg.LLMBackend)
	}
}
