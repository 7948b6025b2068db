package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"google.golang.org/genai"
)

// GeminiService runs chat through the Gemini API. System-role messages are
// folded into the system instruction since Gemini has no system turn.
type GeminiService struct {
	client *genai.Client
}

func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{client: client}, nil
}

func (s *GeminiService) Name() string { return "gemini" }

func (s *GeminiService) DefaultModel() string { return config.DefaultGeminiModel }

func (s *GeminiService) ChatStream(ctx context.Context, model string, temperature float64, messages []ChatMessage, onDelta func(string)) (string, error) {
	var systemParts []string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
	}
	if len(systemParts) > 0 {
		genConfig.SystemInstruction = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}

	var sb strings.Builder
	got := false

	for resp, err := range s.client.Models.GenerateContentStream(ctx, model, contents, genConfig) {
		if err != nil {
			return "", fmt.Errorf("gemini stream: %w", err)
		}
		text := resp.Text()
		if text != "" {
			got = true
			sb.WriteString(text)
			if onDelta != nil {
				onDelta(text)
			}
		}
	}
	if !got {
		return "", domain.ErrEmptyStream
	}

	return sb.String(), nil
}

// ListModels returns a fixed set; the Gemini catalog is not enumerable the
// way a local Ollama install is.
func (s *GeminiService) ListModels(ctx context.Context) ([]domain.AIModel, error) {
	names := []string{
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
	}
	models := make([]domain.AIModel, 0, len(names))
	for _, n := range names {
		models = append(models, domain.AIModel{ID: n, Name: n})
	}
	return models, nil
}

func (s *GeminiService) Healthy(ctx context.Context) bool {
	return s.client != nil
}
