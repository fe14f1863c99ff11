// Package llm generates quiz questions from text chunks using a configured
// LLM provider.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/sgoyal/qbank-go/internal/config"
	"github.com/sgoyal/qbank-go/internal/models"
)

// Generator produces questions for a chunk of source text. The pipeline
// depends on this interface so tests can substitute a stub.
type Generator interface {
	GenerateQuestions(ctx context.Context, text string, numQuestions int) ([]models.Question, error)
}

// Service wraps a langchaingo model for question generation.
type Service struct {
	llm         llms.Model
	temperature float64
	maxTokens   int
}

// NewService creates an LLM service for the configured provider.
func NewService(cfg *config.Config) (*Service, error) {
	var model llms.Model
	var err error

	switch cfg.LLM.Provider {
	case "ollama":
		model, err = ollama.New(
			ollama.WithModel(cfg.LLM.Model),
			ollama.WithServerURL(cfg.LLM.OllamaURL),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case "openai":
		if cfg.LLM.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.LLM.OpenAIKey),
			openai.WithModel(cfg.LLM.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case "anthropic":
		if cfg.LLM.AnthropicKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.LLM.AnthropicKey),
			anthropic.WithModel(cfg.LLM.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}

	return &Service{
		llm:         model,
		temperature: cfg.LLM.Temperature,
		maxTokens:   cfg.LLM.MaxTokens,
	}, nil
}

// GenerateQuestions asks the model for numQuestions questions about the
// given text and parses the JSON reply.
func (s *Service) GenerateQuestions(ctx context.Context, text string, numQuestions int) ([]models.Question, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, generationPrompt(text, numQuestions)),
	}

	response, err := s.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices from model")
	}

	questions, err := ParseQuestionsResponse(response.Choices[0].Content)
	if err != nil {
		return nil, err
	}
	return questions, nil
}
