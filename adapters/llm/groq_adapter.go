package llm

import (
	"context"
	"fmt"

	"github.com/careerforge/portfolio-api/internal/application/service"
	"github.com/careerforge/portfolio-api/internal/config"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Groq exposes an OpenAI-compatible API, so the standard client works with
// only the base URL swapped.
type groqLLMAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewGroqLLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.Groq.APIKey == "" {
		return nil, fmt.Errorf("groq API key is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.Groq.APIKey)
	clientConfig.BaseURL = cfg.Groq.BaseURL

	client := openai.NewClientWithConfig(clientConfig)

	log.Info("Groq (LLM) Adapter initialized", zap.String("model", cfg.Groq.Model))
	return &groqLLMAdapter{client: client, model: cfg.Groq.Model, log: log}, nil
}

func (a *groqLLMAdapter) Complete(ctx context.Context, req service.CompletionRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", apperror.NewUnavailable("chat completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperror.NewUnavailable("model returned no chat choices", nil)
	}

	return resp.Choices[0].Message.Content, nil
}
