package service

import (
	"context"
)

type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

type LLMService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
