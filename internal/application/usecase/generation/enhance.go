package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/application/service"
	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

const (
	enhanceTemperature = 0.6
	enhanceMaxTokens   = 2000
)

// EnhanceTextUseCase rewrites a single piece of free text (a resume bullet,
// an about paragraph) without touching the document model. The result is
// prose, not JSON, but provenance is still recorded.
type EnhanceTextUseCase struct {
	genRepo generation.Repository
	llm     service.LLMService
	logger  logger.Logger
}

func NewEnhanceTextUseCase(gRepo generation.Repository, llm service.LLMService, log logger.Logger) *EnhanceTextUseCase {
	return &EnhanceTextUseCase{genRepo: gRepo, llm: llm, logger: log}
}

type EnhanceTextInput struct {
	OwnerID         uuid.UUID
	Content         string
	EnhancementType string
}

type EnhanceTextOutput struct {
	GenerationID    uuid.UUID
	EnhancedContent string
}

func (uc *EnhanceTextUseCase) Execute(ctx context.Context, input EnhanceTextInput) (*EnhanceTextOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperror.NewInvalidInput("content is required", nil)
	}

	existing, err := json.Marshal(input.Content)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode content for provenance", err)
	}

	now := time.Now().UTC()
	record := &generation.Record{
		ID:      uuid.New(),
		OwnerID: input.OwnerID,
		Type:    generation.TypeContentEnhancement,
		Input: generation.InputData{
			EnhancementType: input.EnhancementType,
			ExistingContent: existing,
		},
		Status:    generation.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.genRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	raw, err := uc.llm.Complete(ctx, service.CompletionRequest{
		System:      enhancerSystemPrompt,
		Prompt:      buildTextEnhancementPrompt(input.Content, input.EnhancementType),
		Temperature: enhanceTemperature,
		MaxTokens:   enhanceMaxTokens,
	})
	if err != nil {
		if ferr := uc.genRepo.MarkFailed(ctx, record.ID, err.Error()); ferr != nil {
			uc.logger.Error("Failed to mark enhancement failed", ferr, zap.String("generation_id", record.ID.String()))
		}
		return nil, err
	}

	enhanced := strings.TrimSpace(raw)
	stored, _ := json.Marshal(enhanced)
	if err := uc.genRepo.MarkCompleted(ctx, record.ID, stored); err != nil {
		uc.logger.Error("Failed to mark enhancement completed", err, zap.String("generation_id", record.ID.String()))
		return nil, err
	}

	return &EnhanceTextOutput{GenerationID: record.ID, EnhancedContent: enhanced}, nil
}
