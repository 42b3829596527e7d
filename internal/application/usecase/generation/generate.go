package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/application/service"
	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/internal/domain/prompt"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

const (
	generateTemperature = 0.7
	generateMaxTokens   = 4000
)

type GenerateContentUseCase struct {
	genRepo    generation.Repository
	promptRepo prompt.Repository
	llm        service.LLMService
	logger     logger.Logger
}

func NewGenerateContentUseCase(
	gRepo generation.Repository,
	pRepo prompt.Repository,
	llm service.LLMService,
	log logger.Logger,
) *GenerateContentUseCase {
	return &GenerateContentUseCase{
		genRepo:    gRepo,
		promptRepo: pRepo,
		llm:        llm,
		logger:     log,
	}
}

type GenerateContentInput struct {
	OwnerID uuid.UUID
	Request generation.Request
}

type GenerateContentOutput struct {
	GenerationID uuid.UUID
	Content      portfolio.PartialSections
	RawContent   json.RawMessage
}

// Execute runs one generation request end to end. The provenance record is
// written before the model call so a crash mid-call still leaves an
// auditable row; afterwards the record always reaches exactly one terminal
// state. There are no retries here; a failure propagates and the user may
// resubmit.
func (uc *GenerateContentUseCase) Execute(ctx context.Context, input GenerateContentInput) (*GenerateContentOutput, error) {
	req := input.Request
	l := uc.logger.With(
		zap.String("owner_id", input.OwnerID.String()),
		zap.String("generation_type", string(req.Type)),
	)

	now := time.Now().UTC()
	record := &generation.Record{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		PortfolioID: req.PortfolioID,
		Type:        req.Type,
		Input:       req.Input,
		Status:      generation.StatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.genRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	l = l.With(zap.String("generation_id", record.ID.String()))
	l.Info("Generation record created")

	userPrompt, err := uc.buildPrompt(ctx, req)
	if err != nil {
		uc.markFailed(ctx, record.ID, err, l)
		return nil, err
	}

	raw, err := uc.llm.Complete(ctx, service.CompletionRequest{
		System:      portfolioWriterSystemPrompt,
		Prompt:      userPrompt,
		Temperature: generateTemperature,
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		uc.markFailed(ctx, record.ID, err, l)
		return nil, err
	}

	content := strings.TrimSpace(raw)
	partial, parseErr := portfolio.ParsePartial([]byte(content))
	if parseErr != nil {
		uc.markFailed(ctx, record.ID, parseErr, l)
		return nil, apperror.NewUnprocessable("model response was not valid portfolio JSON", parseErr)
	}

	if err := uc.genRepo.MarkCompleted(ctx, record.ID, json.RawMessage(content)); err != nil {
		l.Error("Failed to mark generation completed", err)
		return nil, err
	}
	l.Info("Generation completed")

	return &GenerateContentOutput{
		GenerationID: record.ID,
		Content:      partial,
		RawContent:   json.RawMessage(content),
	}, nil
}

func (uc *GenerateContentUseCase) buildPrompt(ctx context.Context, req generation.Request) (string, error) {
	switch req.Type {
	case generation.TypeFullPortfolio:
		return buildFullPortfolioPrompt(req.Input), nil
	case generation.TypeSection:
		return uc.buildSectionPrompt(ctx, req.Input), nil
	case generation.TypeContentEnhancement:
		return buildEnhancementPrompt(req.Input), nil
	}
	return "", apperror.NewInvalidInput("unknown generation type: "+string(req.Type), nil)
}

// buildSectionPrompt prefers a stored template for (section, industry) and
// falls back to a generic prompt when none exists.
func (uc *GenerateContentUseCase) buildSectionPrompt(ctx context.Context, input generation.InputData) string {
	var body string

	tpl, err := uc.promptRepo.Find(ctx, string(input.SectionType), strings.ToLower(input.Industry))
	switch {
	case err == nil:
		body = tpl.Render(prompt.Vars{
			JobTitle:   input.JobTitle,
			Industry:   input.Industry,
			Experience: input.Experience,
			Skills:     input.Skills,
		})
	case errors.Is(err, apperror.ErrNotFound):
		body = buildFallbackSectionPrompt(input)
	default:
		uc.logger.Warn("Prompt template lookup failed, using fallback", zap.Error(err))
		body = buildFallbackSectionPrompt(input)
	}

	return body + sectionJSONInstruction(input.SectionType)
}

// markFailed is best-effort: the original error is what the caller needs to
// see, a failed status write only gets logged.
func (uc *GenerateContentUseCase) markFailed(ctx context.Context, id uuid.UUID, cause error, l logger.Logger) {
	if err := uc.genRepo.MarkFailed(ctx, id, cause.Error()); err != nil {
		l.Error("Failed to mark generation failed", err)
	}
}
