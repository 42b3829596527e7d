package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type TrackEventUseCase struct {
	publisher analytics.Publisher
	logger    logger.Logger
}

func NewTrackEventUseCase(publisher analytics.Publisher, log logger.Logger) *TrackEventUseCase {
	return &TrackEventUseCase{publisher: publisher, logger: log}
}

type TrackEventInput struct {
	PortfolioID uuid.UUID
	Type        analytics.EventType
	VisitorIP   string
	UserAgent   string
	Referrer    string
	Metadata    map[string]any
}

// Execute validates and hands the event to the pipeline. Recording is
// fire-and-forget from the visitor's point of view: once the payload is
// valid, a broker hiccup is our problem, not theirs, so publish failures are
// logged and swallowed.
func (uc *TrackEventUseCase) Execute(ctx context.Context, input TrackEventInput) error {
	if input.PortfolioID == uuid.Nil {
		return apperror.NewInvalidInput("portfolio id is required", nil)
	}
	if !input.Type.Valid() {
		return apperror.NewInvalidInput("unknown event type: "+string(input.Type), nil)
	}

	event := &analytics.Event{
		ID:          uuid.New(),
		PortfolioID: input.PortfolioID,
		Type:        input.Type,
		VisitorIP:   input.VisitorIP,
		UserAgent:   input.UserAgent,
		Referrer:    input.Referrer,
		Metadata:    input.Metadata,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("Failed to publish analytics event", err,
			zap.String("portfolio_id", input.PortfolioID.String()),
			zap.String("event_type", string(input.Type)),
		)
	}
	return nil
}
