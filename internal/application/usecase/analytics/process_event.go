package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

// ProcessEventUseCase is the consumer side of the pipeline: it takes events
// off the broker and appends them to storage.
type ProcessEventUseCase struct {
	analyticsRepo analytics.Repository
	logger        logger.Logger
}

func NewProcessEventUseCase(repo analytics.Repository, log logger.Logger) *ProcessEventUseCase {
	return &ProcessEventUseCase{analyticsRepo: repo, logger: log}
}

// Execute persists one event. Events that fail validation here came from a
// bad producer, not a visitor, so they are dropped with a log line rather
// than retried forever.
func (uc *ProcessEventUseCase) Execute(ctx context.Context, event *analytics.Event) error {
	if !event.Type.Valid() {
		uc.logger.Warn("Dropping analytics event with unknown type",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID.String()),
		)
		return apperror.NewInvalidInput("unknown event type: "+string(event.Type), nil)
	}

	if err := uc.analyticsRepo.Append(ctx, event); err != nil {
		uc.logger.Error("Failed to append analytics event", err,
			zap.String("event_id", event.ID.String()),
		)
		return err
	}
	return nil
}
