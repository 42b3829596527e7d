package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

// recentWindow bounds the summary to the latest events rather than a
// lifetime scan.
const recentWindow = 100

type GetAnalyticsUseCase struct {
	analyticsRepo analytics.Repository
	portfolioRepo portfolio.Repository
}

func NewGetAnalyticsUseCase(aRepo analytics.Repository, pRepo portfolio.Repository) *GetAnalyticsUseCase {
	return &GetAnalyticsUseCase{analyticsRepo: aRepo, portfolioRepo: pRepo}
}

type GetAnalyticsInput struct {
	PortfolioID uuid.UUID
	OwnerID     uuid.UUID
}

type GetAnalyticsOutput struct {
	Counts analytics.Counts
	Events []*analytics.Event
}

// Execute summarizes recent activity for the owner's portfolio. The
// ownership lookup runs first; a portfolio belonging to someone else yields
// not-found before any analytics are touched.
func (uc *GetAnalyticsUseCase) Execute(ctx context.Context, input GetAnalyticsInput) (*GetAnalyticsOutput, error) {
	if _, err := uc.portfolioRepo.FindByID(ctx, input.PortfolioID, input.OwnerID); err != nil {
		return nil, err
	}

	events, err := uc.analyticsRepo.ListRecent(ctx, input.PortfolioID, recentWindow)
	if err != nil {
		return nil, err
	}

	return &GetAnalyticsOutput{
		Counts: analytics.CountEvents(events),
		Events: events,
	}, nil
}
