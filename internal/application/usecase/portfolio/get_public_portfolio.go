package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

type GetPublicPortfolioUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewGetPublicPortfolioUseCase(repo portfolio.Repository) *GetPublicPortfolioUseCase {
	return &GetPublicPortfolioUseCase{portfolioRepo: repo}
}

type GetPublicPortfolioInput struct {
	PortfolioID uuid.UUID
}

type GetPublicPortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

// Execute serves anonymous viewers: only published portfolios resolve, and
// an unpublished one is indistinguishable from a missing one.
func (uc *GetPublicPortfolioUseCase) Execute(ctx context.Context, input GetPublicPortfolioInput) (*GetPublicPortfolioOutput, error) {
	p, err := uc.portfolioRepo.FindPublished(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}
	return &GetPublicPortfolioOutput{Portfolio: p}, nil
}
