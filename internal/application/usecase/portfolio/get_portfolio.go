package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

type GetPortfolioUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewGetPortfolioUseCase(repo portfolio.Repository) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{portfolioRepo: repo}
}

type GetPortfolioInput struct {
	PortfolioID uuid.UUID
	OwnerID     uuid.UUID
}

type GetPortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	p, err := uc.portfolioRepo.FindByID(ctx, input.PortfolioID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &GetPortfolioOutput{Portfolio: p}, nil
}
