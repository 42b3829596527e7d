package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

type ListPortfoliosUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewListPortfoliosUseCase(repo portfolio.Repository) *ListPortfoliosUseCase {
	return &ListPortfoliosUseCase{portfolioRepo: repo}
}

type ListPortfoliosInput struct {
	OwnerID uuid.UUID
	Page    int
	Limit   int
}

type ListPortfoliosOutput struct {
	Portfolios []*portfolio.Portfolio
}

// Execute lists the caller's portfolios, newest first.
func (uc *ListPortfoliosUseCase) Execute(ctx context.Context, input ListPortfoliosInput) (*ListPortfoliosOutput, error) {

	if input.Limit <= 0 || input.Limit > 100 {
		input.Limit = 20
	}
	if input.Page <= 0 {
		input.Page = 1
	}
	offset := (input.Page - 1) * input.Limit

	portfolios, err := uc.portfolioRepo.ListByOwner(ctx, input.OwnerID, input.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list portfolios failed: %w", err)
	}

	return &ListPortfoliosOutput{Portfolios: portfolios}, nil
}
