package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

type UpdatePortfolioUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewUpdatePortfolioUseCase(repo portfolio.Repository) *UpdatePortfolioUseCase {
	return &UpdatePortfolioUseCase{portfolioRepo: repo}
}

// UpdatePortfolioInput uses pointers for optional fields; nil means "leave
// as is". Last write wins at the store, there is no version check.
type UpdatePortfolioInput struct {
	PortfolioID uuid.UUID
	OwnerID     uuid.UUID
	Title       *string
	Theme       *string
	Sections    *portfolio.Sections
	IsPublished *bool
}

type UpdatePortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

func (uc *UpdatePortfolioUseCase) Execute(ctx context.Context, input UpdatePortfolioInput) (*UpdatePortfolioOutput, error) {

	p, err := uc.portfolioRepo.FindByID(ctx, input.PortfolioID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Theme != nil {
		p.Theme = *input.Theme
	}
	if input.Sections != nil {
		p.Sections = *input.Sections
	}
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.portfolioRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update portfolio failed: %w", err)
	}

	return &UpdatePortfolioOutput{Portfolio: p}, nil
}
