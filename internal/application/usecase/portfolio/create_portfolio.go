package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

type CreatePortfolioUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewCreatePortfolioUseCase(repo portfolio.Repository) *CreatePortfolioUseCase {
	return &CreatePortfolioUseCase{portfolioRepo: repo}
}

type CreatePortfolioInput struct {
	OwnerID     uuid.UUID
	Title       string
	Theme       string
	Sections    *portfolio.Sections
	IsPublished bool
}

type CreatePortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

func (uc *CreatePortfolioUseCase) Execute(ctx context.Context, input CreatePortfolioInput) (*CreatePortfolioOutput, error) {
	now := time.Now().UTC()

	p := portfolio.New(input.OwnerID)
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	if input.Title != "" {
		p.Title = input.Title
	}
	if input.Theme != "" {
		p.Theme = input.Theme
	}
	if input.Sections != nil {
		p.Sections = *input.Sections
	}
	// Publishing at creation is allowed but must be explicit.
	p.IsPublished = input.IsPublished

	if err := uc.portfolioRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save portfolio failed: %w", err)
	}

	return &CreatePortfolioOutput{Portfolio: p}, nil
}
