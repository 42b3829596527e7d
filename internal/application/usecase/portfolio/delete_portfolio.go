package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/pkg/apperror"
)

type DeletePortfolioUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewDeletePortfolioUseCase(repo portfolio.Repository) *DeletePortfolioUseCase {
	return &DeletePortfolioUseCase{portfolioRepo: repo}
}

type DeletePortfolioInput struct {
	PortfolioID uuid.UUID
	OwnerID     uuid.UUID
}

// Execute removes a portfolio. Deleting an id that is already gone is
// treated as already-deleted, not an error.
func (uc *DeletePortfolioUseCase) Execute(ctx context.Context, input DeletePortfolioInput) error {
	err := uc.portfolioRepo.Delete(ctx, input.PortfolioID, input.OwnerID)
	if err != nil && errors.Is(err, apperror.ErrNotFound) {
		return nil
	}
	return err
}
