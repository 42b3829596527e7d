package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

type PublishPortfolioUseCase struct {
	updateUseCase *UpdatePortfolioUseCase
}

func NewPublishPortfolioUseCase(updateUC *UpdatePortfolioUseCase) *PublishPortfolioUseCase {
	return &PublishPortfolioUseCase{updateUseCase: updateUC}
}

type PublishPortfolioInput struct {
	PortfolioID uuid.UUID
	OwnerID     uuid.UUID
	Publish     bool
}

type PublishPortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

// Execute toggles visibility. An empty or placeholder document may be
// published; there is no minimum-content check.
func (uc *PublishPortfolioUseCase) Execute(ctx context.Context, input PublishPortfolioInput) (*PublishPortfolioOutput, error) {
	publish := input.Publish
	out, err := uc.updateUseCase.Execute(ctx, UpdatePortfolioInput{
		PortfolioID: input.PortfolioID,
		OwnerID:     input.OwnerID,
		IsPublished: &publish,
	})
	if err != nil {
		return nil, err
	}
	return &PublishPortfolioOutput{Portfolio: out.Portfolio}, nil
}
