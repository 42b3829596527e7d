package theme

import (
	"context"

	"github.com/careerforge/portfolio-api/internal/domain/theme"
)

type ListThemesUseCase struct {
	themeRepo theme.Repository
}

func NewListThemesUseCase(repo theme.Repository) *ListThemesUseCase {
	return &ListThemesUseCase{themeRepo: repo}
}

type ListThemesOutput struct {
	Themes []*theme.Theme
}

func (uc *ListThemesUseCase) Execute(ctx context.Context) (*ListThemesOutput, error) {
	themes, err := uc.themeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListThemesOutput{Themes: themes}, nil
}
