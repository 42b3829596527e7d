package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	themeUC "github.com/careerforge/portfolio-api/internal/application/usecase/theme"
)

type ThemeHandler struct {
	listThemesUseCase *themeUC.ListThemesUseCase
}

func NewThemeHandler(listUC *themeUC.ListThemesUseCase) *ThemeHandler {
	return &ThemeHandler{listThemesUseCase: listUC}
}

func (h *ThemeHandler) ListThemes(c *gin.Context) {
	output, err := h.listThemesUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]ThemeDTO, len(output.Themes))
	for i, t := range output.Themes {
		dtos[i] = ToThemeDTO(t)
	}
	c.JSON(http.StatusOK, dtos)
}
