package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	generationUC "github.com/careerforge/portfolio-api/internal/application/usecase/generation"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type GenerationHandler struct {
	generateContentUseCase *generationUC.GenerateContentUseCase
	enhanceTextUseCase     *generationUC.EnhanceTextUseCase
	logger                 logger.Logger
}

func NewGenerationHandler(
	generateUC *generationUC.GenerateContentUseCase,
	enhanceUC *generationUC.EnhanceTextUseCase,
	log logger.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generateContentUseCase: generateUC,
		enhanceTextUseCase:     enhanceUC,
		logger:                 log,
	}
}

func (h *GenerationHandler) GenerateContent(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	var portfolioID *uuid.UUID
	if req.PortfolioID != nil {
		id, err := uuid.Parse(*req.PortfolioID)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
			return
		}
		portfolioID = &id
	}

	request, err := generationUC.BuildRequest(generationUC.BuildRequestInput{
		Type:            req.Type,
		JobTitle:        req.JobTitle,
		Industry:        req.Industry,
		Experience:      req.Experience,
		Skills:          req.Skills,
		ResumeText:      req.ResumeText,
		Tone:            req.Tone,
		SectionType:     req.SectionType,
		ExistingContent: req.ExistingContent,
		PortfolioID:     portfolioID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.generateContentUseCase.Execute(c.Request.Context(), generationUC.GenerateContentInput{
		OwnerID: ownerID,
		Request: *request,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, GenerateContentResponse{
		GenerationID: output.GenerationID.String(),
		Content:      output.Content,
	})
}

func (h *GenerationHandler) EnhanceContent(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req EnhanceContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.enhanceTextUseCase.Execute(c.Request.Context(), generationUC.EnhanceTextInput{
		OwnerID:         ownerID,
		Content:         req.Content,
		EnhancementType: req.EnhancementType,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, EnhanceContentResponse{
		GenerationID:    output.GenerationID.String(),
		EnhancedContent: output.EnhancedContent,
	})
}
