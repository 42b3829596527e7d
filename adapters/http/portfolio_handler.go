package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioUC "github.com/careerforge/portfolio-api/internal/application/usecase/portfolio"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type PortfolioHandler struct {
	createPortfolioUseCase    *portfolioUC.CreatePortfolioUseCase
	updatePortfolioUseCase    *portfolioUC.UpdatePortfolioUseCase
	deletePortfolioUseCase    *portfolioUC.DeletePortfolioUseCase
	publishPortfolioUseCase   *portfolioUC.PublishPortfolioUseCase
	listPortfoliosUseCase     *portfolioUC.ListPortfoliosUseCase
	getPortfolioUseCase       *portfolioUC.GetPortfolioUseCase
	getPublicPortfolioUseCase *portfolioUC.GetPublicPortfolioUseCase
	logger                    logger.Logger
}

func NewPortfolioHandler(
	createUC *portfolioUC.CreatePortfolioUseCase,
	updateUC *portfolioUC.UpdatePortfolioUseCase,
	deleteUC *portfolioUC.DeletePortfolioUseCase,
	publishUC *portfolioUC.PublishPortfolioUseCase,
	listUC *portfolioUC.ListPortfoliosUseCase,
	getUC *portfolioUC.GetPortfolioUseCase,
	getPublicUC *portfolioUC.GetPublicPortfolioUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		createPortfolioUseCase:    createUC,
		updatePortfolioUseCase:    updateUC,
		deletePortfolioUseCase:    deleteUC,
		publishPortfolioUseCase:   publishUC,
		listPortfoliosUseCase:     listUC,
		getPortfolioUseCase:       getUC,
		getPublicPortfolioUseCase: getPublicUC,
		logger:                    log,
	}
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := portfolioUC.CreatePortfolioInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Theme:       req.Theme,
		Sections:    req.Sections,
		IsPublished: req.IsPublished,
	}

	output, err := h.createPortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}
	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := portfolioUC.UpdatePortfolioInput{
		PortfolioID: portfolioID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Theme:       req.Theme,
		Sections:    req.Sections,
		IsPublished: req.IsPublished,
	}

	output, err := h.updatePortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}

	input := portfolioUC.DeletePortfolioInput{PortfolioID: portfolioID, OwnerID: ownerID}
	if err := h.deletePortfolioUseCase.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PortfolioHandler) PublishPortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}
	var req PublishPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := portfolioUC.PublishPortfolioInput{
		PortfolioID: portfolioID,
		OwnerID:     ownerID,
		Publish:     *req.Publish,
	}
	output, err := h.publishPortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}

	input := portfolioUC.GetPortfolioInput{PortfolioID: portfolioID, OwnerID: ownerID}
	output, err := h.getPortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	input := portfolioUC.ListPortfoliosInput{OwnerID: ownerID, Page: page, Limit: limit}
	output, err := h.listPortfoliosUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]PortfolioSummaryDTO, len(output.Portfolios))
	for i, p := range output.Portfolios {
		dtos[i] = ToPortfolioSummaryDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *PortfolioHandler) GetPublicPortfolio(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}

	input := portfolioUC.GetPublicPortfolioInput{PortfolioID: portfolioID}
	output, err := h.getPublicPortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPublicPortfolioDTO(output.Portfolio))
}
