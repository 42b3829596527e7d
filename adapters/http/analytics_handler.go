package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	analyticsUC "github.com/careerforge/portfolio-api/internal/application/usecase/analytics"
	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type AnalyticsHandler struct {
	trackEventUseCase   *analyticsUC.TrackEventUseCase
	getAnalyticsUseCase *analyticsUC.GetAnalyticsUseCase
	logger              logger.Logger
}

func NewAnalyticsHandler(
	trackUC *analyticsUC.TrackEventUseCase,
	getUC *analyticsUC.GetAnalyticsUseCase,
	log logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		trackEventUseCase:   trackUC,
		getAnalyticsUseCase: getUC,
		logger:              log,
	}
}

// TrackEvent is the anonymous ingestion endpoint. Visitor metadata comes
// from transport headers, never from the payload; a valid event is always
// accepted even if the pipeline behind it is down.
func (h *AnalyticsHandler) TrackEvent(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	portfolioID, err := uuid.Parse(req.PortfolioID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}

	input := analyticsUC.TrackEventInput{
		PortfolioID: portfolioID,
		Type:        analytics.EventType(req.EventType),
		VisitorIP:   visitorIP(c),
		UserAgent:   c.GetHeader("User-Agent"),
		Referrer:    c.GetHeader("Referer"),
		Metadata:    req.Metadata,
	}

	if err := h.trackEventUseCase.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
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

	output, err := h.getAnalyticsUseCase.Execute(c.Request.Context(), analyticsUC.GetAnalyticsInput{
		PortfolioID: portfolioID,
		OwnerID:     ownerID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToAnalyticsSummaryDTO(output.Counts, output.Events))
}

// visitorIP prefers proxy headers over the socket address: X-Forwarded-For's
// first hop, then X-Real-IP, then a fixed unknown marker.
func visitorIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return "unknown"
}
