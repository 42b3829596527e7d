package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	editorUC "github.com/careerforge/portfolio-api/internal/application/usecase/editor"
	generationUC "github.com/careerforge/portfolio-api/internal/application/usecase/generation"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type EditorHandler struct {
	manager *editorUC.Manager
	logger  logger.Logger
}

func NewEditorHandler(manager *editorUC.Manager, log logger.Logger) *EditorHandler {
	return &EditorHandler{manager: manager, logger: log}
}

func (h *EditorHandler) OpenSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	// an empty body opens a session on a fresh document
	var req OpenEditorRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid request data", err))
			return
		}
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

	sessionID, session, err := h.manager.Open(c.Request.Context(), ownerID, portfolioID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toEditorStateDTO(sessionID, session))
}

func (h *EditorHandler) GetSession(c *gin.Context) {
	sessionID, session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toEditorStateDTO(sessionID, session))
}

func (h *EditorHandler) UpdateDocument(c *gin.Context) {
	sessionID, session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	var req EditorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	if req.Title != nil {
		if err := session.SetTitle(*req.Title); err != nil {
			h.sessionError(c, err)
			return
		}
	}
	if req.Theme != nil {
		if err := session.SetTheme(*req.Theme); err != nil {
			h.sessionError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, toEditorStateDTO(sessionID, session))
}

func (h *EditorHandler) Generate(c *gin.Context) {
	sessionID, session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
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
	})
	if err != nil {
		c.Error(err)
		return
	}

	if err := session.Generate(c.Request.Context(), *request); err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEditorStateDTO(sessionID, session))
}

func (h *EditorHandler) Save(c *gin.Context) {
	sessionID, session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	if _, err := session.Save(c.Request.Context()); err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEditorStateDTO(sessionID, session))
}

func (h *EditorHandler) Publish(c *gin.Context) {
	sessionID, session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	var req EditorPublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	if _, err := session.Publish(c.Request.Context(), *req.Publish); err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEditorStateDTO(sessionID, session))
}

func (h *EditorHandler) CloseSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid session ID", err))
		return
	}
	if err := h.manager.Close(sessionID, ownerID); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EditorHandler) resolveSession(c *gin.Context) (uuid.UUID, *editorUC.Session, bool) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return uuid.Nil, nil, false
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid session ID", err))
		return uuid.Nil, nil, false
	}
	session, err := h.manager.Get(sessionID, ownerID)
	if err != nil {
		c.Error(err)
		return uuid.Nil, nil, false
	}
	return sessionID, session, true
}

// sessionError maps session lifecycle errors to 409; everything else keeps
// its own status.
func (h *EditorHandler) sessionError(c *gin.Context, err error) {
	if errors.Is(err, editorUC.ErrSaveInFlight) || errors.Is(err, editorUC.ErrBusy) || errors.Is(err, editorUC.ErrClosed) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.Error(err)
}

func toEditorStateDTO(sessionID uuid.UUID, s *editorUC.Session) EditorStateDTO {
	doc := s.Snapshot()
	return EditorStateDTO{
		SessionID: sessionID.String(),
		State:     string(s.State()),
		Dirty:     s.Dirty(),
		Document:  ToPortfolioDTO(&doc),
	}
}
