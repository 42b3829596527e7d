package editor

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	generationUC "github.com/careerforge/portfolio-api/internal/application/usecase/generation"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

// Manager keeps the live editor sessions of this process. Sessions are not
// shared across instances; a load balancer must pin editor traffic or the
// client must reopen on a miss.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	repo       portfolio.Repository
	generateUC *generationUC.GenerateContentUseCase
	logger     logger.Logger
}

func NewManager(repo portfolio.Repository, generateUC *generationUC.GenerateContentUseCase, log logger.Logger) *Manager {
	return &Manager{
		sessions:   make(map[uuid.UUID]*Session),
		repo:       repo,
		generateUC: generateUC,
		logger:     log,
	}
}

// Open starts a session for the given owner. portfolioID nil means a fresh
// document. Returns the session id used for all later calls.
func (m *Manager) Open(ctx context.Context, ownerID uuid.UUID, portfolioID *uuid.UUID) (uuid.UUID, *Session, error) {
	s, err := NewSession(ctx, m.repo, m.generateUC, ownerID, portfolioID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("editor session opened",
		zap.String("session_id", id.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return id, s, nil
}

// Get resolves a session for its owner. A session belonging to someone else
// looks exactly like a missing one.
func (m *Manager) Get(sessionID uuid.UUID, ownerID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok || s.OwnerID() != ownerID {
		return nil, apperror.NewNotFound("editor session", sessionID.String())
	}
	return s, nil
}

// Close ends a session and drops it from the registry.
func (m *Manager) Close(sessionID uuid.UUID, ownerID uuid.UUID) error {
	s, err := m.Get(sessionID, ownerID)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	m.logger.Info("editor session closed", zap.String("session_id", sessionID.String()))
	return nil
}
