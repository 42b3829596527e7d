package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	generationUC "github.com/careerforge/portfolio-api/internal/application/usecase/generation"
	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
)

// State is the session's position in its lifecycle. Loading happens once at
// start; Saving, Generating and Publishing always return to Ready, whether
// the operation succeeded or not.
type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSaving     State = "saving"
	StateGenerating State = "generating"
	StatePublishing State = "publishing"
)

var (
	ErrSaveInFlight = errors.New("a save is already in flight for this session")
	ErrBusy         = errors.New("session is busy")
	ErrClosed       = errors.New("session is closed")
)

// Session is an in-memory edit controller over one portfolio. It serializes
// saves with a session-local flag, not a distributed lock: two devices
// editing the same portfolio still race, and the store resolves that with
// last-write-wins.
type Session struct {
	mu     sync.Mutex
	state  State
	dirty  bool
	closed bool

	doc portfolio.Portfolio

	repo       portfolio.Repository
	generateUC *generationUC.GenerateContentUseCase
}

// NewSession hydrates from the store when a portfolio id is given, otherwise
// starts a blank document that gets its id on first save.
func NewSession(
	ctx context.Context,
	repo portfolio.Repository,
	generateUC *generationUC.GenerateContentUseCase,
	ownerID uuid.UUID,
	portfolioID *uuid.UUID,
) (*Session, error) {
	s := &Session{
		state:      StateLoading,
		repo:       repo,
		generateUC: generateUC,
	}

	if portfolioID != nil {
		p, err := repo.FindByID(ctx, *portfolioID, ownerID)
		if err != nil {
			return nil, err
		}
		s.doc = *p
	} else {
		s.doc = *portfolio.New(ownerID)
	}

	s.state = StateReady
	return s, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Session) OwnerID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.OwnerID
}

// Snapshot returns a copy of the working document.
func (s *Session) Snapshot() portfolio.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *Session) SetTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}
	s.doc.Title = title
	s.dirty = true
	return nil
}

func (s *Session) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}
	s.doc.Theme = theme
	s.dirty = true
	return nil
}

// ApplyGenerated merges generated content into the working document and
// marks the session dirty. It never saves on its own.
func (s *Session) ApplyGenerated(content portfolio.PartialSections) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}
	s.doc.Sections = portfolio.MergeGenerated(s.doc.Sections, content)
	s.dirty = true
	return nil
}

// Generate runs a generation request and applies the result. A failed
// generation leaves the document exactly as it was; the session is back in
// Ready either way and the caller may simply retry.
func (s *Session) Generate(ctx context.Context, req generation.Request) error {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = StateGenerating
	ownerID := s.doc.OwnerID
	if req.PortfolioID == nil && s.doc.Persisted() {
		id := s.doc.ID
		req.PortfolioID = &id
	}
	s.mu.Unlock()

	out, err := s.generateUC.Execute(ctx, generationUC.GenerateContentInput{
		OwnerID: ownerID,
		Request: req,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	if err != nil {
		return err
	}
	s.doc.Sections = portfolio.MergeGenerated(s.doc.Sections, out.Content)
	s.dirty = true
	return nil
}

// Save persists the working document: create on first save, update after.
// A save issued while another is in flight is rejected rather than queued;
// the caller retries once the first save settles.
func (s *Session) Save(ctx context.Context) (*portfolio.Portfolio, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.state == StateSaving {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	if s.state != StateReady {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = StateSaving

	creating := !s.doc.Persisted()
	snapshot := s.doc
	now := time.Now().UTC()
	if creating {
		snapshot.ID = uuid.New()
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now
	s.mu.Unlock()

	var err error
	if creating {
		err = s.repo.Save(ctx, &snapshot)
	} else {
		err = s.repo.Update(ctx, &snapshot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	if err != nil {
		return nil, err
	}
	if creating {
		s.doc.ID = snapshot.ID
		s.doc.CreatedAt = snapshot.CreatedAt
	}
	s.doc.UpdatedAt = snapshot.UpdatedAt
	s.dirty = false
	saved := s.doc
	return &saved, nil
}

// Publish toggles visibility. A session that was never saved is saved first
// so there is an id to publish.
func (s *Session) Publish(ctx context.Context, publish bool) (*portfolio.Portfolio, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	persisted := s.doc.Persisted()
	s.mu.Unlock()

	if !persisted {
		if _, err := s.Save(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = StatePublishing
	snapshot := s.doc
	snapshot.IsPublished = publish
	snapshot.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	err := s.repo.Update(ctx, &snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	if err != nil {
		return nil, err
	}
	s.doc.IsPublished = snapshot.IsPublished
	s.doc.UpdatedAt = snapshot.UpdatedAt
	published := s.doc
	return &published, nil
}

// Close ends the session. Only a Ready session can close; in-flight work
// must finish or fail first.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.state != StateReady {
		return ErrBusy
	}
	s.closed = true
	return nil
}

func (s *Session) readyLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.state != StateReady {
		return ErrBusy
	}
	return nil
}
