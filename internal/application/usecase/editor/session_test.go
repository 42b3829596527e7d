package editor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/portfolio-api/internal/application/service"
	generationUC "github.com/careerforge/portfolio-api/internal/application/usecase/generation"
	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/internal/domain/prompt"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

// blockingRepo lets a test hold a Save open to observe in-flight behavior.
type blockingRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*portfolio.Portfolio
	saves   int
	updates int

	gate chan struct{} // when non-nil, Save blocks until the gate closes
}

func newBlockingRepo() *blockingRepo {
	return &blockingRepo{rows: map[uuid.UUID]*portfolio.Portfolio{}}
}

func (f *blockingRepo) Save(_ context.Context, p *portfolio.Portfolio) error {
	f.mu.Lock()
	gate := f.gate
	f.saves++
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *p
	f.rows[p.ID] = &clone
	return nil
}

func (f *blockingRepo) Update(_ context.Context, p *portfolio.Portfolio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	existing, ok := f.rows[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return apperror.NewNotFound("portfolio", p.ID.String())
	}
	clone := *p
	f.rows[p.ID] = &clone
	return nil
}

func (f *blockingRepo) Delete(_ context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok || existing.OwnerID != ownerID {
		return apperror.NewNotFound("portfolio", id.String())
	}
	delete(f.rows, id)
	return nil
}

func (f *blockingRepo) FindByID(_ context.Context, id uuid.UUID, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok || existing.OwnerID != ownerID {
		return nil, apperror.NewNotFound("portfolio", id.String())
	}
	clone := *existing
	return &clone, nil
}

func (f *blockingRepo) FindPublished(_ context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok || !existing.IsPublished {
		return nil, apperror.NewNotFound("portfolio", id.String())
	}
	clone := *existing
	return &clone, nil
}

func (f *blockingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*portfolio.Portfolio, error) {
	return nil, nil
}

type stubGenRepo struct{}

func (stubGenRepo) Save(context.Context, *generation.Record) error { return nil }
func (stubGenRepo) MarkCompleted(context.Context, uuid.UUID, json.RawMessage) error {
	return nil
}
func (stubGenRepo) MarkFailed(context.Context, uuid.UUID, string) error { return nil }
func (stubGenRepo) FindByID(context.Context, uuid.UUID, uuid.UUID) (*generation.Record, error) {
	return nil, apperror.NewNotFound("ai generation", "")
}
func (stubGenRepo) ListByOwner(context.Context, uuid.UUID, int, int) ([]*generation.Record, error) {
	return nil, nil
}

type stubPromptRepo struct{}

func (stubPromptRepo) Find(_ context.Context, category, industry string) (*prompt.Template, error) {
	return nil, apperror.NewNotFound("ai prompt", category)
}

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Complete(context.Context, service.CompletionRequest) (string, error) {
	return s.response, s.err
}

func newTestGenerateUC(llm service.LLMService) *generationUC.GenerateContentUseCase {
	return generationUC.NewGenerateContentUseCase(stubGenRepo{}, stubPromptRepo{}, llm, logger.NewNopLogger())
}

func openSession(t *testing.T, repo portfolio.Repository, llm service.LLMService) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), repo, newTestGenerateUC(llm), uuid.New(), nil)
	require.NoError(t, err)
	return s
}

func TestSession_NewDocumentStartsReady(t *testing.T) {
	s := openSession(t, newBlockingRepo(), &stubLLM{})

	assert.Equal(t, StateReady, s.State())
	assert.False(t, s.Dirty())
	doc := s.Snapshot()
	assert.Equal(t, uuid.Nil, doc.ID)
	assert.Equal(t, portfolio.DefaultTitle, doc.Title)
	assert.Equal(t, portfolio.DefaultSections(), doc.Sections)
}

func TestSession_LoadsExistingPortfolio(t *testing.T) {
	repo := newBlockingRepo()
	owner := uuid.New()
	existing := portfolio.New(owner)
	existing.ID = uuid.New()
	existing.Title = "Consulting Site"
	repo.rows[existing.ID] = existing

	s, err := NewSession(context.Background(), repo, newTestGenerateUC(&stubLLM{}), owner, &existing.ID)
	require.NoError(t, err)

	assert.Equal(t, "Consulting Site", s.Snapshot().Title)
	assert.Equal(t, StateReady, s.State())
}

func TestSession_LoadCrossOwnerIsNotFound(t *testing.T) {
	repo := newBlockingRepo()
	existing := portfolio.New(uuid.New())
	existing.ID = uuid.New()
	repo.rows[existing.ID] = existing

	_, err := NewSession(context.Background(), repo, newTestGenerateUC(&stubLLM{}), uuid.New(), &existing.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSession_FirstSaveAssignsID(t *testing.T) {
	repo := newBlockingRepo()
	s := openSession(t, repo, &stubLLM{})

	require.NoError(t, s.SetTitle("Draft"))
	assert.True(t, s.Dirty())

	saved, err := s.Save(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, s.Dirty())
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 0, repo.updates)

	// second save is an update against the same id
	require.NoError(t, s.SetTitle("Draft v2"))
	again, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 1, repo.updates)
}

func TestSession_ConcurrentSaveRejected(t *testing.T) {
	repo := newBlockingRepo()
	repo.gate = make(chan struct{})
	s := openSession(t, repo, &stubLLM{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return s.State() == StateSaving },
		time.Second, time.Millisecond)

	_, err := s.Save(context.Background())
	require.ErrorIs(t, err, ErrSaveInFlight)

	close(repo.gate)
	require.NoError(t, <-done)
	assert.Equal(t, StateReady, s.State())
}

func TestSession_ApplyGeneratedMarksDirtyWithoutSaving(t *testing.T) {
	repo := newBlockingRepo()
	s := openSession(t, repo, &stubLLM{})

	about := "Engineer with a decade of systems work."
	require.NoError(t, s.ApplyGenerated(portfolio.PartialSections{
		About: &portfolio.AboutSection{Content: about},
	}))

	assert.True(t, s.Dirty())
	assert.Equal(t, about, s.Snapshot().Sections.About.Content)
	assert.Equal(t, 0, repo.saves)
	assert.Equal(t, 0, repo.updates)
}

func TestSession_GenerateAppliesContent(t *testing.T) {
	repo := newBlockingRepo()
	llm := &stubLLM{response: `{"hero":{"title":"Nadia Osei","subtitle":"Data Engineer"}}`}
	s := openSession(t, repo, llm)

	err := s.Generate(context.Background(), generation.Request{
		Type:  generation.TypeFullPortfolio,
		Input: generation.InputData{JobTitle: "Data Engineer", Tone: generation.ToneProfessional},
	})
	require.NoError(t, err)

	doc := s.Snapshot()
	assert.Equal(t, "Nadia Osei", doc.Sections.Hero.Title)
	assert.True(t, s.Dirty())
	assert.Equal(t, StateReady, s.State())
}

func TestSession_FailedGenerateLeavesDocumentUntouched(t *testing.T) {
	repo := newBlockingRepo()
	llm := &stubLLM{err: apperror.NewUnavailable("model unavailable", errors.New("boom"))}
	s := openSession(t, repo, llm)

	before := s.Snapshot()
	err := s.Generate(context.Background(), generation.Request{
		Type:  generation.TypeFullPortfolio,
		Input: generation.InputData{JobTitle: "Data Engineer", Tone: generation.ToneProfessional},
	})
	require.ErrorIs(t, err, apperror.ErrUnavailable)

	assert.Equal(t, before.Sections, s.Snapshot().Sections)
	assert.False(t, s.Dirty())
	assert.Equal(t, StateReady, s.State())
}

func TestSession_PublishSavesFirstWhenUnsaved(t *testing.T) {
	repo := newBlockingRepo()
	s := openSession(t, repo, &stubLLM{})

	published, err := s.Publish(context.Background(), true)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, published.ID)
	assert.True(t, published.IsPublished)
	assert.Equal(t, 1, repo.saves, "implicit save before publish")
	assert.Equal(t, 1, repo.updates, "publish itself is an update")
}

func TestSession_CloseOnlyWhenReady(t *testing.T) {
	repo := newBlockingRepo()
	repo.gate = make(chan struct{})
	s := openSession(t, repo, &stubLLM{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return s.State() == StateSaving },
		time.Second, time.Millisecond)

	require.ErrorIs(t, s.Close(), ErrBusy)

	close(repo.gate)
	require.NoError(t, <-done)
	require.NoError(t, s.Close())

	_, err := s.Save(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestManager_OwnershipScoped(t *testing.T) {
	repo := newBlockingRepo()
	m := NewManager(repo, newTestGenerateUC(&stubLLM{}), logger.NewNopLogger())
	owner := uuid.New()

	id, _, err := m.Open(context.Background(), owner, nil)
	require.NoError(t, err)

	_, err = m.Get(id, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound, "someone else's session looks missing")

	s, err := m.Get(id, owner)
	require.NoError(t, err)
	assert.Equal(t, StateReady, s.State())

	require.NoError(t, m.Close(id, owner))
	_, err = m.Get(id, owner)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
