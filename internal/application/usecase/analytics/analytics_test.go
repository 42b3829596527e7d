package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type fakePublisher struct {
	published []*analytics.Event
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, e *analytics.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

type fakeAnalyticsRepo struct {
	events []*analytics.Event
}

func (f *fakeAnalyticsRepo) Append(_ context.Context, e *analytics.Event) error {
	clone := *e
	f.events = append(f.events, &clone)
	return nil
}

func (f *fakeAnalyticsRepo) ListRecent(_ context.Context, portfolioID uuid.UUID, limit int) ([]*analytics.Event, error) {
	var out []*analytics.Event
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].PortfolioID == portfolioID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

type fakePortfolioRepo struct {
	rows map[uuid.UUID]uuid.UUID // portfolio id -> owner id
}

func (f *fakePortfolioRepo) Save(context.Context, *portfolio.Portfolio) error   { return nil }
func (f *fakePortfolioRepo) Update(context.Context, *portfolio.Portfolio) error { return nil }
func (f *fakePortfolioRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakePortfolioRepo) FindByID(_ context.Context, id uuid.UUID, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	owner, ok := f.rows[id]
	if !ok || owner != ownerID {
		return nil, apperror.NewNotFound("portfolio", id.String())
	}
	p := portfolio.New(ownerID)
	p.ID = id
	return p, nil
}
func (f *fakePortfolioRepo) FindPublished(_ context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	return nil, apperror.NewNotFound("portfolio", id.String())
}
func (f *fakePortfolioRepo) ListByOwner(context.Context, uuid.UUID, int, int) ([]*portfolio.Portfolio, error) {
	return nil, nil
}

func TestTrackEvent_PublishesValidEvent(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewTrackEventUseCase(pub, logger.NewNopLogger())
	portfolioID := uuid.New()

	err := uc.Execute(context.Background(), TrackEventInput{
		PortfolioID: portfolioID,
		Type:        analytics.EventView,
		VisitorIP:   "203.0.113.9",
		UserAgent:   "Mozilla/5.0",
		Referrer:    "https://news.example.com",
	})
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	e := pub.published[0]
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, portfolioID, e.PortfolioID)
	assert.Equal(t, analytics.EventView, e.Type)
	assert.Equal(t, "203.0.113.9", e.VisitorIP)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestTrackEvent_RejectsUnknownType(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewTrackEventUseCase(pub, logger.NewNopLogger())

	err := uc.Execute(context.Background(), TrackEventInput{
		PortfolioID: uuid.New(),
		Type:        analytics.EventType("page_hover"),
	})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, pub.published)
}

func TestTrackEvent_RequiresPortfolioID(t *testing.T) {
	uc := NewTrackEventUseCase(&fakePublisher{}, logger.NewNopLogger())

	err := uc.Execute(context.Background(), TrackEventInput{Type: analytics.EventView})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestTrackEvent_PublisherFailureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	uc := NewTrackEventUseCase(pub, logger.NewNopLogger())

	err := uc.Execute(context.Background(), TrackEventInput{
		PortfolioID: uuid.New(),
		Type:        analytics.EventShare,
	})

	require.NoError(t, err, "a broker outage never reaches the visitor")
}

func TestProcessEvent_AppendsToStore(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := NewProcessEventUseCase(repo, logger.NewNopLogger())

	event := &analytics.Event{
		ID:          uuid.New(),
		PortfolioID: uuid.New(),
		Type:        analytics.EventProjectClick,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, uc.Execute(context.Background(), event))
	require.Len(t, repo.events, 1)
	assert.Equal(t, event.ID, repo.events[0].ID)
}

func TestProcessEvent_DropsUnknownType(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := NewProcessEventUseCase(repo, logger.NewNopLogger())

	err := uc.Execute(context.Background(), &analytics.Event{
		ID:   uuid.New(),
		Type: analytics.EventType("bogus"),
	})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.events)
}

func TestGetAnalytics_CountsRecentWindow(t *testing.T) {
	owner := uuid.New()
	portfolioID := uuid.New()
	pRepo := &fakePortfolioRepo{rows: map[uuid.UUID]uuid.UUID{portfolioID: owner}}
	aRepo := &fakeAnalyticsRepo{}

	for _, typ := range []analytics.EventType{
		analytics.EventView, analytics.EventView, analytics.EventContactClick, analytics.EventDownload,
	} {
		require.NoError(t, aRepo.Append(context.Background(), &analytics.Event{
			ID: uuid.New(), PortfolioID: portfolioID, Type: typ,
		}))
	}
	// noise from another portfolio must not leak in
	require.NoError(t, aRepo.Append(context.Background(), &analytics.Event{
		ID: uuid.New(), PortfolioID: uuid.New(), Type: analytics.EventView,
	}))

	out, err := NewGetAnalyticsUseCase(aRepo, pRepo).Execute(context.Background(), GetAnalyticsInput{
		PortfolioID: portfolioID,
		OwnerID:     owner,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Counts.Views)
	assert.Equal(t, 1, out.Counts.ContactClicks)
	assert.Equal(t, 1, out.Counts.Downloads)
	assert.Equal(t, 4, out.Counts.Total)
}

func TestGetAnalytics_CrossOwnerIsNotFound(t *testing.T) {
	portfolioID := uuid.New()
	pRepo := &fakePortfolioRepo{rows: map[uuid.UUID]uuid.UUID{portfolioID: uuid.New()}}

	_, err := NewGetAnalyticsUseCase(&fakeAnalyticsRepo{}, pRepo).Execute(context.Background(), GetAnalyticsInput{
		PortfolioID: portfolioID,
		OwnerID:     uuid.New(),
	})

	require.ErrorIs(t, err, apperror.ErrNotFound)
}
