package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType is a closed enum; the ingestion boundary rejects anything else
// so downstream aggregation stays trustworthy.
type EventType string

const (
	EventView         EventType = "view"
	EventContactClick EventType = "contact_click"
	EventProjectClick EventType = "project_click"
	EventDownload     EventType = "download"
	EventShare        EventType = "share"
)

func (t EventType) Valid() bool {
	switch t {
	case EventView, EventContactClick, EventProjectClick, EventDownload, EventShare:
		return true
	}
	return false
}

// Event is anonymous visitor telemetry, append-only. It carries no user
// identity; visitor metadata comes from the transport layer, never from the
// caller's payload.
type Event struct {
	ID          uuid.UUID      `json:"id"`
	PortfolioID uuid.UUID      `json:"portfolio_id"`
	Type        EventType      `json:"event_type"`
	VisitorIP   string         `json:"visitor_ip"`
	UserAgent   string         `json:"user_agent"`
	Referrer    string         `json:"referrer"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

type Counts struct {
	Views         int `json:"views"`
	ContactClicks int `json:"contact_clicks"`
	ProjectClicks int `json:"project_clicks"`
	Downloads     int `json:"downloads"`
	Shares        int `json:"shares"`
	Total         int `json:"total"`
}

// CountEvents reduces a loaded event window into per-type counts. The result
// is bounded by the window the caller fetched, not a lifetime total.
func CountEvents(events []*Event) Counts {
	var c Counts
	for _, e := range events {
		switch e.Type {
		case EventView:
			c.Views++
		case EventContactClick:
			c.ContactClicks++
		case EventProjectClick:
			c.ProjectClicks++
		case EventDownload:
			c.Downloads++
		case EventShare:
			c.Shares++
		}
		c.Total++
	}
	return c
}

type Repository interface {
	Append(ctx context.Context, e *Event) error
	ListRecent(ctx context.Context, portfolioID uuid.UUID, limit int) ([]*Event, error)
}

// Publisher hands an event to the ingestion pipeline. Implementations must
// not block the caller beyond the publish itself.
type Publisher interface {
	Publish(ctx context.Context, e *Event) error
}
