package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTitle = "My Portfolio"
	DefaultTheme = "modern"
)

type Portfolio struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Theme       string    `json:"theme"`
	IsPublished bool      `json:"is_published"`
	Sections    Sections  `json:"sections"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New returns an unsaved portfolio with the default empty document.
// The zero ID marks it as not yet persisted.
func New(ownerID uuid.UUID) *Portfolio {
	return &Portfolio{
		OwnerID:  ownerID,
		Title:    DefaultTitle,
		Theme:    DefaultTheme,
		Sections: DefaultSections(),
	}
}

func (p *Portfolio) Persisted() bool {
	return p.ID != uuid.Nil
}

type Repository interface {
	Save(ctx context.Context, p *Portfolio) error
	Update(ctx context.Context, p *Portfolio) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Portfolio, error)
	FindPublished(ctx context.Context, id uuid.UUID) (*Portfolio, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Portfolio, error)
}
