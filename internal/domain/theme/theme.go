package theme

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Theme struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	IsPremium   bool           `json:"is_premium"`
	PreviewURL  string         `json:"preview_url"`
	CreatedAt   time.Time      `json:"created_at"`
}

type Repository interface {
	ListAll(ctx context.Context) ([]*Theme, error)
}
