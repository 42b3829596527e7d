package http

import (
	"encoding/json"
	"time"

	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/internal/domain/theme"
)

// Portfolio DTOs

type CreatePortfolioRequest struct {
	Title       string              `json:"title"`
	Theme       string              `json:"theme"`
	Sections    *portfolio.Sections `json:"sections"`
	IsPublished bool                `json:"is_published"`
}

type UpdatePortfolioRequest struct {
	Title       *string             `json:"title"`
	Theme       *string             `json:"theme"`
	Sections    *portfolio.Sections `json:"sections"`
	IsPublished *bool               `json:"is_published"`
}

type PublishPortfolioRequest struct {
	Publish *bool `json:"publish" binding:"required"`
}

type PortfolioDTO struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Theme       string             `json:"theme"`
	IsPublished bool               `json:"is_published"`
	Sections    portfolio.Sections `json:"sections"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type PortfolioSummaryDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Theme       string    `json:"theme"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicPortfolioDTO deliberately omits the owner; visitors never learn who
// an id belongs to.
type PublicPortfolioDTO struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Theme    string             `json:"theme"`
	Sections portfolio.Sections `json:"sections"`
}

func ToPortfolioDTO(p *portfolio.Portfolio) PortfolioDTO {
	return PortfolioDTO{
		ID:          p.ID.String(),
		Title:       p.Title,
		Theme:       p.Theme,
		IsPublished: p.IsPublished,
		Sections:    p.Sections,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPortfolioSummaryDTO(p *portfolio.Portfolio) PortfolioSummaryDTO {
	return PortfolioSummaryDTO{
		ID:          p.ID.String(),
		Title:       p.Title,
		Theme:       p.Theme,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPublicPortfolioDTO(p *portfolio.Portfolio) PublicPortfolioDTO {
	return PublicPortfolioDTO{
		ID:       p.ID.String(),
		Title:    p.Title,
		Theme:    p.Theme,
		Sections: p.Sections,
	}
}

// Generation DTOs

type GenerateContentRequest struct {
	Type            string          `json:"type" binding:"required"`
	JobTitle        string          `json:"job_title"`
	Industry        string          `json:"industry"`
	Experience      string          `json:"experience"`
	Skills          []string        `json:"skills"`
	ResumeText      string          `json:"resume_text"`
	Tone            string          `json:"tone"`
	SectionType     string          `json:"section_type"`
	ExistingContent json.RawMessage `json:"existing_content"`
	PortfolioID     *string         `json:"portfolio_id"`
}

type GenerateContentResponse struct {
	GenerationID string                    `json:"generation_id"`
	Content      portfolio.PartialSections `json:"content"`
}

type EnhanceContentRequest struct {
	Content         string `json:"content" binding:"required"`
	EnhancementType string `json:"enhancement_type"`
}

type EnhanceContentResponse struct {
	GenerationID    string `json:"generation_id"`
	EnhancedContent string `json:"enhanced_content"`
}

// Analytics DTOs

type TrackEventRequest struct {
	PortfolioID string         `json:"portfolio_id" binding:"required"`
	EventType   string         `json:"event_type" binding:"required"`
	Metadata    map[string]any `json:"metadata"`
}

type AnalyticsSummaryDTO struct {
	Counts analytics.Counts    `json:"counts"`
	Events []AnalyticsEventDTO `json:"events"`
}

type AnalyticsEventDTO struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	Referrer  string    `json:"referrer"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAnalyticsSummaryDTO(counts analytics.Counts, events []*analytics.Event) AnalyticsSummaryDTO {
	dto := AnalyticsSummaryDTO{Counts: counts}
	dto.Events = make([]AnalyticsEventDTO, len(events))
	for i, e := range events {
		dto.Events[i] = AnalyticsEventDTO{
			ID:        e.ID.String(),
			EventType: string(e.Type),
			Referrer:  e.Referrer,
			CreatedAt: e.CreatedAt,
		}
	}
	return dto
}

// Theme DTOs

type ThemeDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	IsPremium   bool           `json:"is_premium"`
	PreviewURL  string         `json:"preview_url"`
}

func ToThemeDTO(t *theme.Theme) ThemeDTO {
	return ThemeDTO{
		ID:          t.ID.String(),
		Name:        t.Name,
		DisplayName: t.DisplayName,
		Description: t.Description,
		Config:      t.Config,
		IsPremium:   t.IsPremium,
		PreviewURL:  t.PreviewURL,
	}
}

// Editor DTOs

type OpenEditorRequest struct {
	PortfolioID *string `json:"portfolio_id"`
}

type EditorStateDTO struct {
	SessionID string       `json:"session_id"`
	State     string       `json:"state"`
	Dirty     bool         `json:"dirty"`
	Document  PortfolioDTO `json:"document"`
}

type EditorUpdateRequest struct {
	Title *string `json:"title"`
	Theme *string `json:"theme"`
}

type EditorPublishRequest struct {
	Publish *bool `json:"publish" binding:"required"`
}
