package generation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type selects the prompt strategy for a generation request.
type Type string

const (
	TypeFullPortfolio      Type = "full_portfolio"
	TypeSection            Type = "section"
	TypeContentEnhancement Type = "content_enhancement"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFullPortfolio, TypeSection, TypeContentEnhancement:
		return true
	}
	return false
}

// SectionType names the single section a "section" request targets.
type SectionType string

const (
	SectionHero       SectionType = "hero"
	SectionAbout      SectionType = "about"
	SectionExperience SectionType = "experience"
	SectionProjects   SectionType = "projects"
	SectionSkills     SectionType = "skills"
)

func (s SectionType) Valid() bool {
	switch s {
	case SectionHero, SectionAbout, SectionExperience, SectionProjects, SectionSkills:
		return true
	}
	return false
}

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCreative     Tone = "creative"
	ToneCasual       Tone = "casual"
	ToneTechnical    Tone = "technical"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCreative, ToneCasual, ToneTechnical:
		return true
	}
	return false
}

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// InputData is the request payload as the user submitted it, persisted
// verbatim on the generation record for auditability.
type InputData struct {
	JobTitle        string          `json:"job_title,omitempty"`
	Industry        string          `json:"industry,omitempty"`
	Experience      string          `json:"experience,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	ResumeText      string          `json:"resume_text,omitempty"`
	Tone            Tone            `json:"tone,omitempty"`
	SectionType     SectionType     `json:"section_type,omitempty"`
	EnhancementType string          `json:"enhancement_type,omitempty"`
	ExistingContent json.RawMessage `json:"existing_content,omitempty"`
}

// Request is the validated output of the request builder, passed unchanged
// to the generation use case.
type Request struct {
	Type        Type
	Input       InputData
	PortfolioID *uuid.UUID
}

// Record is the provenance entity: one row per generation request, created
// in processing state before the external call and moved to exactly one
// terminal state afterwards. Never mutated once terminal.
type Record struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	PortfolioID      *uuid.UUID      `json:"portfolio_id,omitempty"`
	Type             Type            `json:"generation_type"`
	Input            InputData       `json:"input_data"`
	Status           Status          `json:"status"`
	GeneratedContent json.RawMessage `json:"generated_content,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, r *Record) error
	MarkCompleted(ctx context.Context, id uuid.UUID, content json.RawMessage) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Record, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, error)
}
