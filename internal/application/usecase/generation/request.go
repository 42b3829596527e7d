package generation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/pkg/apperror"
)

// BuildRequestInput is the raw, untrusted form data from the caller.
type BuildRequestInput struct {
	Type            string
	JobTitle        string
	Industry        string
	Experience      string
	Skills          []string
	ResumeText      string
	Tone            string
	SectionType     string
	ExistingContent []byte
	PortfolioID     *uuid.UUID
}

// BuildRequest validates and normalizes caller input into a generation
// request. It fails fast on bad input so nothing malformed ever reaches the
// model boundary.
func BuildRequest(in BuildRequestInput) (*generation.Request, error) {
	genType := generation.Type(in.Type)
	if !genType.Valid() {
		return nil, apperror.NewInvalidInput("unknown generation type: "+in.Type, nil)
	}

	jobTitle := strings.TrimSpace(in.JobTitle)
	if jobTitle == "" {
		return nil, apperror.NewInvalidInput("job title is required", nil)
	}

	tone := generation.ToneProfessional
	if in.Tone != "" {
		tone = generation.Tone(in.Tone)
		if !tone.Valid() {
			return nil, apperror.NewInvalidInput("unknown tone: "+in.Tone, nil)
		}
	}

	input := generation.InputData{
		JobTitle:   jobTitle,
		Industry:   strings.TrimSpace(in.Industry),
		Experience: strings.TrimSpace(in.Experience),
		Skills:     dedupeSkills(in.Skills),
		ResumeText: in.ResumeText,
		Tone:       tone,
	}

	switch genType {
	case generation.TypeSection:
		sectionType := generation.SectionType(in.SectionType)
		if !sectionType.Valid() {
			return nil, apperror.NewInvalidInput("a valid section type is required for section generation", nil)
		}
		input.SectionType = sectionType
	case generation.TypeContentEnhancement:
		if len(in.ExistingContent) == 0 {
			return nil, apperror.NewInvalidInput("existing content is required for content enhancement", nil)
		}
		input.ExistingContent = in.ExistingContent
	}

	return &generation.Request{
		Type:        genType,
		Input:       input,
		PortfolioID: in.PortfolioID,
	}, nil
}

// dedupeSkills trims entries and drops duplicates while preserving the
// caller's ordering; adding an already-present skill is a no-op.
func dedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
