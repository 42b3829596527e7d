package prompt

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Template is a stored prompt for one (category, industry) pair. Placeholders
// {jobTitle}, {industry}, {experience} and {skills} are substituted textually.
type Template struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Industry string    `json:"industry"`
	Body     string    `json:"body"`
}

type Vars struct {
	JobTitle   string
	Industry   string
	Experience string
	Skills     []string
}

func (t *Template) Render(vars Vars) string {
	jobTitle := vars.JobTitle
	if jobTitle == "" {
		jobTitle = "Professional"
	}
	industry := vars.Industry
	if industry == "" {
		industry = "Technology"
	}
	experience := vars.Experience
	if experience == "" {
		experience = "3"
	}
	skills := "Various skills"
	if len(vars.Skills) > 0 {
		skills = strings.Join(vars.Skills, ", ")
	}

	body := t.Body
	body = strings.ReplaceAll(body, "{jobTitle}", jobTitle)
	body = strings.ReplaceAll(body, "{industry}", industry)
	body = strings.ReplaceAll(body, "{experience}", experience)
	body = strings.ReplaceAll(body, "{skills}", skills)
	return body
}

// Repository looks up the most specific template for a category, preferring
// an industry match. A NotFound result is normal; callers fall back to a
// generic prompt.
type Repository interface {
	Find(ctx context.Context, category, industry string) (*Template, error)
}
