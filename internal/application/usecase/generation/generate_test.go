package generation

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/portfolio-api/internal/application/service"
	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/internal/domain/prompt"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
	lastReq  service.CompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req service.CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeGenRepo struct {
	records map[uuid.UUID]*generation.Record
	saveErr error
}

func newFakeGenRepo() *fakeGenRepo {
	return &fakeGenRepo{records: map[uuid.UUID]*generation.Record{}}
}

func (f *fakeGenRepo) Save(_ context.Context, r *generation.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	clone := *r
	f.records[r.ID] = &clone
	return nil
}

func (f *fakeGenRepo) MarkCompleted(_ context.Context, id uuid.UUID, content json.RawMessage) error {
	r, ok := f.records[id]
	if !ok {
		return apperror.NewNotFound("generation", id.String())
	}
	r.Status = generation.StatusCompleted
	r.GeneratedContent = content
	return nil
}

func (f *fakeGenRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	r, ok := f.records[id]
	if !ok {
		return apperror.NewNotFound("generation", id.String())
	}
	r.Status = generation.StatusFailed
	r.ErrorMessage = reason
	return nil
}

func (f *fakeGenRepo) FindByID(_ context.Context, id uuid.UUID, ownerID uuid.UUID) (*generation.Record, error) {
	r, ok := f.records[id]
	if !ok || r.OwnerID != ownerID {
		return nil, apperror.NewNotFound("generation", id.String())
	}
	return r, nil
}

func (f *fakeGenRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]*generation.Record, error) {
	var out []*generation.Record
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeGenRepo) only(t *testing.T) *generation.Record {
	t.Helper()
	require.Len(t, f.records, 1)
	for _, r := range f.records {
		return r
	}
	return nil
}

type fakePromptRepo struct {
	tpl *prompt.Template
	err error
}

func (f *fakePromptRepo) Find(_ context.Context, _, _ string) (*prompt.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tpl, nil
}

const fullPortfolioJSON = `{
  "hero": {"title": "Jordan Reyes", "subtitle": "Backend Engineer", "description": "Builds reliable systems."},
  "about": {"content": "Five years of backend work."},
  "experience": [{"id": "1", "title": "Backend Engineer", "company": "Acme", "duration": "2020 - Present", "description": "APIs."}],
  "projects": [{"id": "1", "title": "Ledger", "description": "Billing service", "technologies": ["Go", "Postgres"], "url": "https://example.com"}],
  "skills": ["Go", "Postgres", "Kafka"],
  "education": [{"id": "1", "degree": "BSc Computer Science", "school": "State University", "year": "2019"}],
  "contact": {"email": "jordan@example.com", "phone": "", "location": "Austin, TX", "linkedin": "", "github": ""}
}`

func newUseCase(llm *fakeLLM, repo *fakeGenRepo, prompts prompt.Repository) *GenerateContentUseCase {
	if prompts == nil {
		prompts = &fakePromptRepo{err: apperror.NewNotFound("ai_prompt", "none")}
	}
	return NewGenerateContentUseCase(repo, prompts, llm, logger.NewNopLogger())
}

func mustBuildRequest(t *testing.T, in BuildRequestInput) generation.Request {
	t.Helper()
	req, err := BuildRequest(in)
	require.NoError(t, err)
	return *req
}

func TestBuildRequest_MissingJobTitleFailsBeforeModelCall(t *testing.T) {
	llm := &fakeLLM{}

	_, err := BuildRequest(BuildRequestInput{Type: "full_portfolio", JobTitle: "   "})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 0, llm.calls)
}

func TestBuildRequest_UnknownType(t *testing.T) {
	_, err := BuildRequest(BuildRequestInput{Type: "resume", JobTitle: "Engineer"})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestBuildRequest_DefaultsToneAndDedupesSkills(t *testing.T) {
	req := mustBuildRequest(t, BuildRequestInput{
		Type:     "full_portfolio",
		JobTitle: " Backend Engineer ",
		Skills:   []string{"Go", "Postgres", "Go", " Kafka ", ""},
	})

	assert.Equal(t, "Backend Engineer", req.Input.JobTitle)
	assert.Equal(t, generation.ToneProfessional, req.Input.Tone)
	assert.Equal(t, []string{"Go", "Postgres", "Kafka"}, req.Input.Skills)
}

func TestBuildRequest_SectionRequiresSectionType(t *testing.T) {
	_, err := BuildRequest(BuildRequestInput{Type: "section", JobTitle: "Engineer"})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = BuildRequest(BuildRequestInput{Type: "section", JobTitle: "Engineer", SectionType: "contact"})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestBuildRequest_EnhancementRequiresExistingContent(t *testing.T) {
	_, err := BuildRequest(BuildRequestInput{Type: "content_enhancement", JobTitle: "Engineer"})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGenerate_FullPortfolio(t *testing.T) {
	llm := &fakeLLM{response: fullPortfolioJSON}
	repo := newFakeGenRepo()
	uc := newUseCase(llm, repo, nil)
	owner := uuid.New()

	req := mustBuildRequest(t, BuildRequestInput{
		Type:       "full_portfolio",
		JobTitle:   "Backend Engineer",
		Industry:   "tech",
		Experience: "5",
		Skills:     []string{"Go", "Postgres"},
		Tone:       "professional",
	})

	out, err := uc.Execute(context.Background(), GenerateContentInput{OwnerID: owner, Request: req})
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.Contains(t, llm.lastReq.System, "expert portfolio and resume writer")
	assert.Contains(t, llm.lastReq.Prompt, "Backend Engineer")
	assert.Contains(t, llm.lastReq.Prompt, "Go, Postgres")

	require.NotNil(t, out.Content.Hero)
	assert.NotEmpty(t, out.Content.Hero.Title)
	assert.NotEmpty(t, out.Content.Hero.Subtitle)
	require.NotNil(t, out.Content.About)
	assert.NotEmpty(t, out.Content.About.Content)
	require.NotNil(t, out.Content.Skills)
	assert.Contains(t, *out.Content.Skills, "Go")
	assert.Contains(t, *out.Content.Skills, "Postgres")
	require.NotNil(t, out.Content.Experience)
	assert.NotEmpty(t, *out.Content.Experience)
	require.NotNil(t, out.Content.Projects)
	assert.NotEmpty(t, *out.Content.Projects)

	record := repo.only(t)
	assert.Equal(t, generation.StatusCompleted, record.Status)
	assert.NotEmpty(t, record.GeneratedContent)
	assert.Equal(t, owner, record.OwnerID)
}

func TestGenerate_SectionUsesStoredTemplate(t *testing.T) {
	llm := &fakeLLM{response: `{"about": {"content": "X"}}`}
	repo := newFakeGenRepo()
	prompts := &fakePromptRepo{tpl: &prompt.Template{
		Category: "about",
		Industry: "tech",
		Body:     "Template for {jobTitle} in {industry}",
	}}
	uc := newUseCase(llm, repo, prompts)

	req := mustBuildRequest(t, BuildRequestInput{
		Type: "section", JobTitle: "Backend Engineer", Industry: "Tech", SectionType: "about",
	})

	out, err := uc.Execute(context.Background(), GenerateContentInput{OwnerID: uuid.New(), Request: req})
	require.NoError(t, err)

	assert.Contains(t, llm.lastReq.Prompt, "Template for Backend Engineer in Tech")
	assert.Contains(t, llm.lastReq.Prompt, `"about"`)
	require.NotNil(t, out.Content.About)
	assert.Equal(t, "X", out.Content.About.Content)
	assert.Nil(t, out.Content.Hero)
}

func TestGenerate_SectionFallsBackWithoutTemplate(t *testing.T) {
	llm := &fakeLLM{response: `{"skills": ["Go"]}`}
	repo := newFakeGenRepo()
	uc := newUseCase(llm, repo, nil)

	req := mustBuildRequest(t, BuildRequestInput{
		Type: "section", JobTitle: "SRE", SectionType: "skills",
	})

	_, err := uc.Execute(context.Background(), GenerateContentInput{OwnerID: uuid.New(), Request: req})
	require.NoError(t, err)

	assert.True(t, strings.Contains(llm.lastReq.Prompt, "Generate professional skills content"))
}

func TestGenerate_MalformedResponseFailsRecord(t *testing.T) {
	llm := &fakeLLM{response: "not json"}
	repo := newFakeGenRepo()
	uc := newUseCase(llm, repo, nil)

	req := mustBuildRequest(t, BuildRequestInput{Type: "full_portfolio", JobTitle: "Engineer"})

	_, err := uc.Execute(context.Background(), GenerateContentInput{OwnerID: uuid.New(), Request: req})
	require.ErrorIs(t, err, apperror.ErrUnprocessable)

	record := repo.only(t)
	assert.Equal(t, generation.StatusFailed, record.Status)
	assert.Empty(t, record.GeneratedContent)
	assert.NotEmpty(t, record.ErrorMessage)
}

func TestGenerate_ModelErrorFailsRecord(t *testing.T) {
	llm := &fakeLLM{err: apperror.NewUnavailable("boom", nil)}
	repo := newFakeGenRepo()
	uc := newUseCase(llm, repo, nil)

	req := mustBuildRequest(t, BuildRequestInput{Type: "full_portfolio", JobTitle: "Engineer"})

	_, err := uc.Execute(context.Background(), GenerateContentInput{OwnerID: uuid.New(), Request: req})
	require.ErrorIs(t, err, apperror.ErrUnavailable)

	record := repo.only(t)
	assert.Equal(t, generation.StatusFailed, record.Status)
}

func TestGenerate_AlwaysLeavesTerminalStatus(t *testing.T) {
	cases := []struct {
		name string
		llm  *fakeLLM
	}{
		{"success", &fakeLLM{response: fullPortfolioJSON}},
		{"transport error", &fakeLLM{err: apperror.NewUnavailable("down", nil)}},
		{"parse error", &fakeLLM{response: "{{nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeGenRepo()
			uc := newUseCase(tc.llm, repo, nil)
			req := mustBuildRequest(t, BuildRequestInput{Type: "full_portfolio", JobTitle: "Engineer"})

			_, _ = uc.Execute(context.Background(), GenerateContentInput{OwnerID: uuid.New(), Request: req})

			record := repo.only(t)
			assert.NotEqual(t, generation.StatusProcessing, record.Status)
			if record.Status == generation.StatusCompleted {
				assert.NotEmpty(t, record.GeneratedContent)
			} else {
				assert.Empty(t, record.GeneratedContent)
			}
		})
	}
}

func TestEnhanceText(t *testing.T) {
	llm := &fakeLLM{response: "  Enhanced copy.  "}
	repo := newFakeGenRepo()
	uc := NewEnhanceTextUseCase(repo, llm, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), EnhanceTextInput{
		OwnerID:         uuid.New(),
		Content:         "I did some work on APIs.",
		EnhancementType: "action_oriented",
	})
	require.NoError(t, err)

	assert.Equal(t, "Enhanced copy.", out.EnhancedContent)
	assert.Contains(t, llm.lastReq.Prompt, "action-oriented")
	assert.Contains(t, llm.lastReq.System, "content enhancer")

	record := repo.only(t)
	assert.Equal(t, generation.StatusCompleted, record.Status)
	assert.Equal(t, generation.TypeContentEnhancement, record.Type)
}

func TestEnhanceText_EmptyContent(t *testing.T) {
	llm := &fakeLLM{}
	uc := NewEnhanceTextUseCase(newFakeGenRepo(), llm, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), EnhanceTextInput{OwnerID: uuid.New(), Content: "  "})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 0, llm.calls)
}
