package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSections_EmptyButInitialized(t *testing.T) {
	s := DefaultSections()

	assert.Equal(t, "", s.Hero.Title)
	assert.Equal(t, "", s.About.Content)
	assert.NotNil(t, s.Experience)
	assert.NotNil(t, s.Projects)
	assert.NotNil(t, s.Skills)
	assert.NotNil(t, s.Education)
	assert.Empty(t, s.Experience)
	assert.Empty(t, s.Skills)
	assert.Equal(t, "", s.Contact.Email)
}

func TestParsePartial_InvalidJSON(t *testing.T) {
	_, err := ParsePartial([]byte("not json"))
	require.Error(t, err)
}

func TestParsePartial_NoKnownSections(t *testing.T) {
	_, err := ParsePartial([]byte(`{"something_else": 1}`))
	require.ErrorIs(t, err, ErrNoSections)
}

func TestParsePartial_SingleSection(t *testing.T) {
	partial, err := ParsePartial([]byte(`{"about": {"content": "X"}}`))
	require.NoError(t, err)
	require.NotNil(t, partial.About)
	assert.Equal(t, "X", partial.About.Content)
	assert.Nil(t, partial.Hero)
	assert.Nil(t, partial.Experience)
}

func TestMergeGenerated_SectionIsolation(t *testing.T) {
	current := DefaultSections()
	current.Hero = HeroSection{Title: "Ada", Subtitle: "Engineer", Description: "d"}
	current.Experience = []ExperienceItem{{ID: "a", Title: "Dev", Company: "Acme"}}
	current.Projects = []ProjectItem{{ID: "p", Title: "Thing", Technologies: []string{"Go"}}}

	merged := MergeGenerated(current, PartialSections{
		About: &AboutSection{Content: "new about"},
	})

	assert.Equal(t, "new about", merged.About.Content)
	assert.Equal(t, current.Hero, merged.Hero)
	assert.Equal(t, current.Experience, merged.Experience)
	assert.Equal(t, current.Projects, merged.Projects)
	assert.Equal(t, current.Contact, merged.Contact)
}

func TestMergeGenerated_ReplacesWholeSection(t *testing.T) {
	current := DefaultSections()
	current.Experience = []ExperienceItem{
		{ID: "old-1", Title: "Old Role", Company: "Old Co"},
		{ID: "old-2", Title: "Older Role", Company: "Older Co"},
	}

	generated := PartialSections{
		Experience: &[]ExperienceItem{{ID: "new-1", Title: "New Role", Company: "New Co"}},
	}
	merged := MergeGenerated(current, generated)

	require.Len(t, merged.Experience, 1)
	assert.Equal(t, "New Role", merged.Experience[0].Title)
}

func TestMergeGenerated_Idempotent(t *testing.T) {
	current := DefaultSections()
	current.Skills = []string{"Go"}

	generated := PartialSections{
		Hero:   &HeroSection{Title: "Ada"},
		Skills: &[]string{"Go", "Postgres"},
		Projects: &[]ProjectItem{
			{ID: "1", Title: "One"},
			{ID: "1", Title: "Two"}, // duplicate id, as models tend to emit
			{ID: "", Title: "Three"},
		},
	}

	once := MergeGenerated(current, generated)
	twice := MergeGenerated(once, generated)

	assert.Equal(t, once, twice)
}

func TestMergeGenerated_UniqueItemIDs(t *testing.T) {
	generated := PartialSections{
		Experience: &[]ExperienceItem{
			{ID: "1", Title: "A"},
			{ID: "1", Title: "B"},
			{ID: "", Title: "C"},
		},
	}
	merged := MergeGenerated(DefaultSections(), generated)

	ids := map[string]bool{}
	for _, item := range merged.Experience {
		assert.NotEmpty(t, item.ID)
		assert.False(t, ids[item.ID], "duplicate id %q", item.ID)
		ids[item.ID] = true
	}
}

func TestMergeGenerated_DoesNotMutateInput(t *testing.T) {
	items := []ExperienceItem{{ID: "1"}, {ID: "1"}}
	generated := PartialSections{Experience: &items}

	_ = MergeGenerated(DefaultSections(), generated)

	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "1", items[1].ID)
}

func TestMergeGenerated_NilTechnologiesBecomesEmpty(t *testing.T) {
	generated := PartialSections{
		Projects: &[]ProjectItem{{ID: "p", Title: "No tech listed"}},
	}
	merged := MergeGenerated(DefaultSections(), generated)

	require.Len(t, merged.Projects, 1)
	assert.NotNil(t, merged.Projects[0].Technologies)
	assert.Empty(t, merged.Projects[0].Technologies)
}
