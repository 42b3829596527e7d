package portfolio

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/google/uuid"
)

// Sections is the canonical shape of a portfolio document. Every section is
// always present; "empty" means the zero value declared by DefaultSections.
type Sections struct {
	Hero       HeroSection      `json:"hero"`
	About      AboutSection     `json:"about"`
	Experience []ExperienceItem `json:"experience"`
	Projects   []ProjectItem    `json:"projects"`
	Skills     []string         `json:"skills"`
	Education  []EducationItem  `json:"education"`
	Contact    ContactSection   `json:"contact"`
}

type HeroSection struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

type AboutSection struct {
	Content string `json:"content"`
}

type ExperienceItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type ProjectItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
}

type EducationItem struct {
	ID     string `json:"id"`
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

type ContactSection struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

func DefaultSections() Sections {
	return Sections{
		Hero:       HeroSection{},
		About:      AboutSection{},
		Experience: []ExperienceItem{},
		Projects:   []ProjectItem{},
		Skills:     []string{},
		Education:  []EducationItem{},
		Contact:    ContactSection{},
	}
}

// PartialSections carries only the sections present in a generated payload.
// A nil field means "key absent", which the merge must leave untouched.
type PartialSections struct {
	Hero       *HeroSection      `json:"hero,omitempty"`
	About      *AboutSection     `json:"about,omitempty"`
	Experience *[]ExperienceItem `json:"experience,omitempty"`
	Projects   *[]ProjectItem    `json:"projects,omitempty"`
	Skills     *[]string         `json:"skills,omitempty"`
	Education  *[]EducationItem  `json:"education,omitempty"`
	Contact    *ContactSection   `json:"contact,omitempty"`
}

// IsEmpty reports whether no known section key was present.
func (p PartialSections) IsEmpty() bool {
	return p.Hero == nil && p.About == nil && p.Experience == nil &&
		p.Projects == nil && p.Skills == nil && p.Education == nil && p.Contact == nil
}

var ErrNoSections = errors.New("payload contains no known portfolio sections")

// ParsePartial decodes a generated payload into PartialSections. The payload
// must be a JSON object and carry at least one known section key; anything
// else is a contract violation, never silently defaulted.
func ParsePartial(raw []byte) (PartialSections, error) {
	var partial PartialSections
	if err := json.Unmarshal(raw, &partial); err != nil {
		return PartialSections{}, err
	}
	if partial.IsEmpty() {
		return PartialSections{}, ErrNoSections
	}
	return partial, nil
}

// MergeGenerated applies generated content onto the current document with
// last-write-wins semantics at whole-section granularity. Sections absent
// from the payload are returned unchanged, so a half-formed list can never
// corrupt an untouched section.
func MergeGenerated(current Sections, generated PartialSections) Sections {
	merged := current
	if generated.Hero != nil {
		merged.Hero = *generated.Hero
	}
	if generated.About != nil {
		merged.About = *generated.About
	}
	if generated.Experience != nil {
		items := append([]ExperienceItem(nil), *generated.Experience...)
		seen := make(map[string]struct{}, len(items))
		for i := range items {
			items[i].ID = uniqueItemID(items[i].ID, i, seen)
		}
		merged.Experience = items
	}
	if generated.Projects != nil {
		items := append([]ProjectItem(nil), *generated.Projects...)
		seen := make(map[string]struct{}, len(items))
		for i := range items {
			items[i].ID = uniqueItemID(items[i].ID, i, seen)
			if items[i].Technologies == nil {
				items[i].Technologies = []string{}
			}
		}
		merged.Projects = items
	}
	if generated.Skills != nil {
		merged.Skills = append([]string(nil), *generated.Skills...)
	}
	if generated.Education != nil {
		items := append([]EducationItem(nil), *generated.Education...)
		seen := make(map[string]struct{}, len(items))
		for i := range items {
			items[i].ID = uniqueItemID(items[i].ID, i, seen)
		}
		merged.Education = items
	}
	if generated.Contact != nil {
		merged.Contact = *generated.Contact
	}
	return merged
}

// uniqueItemID keeps an incoming id when it is non-empty and unused within
// its list; otherwise it derives one from the item's ordinal. Models
// routinely return "1", "1" for sibling entries. The rewrite is
// deterministic so that merging the same payload twice yields the same
// document.
func uniqueItemID(id string, ordinal int, seen map[string]struct{}) string {
	if id == "" {
		id = strconv.Itoa(ordinal + 1)
	}
	for {
		if _, dup := seen[id]; !dup {
			break
		}
		id = id + "-" + strconv.Itoa(ordinal+1)
	}
	seen[id] = struct{}{}
	return id
}

func NewExperienceItem() ExperienceItem {
	return ExperienceItem{ID: uuid.NewString()}
}

func NewProjectItem() ProjectItem {
	return ProjectItem{ID: uuid.NewString(), Technologies: []string{}}
}

func NewEducationItem() EducationItem {
	return EducationItem{ID: uuid.NewString()}
}
