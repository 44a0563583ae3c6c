package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ComplexityLabel classifies how hard a resume is to parse. It only steers
// which model tier handles structured extraction, it never blocks a request.
type ComplexityLabel string

const (
	ComplexitySimple  ComplexityLabel = "simple"
	ComplexityComplex ComplexityLabel = "complex"
)

// SectionType identifies which item shape a resume section carries.
type SectionType string

const (
	SectionExperience SectionType = "experience"
	SectionProjects   SectionType = "projects"
	SectionEducation  SectionType = "education"
	SectionSkills     SectionType = "skills"
)

// sectionPriorities is the fixed display order for recognized section types.
var sectionPriorities = map[SectionType]int{
	SectionExperience: 0,
	SectionProjects:   1,
	SectionEducation:  2,
	SectionSkills:     3,
}

// Priority returns the fixed order for a section type and whether the type is
// one of the four recognized ones.
func (t SectionType) Priority() (int, bool) {
	p, ok := sectionPriorities[t]
	return p, ok
}

// PersonalInfo is the contact block at the top of a structured resume.
type PersonalInfo struct {
	FullName       string  `json:"fullName"`
	JobTitle       string  `json:"jobTitle"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Location       string  `json:"location"`
	Summary        string  `json:"summary"`
	ProfilePicture *string `json:"profilePicture"`
}

// BulletList is an ordered list of discrete description bullets. AI providers
// occasionally return a single joined blob instead of a list, so unmarshaling
// accepts both shapes and splits blobs on line breaks.
type BulletList []string

func (b *BulletList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*b = list
		return nil
	}

	var blob string
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("description must be a string or a list of strings")
	}

	var bullets []string
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	*b = bullets
	return nil
}

// ExperienceItem is a single work experience entry.
type ExperienceItem struct {
	JobTitle        string     `json:"jobTitle"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	StartDate       *string    `json:"startDate"`
	EndDate         *string    `json:"endDate"`
	CurrentPosition bool       `json:"currentPosition"`
	Description     BulletList `json:"description"`
}

// ProjectItem is a single project entry.
type ProjectItem struct {
	Name         string     `json:"name"`
	Description  BulletList `json:"description"`
	Technologies []string   `json:"technologies"`
	StartDate    *string    `json:"startDate"`
	EndDate      *string    `json:"endDate"`
	Ongoing      bool       `json:"ongoing"`
	URL          string     `json:"url"`
}

// EducationItem is a single education entry.
type EducationItem struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	Location    string     `json:"location"`
	StartDate   *string    `json:"startDate"`
	EndDate     *string    `json:"endDate"`
	Current     bool       `json:"current"`
	GPA         string     `json:"gpa"`
	Description BulletList `json:"description"`
}

// SkillItem is a single flat skill entry.
type SkillItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

// SkillGroup maps a category name to its member skills.
type SkillGroup struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// SectionState carries view state for the skills section. Other section types
// keep it empty but present.
type SectionState struct {
	CategoryOrder []string `json:"categoryOrder"`
	ViewMode      string   `json:"viewMode,omitempty"`
}

// Section is a typed, ordered block of a structured resume. Exactly one of
// the typed item slices is populated, selected by Type; the others stay nil
// and are hidden from JSON. The wire shape keeps a single "items" array whose
// element shape depends on the section type.
type Section struct {
	ID     string      `json:"id"`
	Type   SectionType `json:"type"`
	Title  string      `json:"title"`
	Order  int         `json:"order"`
	Hidden bool        `json:"hidden"`
	Format string      `json:"format,omitempty"`

	Experience []ExperienceItem `json:"-"`
	Projects   []ProjectItem    `json:"-"`
	Education  []EducationItem  `json:"-"`
	Skills     []SkillItem      `json:"-"`

	Groups []SkillGroup `json:"groups"`
	State  SectionState `json:"state"`
}

// NewSection builds a section of the given type with its fixed order and all
// collections initialized. Skills sections get the grouped format and
// categorized view state the client expects.
func NewSection(sectionType SectionType, title string) Section {
	order, _ := sectionType.Priority()
	s := Section{
		ID:     fmt.Sprintf("%s-1", sectionType),
		Type:   sectionType,
		Title:  title,
		Order:  order,
		Groups: []SkillGroup{},
		State:  SectionState{CategoryOrder: []string{}},
	}
	if sectionType == SectionSkills {
		s.Format = "grouped"
		s.State.ViewMode = "categorized"
	}
	s.EnsureCollections()
	return s
}

// EnsureCollections replaces nil collections with empty ones, down to the
// per-item description/technology lists. Sections are always serialized with
// every collection present.
func (s *Section) EnsureCollections() {
	switch s.Type {
	case SectionExperience:
		if s.Experience == nil {
			s.Experience = []ExperienceItem{}
		}
		for i := range s.Experience {
			if s.Experience[i].Description == nil {
				s.Experience[i].Description = BulletList{}
			}
		}
	case SectionProjects:
		if s.Projects == nil {
			s.Projects = []ProjectItem{}
		}
		for i := range s.Projects {
			if s.Projects[i].Description == nil {
				s.Projects[i].Description = BulletList{}
			}
			if s.Projects[i].Technologies == nil {
				s.Projects[i].Technologies = []string{}
			}
		}
	case SectionEducation:
		if s.Education == nil {
			s.Education = []EducationItem{}
		}
		for i := range s.Education {
			if s.Education[i].Description == nil {
				s.Education[i].Description = BulletList{}
			}
		}
	case SectionSkills:
		if s.Skills == nil {
			s.Skills = []SkillItem{}
		}
	}
	if s.Groups == nil {
		s.Groups = []SkillGroup{}
	}
	for i := range s.Groups {
		if s.Groups[i].Skills == nil {
			s.Groups[i].Skills = []string{}
		}
	}
	if s.State.CategoryOrder == nil {
		s.State.CategoryOrder = []string{}
	}
}

// ItemCount returns how many items the section's active slice holds.
func (s *Section) ItemCount() int {
	switch s.Type {
	case SectionExperience:
		return len(s.Experience)
	case SectionProjects:
		return len(s.Projects)
	case SectionEducation:
		return len(s.Education)
	case SectionSkills:
		return len(s.Skills)
	}
	return 0
}

// MarshalJSON writes the typed item slice into a single "items" field.
func (s Section) MarshalJSON() ([]byte, error) {
	s.EnsureCollections()

	type alias Section
	var items interface{}
	switch s.Type {
	case SectionExperience:
		items = s.Experience
	case SectionProjects:
		items = s.Projects
	case SectionEducation:
		items = s.Education
	case SectionSkills:
		items = s.Skills
	default:
		items = []struct{}{}
	}

	return json.Marshal(struct {
		alias
		Items interface{} `json:"items"`
	}{alias(s), items})
}

// UnmarshalJSON decodes the generic "items" array into the slice matching the
// section type. Unknown types keep an empty item set rather than failing.
func (s *Section) UnmarshalJSON(data []byte) error {
	type alias Section
	aux := struct {
		*alias
		Items json.RawMessage `json:"items"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Items) > 0 && string(aux.Items) != "null" {
		var err error
		switch s.Type {
		case SectionExperience:
			err = json.Unmarshal(aux.Items, &s.Experience)
		case SectionProjects:
			err = json.Unmarshal(aux.Items, &s.Projects)
		case SectionEducation:
			err = json.Unmarshal(aux.Items, &s.Education)
		case SectionSkills:
			err = json.Unmarshal(aux.Items, &s.Skills)
		}
		if err != nil {
			return fmt.Errorf("failed to decode %s items: %w", s.Type, err)
		}
	}

	s.EnsureCollections()
	return nil
}

// ResumeData is the canonical structured resume record.
type ResumeData struct {
	ID                   *string      `json:"id"`
	TargetJobTitle       string       `json:"targetJobTitle"`
	TargetJobDescription string       `json:"targetJobDescription"`
	PersonalInfo         PersonalInfo `json:"personalInfo"`
	Sections             []Section    `json:"sections"`
}

// ApplyDefaults fills any missing required shape so the record never leaves
// the pipeline with absent collections, and re-sorts sections ascending by
// their fixed order.
func (r *ResumeData) ApplyDefaults() {
	if r.Sections == nil {
		r.Sections = []Section{}
	}
	for i := range r.Sections {
		r.Sections[i].EnsureCollections()
	}
	SortSections(r.Sections)

	if r.TargetJobTitle == "" {
		r.TargetJobTitle = DeriveTargetJobTitle(r.PersonalInfo.JobTitle)
	}
}

// SortSections orders sections ascending by their order field, stable so
// unrecognized types keep their relative input order.
func SortSections(sections []Section) {
	for i := 1; i < len(sections); i++ {
		for j := i; j > 0 && sections[j].Order < sections[j-1].Order; j-- {
			sections[j], sections[j-1] = sections[j-1], sections[j]
		}
	}
}

// DeriveTargetJobTitle lowercases a job title and rewrites "engineer" roles
// as "developer" for downstream job matching.
func DeriveTargetJobTitle(jobTitle string) string {
	return strings.ReplaceAll(strings.ToLower(jobTitle), "engineer", "developer")
}
