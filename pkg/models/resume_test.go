package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCollectionsFillsNestedItemFields(t *testing.T) {
	section := NewSection(SectionProjects, "Projects")
	section.Projects = []ProjectItem{{Name: "side project"}}
	section.Groups = []SkillGroup{{Name: "Languages"}}

	section.EnsureCollections()

	require.Len(t, section.Projects, 1)
	assert.NotNil(t, section.Projects[0].Description)
	assert.NotNil(t, section.Projects[0].Technologies)
	assert.NotNil(t, section.Groups[0].Skills)

	value, err := json.Marshal(section)
	require.NoError(t, err)
	assert.Contains(t, string(value), `"technologies":[]`)
	assert.NotContains(t, string(value), `null}`)
}

func TestApplyDefaultsFillsEducationDescriptions(t *testing.T) {
	section := NewSection(SectionEducation, "Education")
	section.Education = []EducationItem{{Degree: "BSc", Institution: "State University"}}
	resume := &ResumeData{Sections: []Section{section}}

	resume.ApplyDefaults()

	require.Len(t, resume.Sections[0].Education, 1)
	assert.NotNil(t, resume.Sections[0].Education[0].Description)

	value, err := json.Marshal(resume)
	require.NoError(t, err)
	assert.NotContains(t, string(value), `"description":null`)
}
