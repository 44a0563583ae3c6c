package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-extract/pkg/models"
)

const sampleResume = `Puneet

software engineer

Phone: 4747474747 Email: admin@jobstack.ai — Location: location

Professional Summary

Accomplished software engineer with a passion for developing innovative solutions to complex
problems. Expertise in cloud-native applications and distributed systems.

Work Experience

Senior Engineer — May 2024 — May 2026

company

location

Led a cross-functional team of 8 members in developing a new customer
relationship management system.

Projects

netflix clone [View Project] May 2024 — Present
Technologies: React, JavaScript, Redux, Next.js

Spearheaded the optimization of internal workflows through process automation.

Education

May 2024 — May 2027
Bachelor's of engineering

institute one

GPA: 7.8

Skills

Programming Languages: JavaScript, Python, Java, Go
Backend Technologies: Flask, Django, Express`

func TestParsePersonalInfo(t *testing.T) {
	resume := NewRuleParser().Parse(sampleResume)

	assert.Equal(t, "Puneet", resume.PersonalInfo.FullName)
	assert.Equal(t, "software engineer", resume.PersonalInfo.JobTitle)
	assert.Equal(t, "4747474747", resume.PersonalInfo.Phone)
	assert.Equal(t, "admin@jobstack.ai", resume.PersonalInfo.Email)
	assert.Equal(t, "location", resume.PersonalInfo.Location)
	assert.Contains(t, resume.PersonalInfo.Summary, "Accomplished software engineer")
	assert.Equal(t, "software developer", resume.TargetJobTitle)
}

func TestParseSectionsOrdered(t *testing.T) {
	resume := NewRuleParser().Parse(sampleResume)

	require.Len(t, resume.Sections, 4)
	assert.Equal(t, models.SectionExperience, resume.Sections[0].Type)
	assert.Equal(t, models.SectionProjects, resume.Sections[1].Type)
	assert.Equal(t, models.SectionEducation, resume.Sections[2].Type)
	assert.Equal(t, models.SectionSkills, resume.Sections[3].Type)

	for i, section := range resume.Sections {
		assert.Equal(t, i, section.Order)
		assert.False(t, section.Hidden)
		assert.NotEmpty(t, section.ID)
	}
}

func TestParseExperienceSection(t *testing.T) {
	resume := NewRuleParser().Parse(sampleResume)

	experience := resume.Sections[0].Experience
	require.Len(t, experience, 1)

	item := experience[0]
	assert.Equal(t, "Senior Engineer", item.JobTitle)
	require.NotNil(t, item.StartDate)
	require.NotNil(t, item.EndDate)
	assert.Equal(t, "May 2024", *item.StartDate)
	assert.Equal(t, "May 2026", *item.EndDate)
	assert.False(t, item.CurrentPosition)
	assert.Equal(t, "company", item.Company)
	assert.Equal(t, "location", item.Location)
	assert.NotEmpty(t, item.Description)
}

func TestParseProjectsSection(t *testing.T) {
	resume := NewRuleParser().Parse(sampleResume)

	projects := resume.Sections[1].Projects
	require.Len(t, projects, 1)

	project := projects[0]
	assert.Equal(t, "netflix clone", project.Name)
	require.NotNil(t, project.EndDate)
	assert.Equal(t, "Present", *project.EndDate)
	assert.True(t, project.Ongoing)
	assert.Equal(t, []string{"React", "JavaScript", "Redux", "Next.js"}, project.Technologies)
	require.Len(t, project.Description, 1)
	assert.Contains(t, project.Description[0], "Spearheaded")
}

func TestParseEducationSection(t *testing.T) {
	resume := NewRuleParser().Parse(sampleResume)

	education := resume.Sections[2].Education
	require.Len(t, education, 1)

	item := education[0]
	assert.Equal(t, "Bachelor's of engineering", item.Degree)
	assert.Equal(t, "institute one", item.Institution)
	assert.Equal(t, "7.8", item.GPA)
	require.NotNil(t, item.StartDate)
	assert.Equal(t, "May 2024", *item.StartDate)
	require.NotNil(t, item.EndDate)
	assert.Equal(t, "May 2027", *item.EndDate)
	assert.False(t, item.Current)
}

func TestParseSkillsGrouped(t *testing.T) {
	resume := NewRuleParser().Parse(sampleResume)

	skills := resume.Sections[3]
	assert.Equal(t, "grouped", skills.Format)
	assert.Equal(t, "categorized", skills.State.ViewMode)

	require.Len(t, skills.Groups, 2)
	assert.Equal(t, "Programming Languages", skills.Groups[0].Name)
	assert.Equal(t, []string{"JavaScript", "Python", "Java", "Go"}, skills.Groups[0].Skills)
	assert.Equal(t, "Backend Technologies", skills.Groups[1].Name)

	require.Len(t, skills.Skills, 7)
	assert.Equal(t, "JavaScript", skills.Skills[0].Name)
	assert.Equal(t, "Programming Languages", skills.Skills[0].Category)
	assert.Empty(t, skills.Skills[0].Level)
}

func TestParseEmptyText(t *testing.T) {
	resume := NewRuleParser().Parse("")

	require.NotNil(t, resume)
	assert.Empty(t, resume.PersonalInfo.FullName)
	assert.Empty(t, resume.Sections)
	assert.NotNil(t, resume.Sections)
}

func TestParseDeterministic(t *testing.T) {
	first := NewRuleParser().Parse(sampleResume)
	second := NewRuleParser().Parse(sampleResume)
	assert.Equal(t, first, second)
}

func TestSectionsSortedRegardlessOfInputOrder(t *testing.T) {
	text := `Jane Doe

Skills

Languages: Go, Rust

Education

institute

Work Experience

Engineer — Jan 2020 - Dec 2021
Acme`

	resume := NewRuleParser().Parse(text)
	require.Len(t, resume.Sections, 3)
	assert.Equal(t, models.SectionExperience, resume.Sections[0].Type)
	assert.Equal(t, models.SectionEducation, resume.Sections[1].Type)
	assert.Equal(t, models.SectionSkills, resume.Sections[2].Type)
}

func TestDuplicateHeaderReplacesEarlier(t *testing.T) {
	text := `Jane Doe

Skills

Languages: Go

Skills

Languages: Rust, Python`

	resume := NewRuleParser().Parse(text)
	require.Len(t, resume.Sections, 1)
	require.Len(t, resume.Sections[0].Groups, 1)
	assert.Equal(t, []string{"Rust", "Python"}, resume.Sections[0].Groups[0].Skills)
}

func TestHeaderWithoutContentDropped(t *testing.T) {
	text := `Jane Doe

Projects

Education`

	resume := NewRuleParser().Parse(text)
	require.Len(t, resume.Sections, 1)
	assert.Equal(t, models.SectionEducation, resume.Sections[0].Type)
}

func TestHeaderWithoutContentDroppedAtEnd(t *testing.T) {
	text := `Jane Doe

Education

institute

Projects`

	resume := NewRuleParser().Parse(text)
	require.Len(t, resume.Sections, 1)
	assert.Equal(t, models.SectionEducation, resume.Sections[0].Type)
}
