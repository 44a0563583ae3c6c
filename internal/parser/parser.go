package parser

import (
	"regexp"
	"strings"

	"resume-extract/internal/logging"
	"resume-extract/pkg/models"
)

// contactPattern pulls labeled contact fields out of the resume header.
// Location captures up to a dash or end of line so trailing metadata on the
// same line does not leak in.
var contactPattern = regexp.MustCompile(`Phone:\s*(\d+)|Email:\s*([\w.\-]+@[\w.\-]+)|Location:\s*([^—\n]+)`)

// RuleParser builds structured resume data from normalized text using layout
// heuristics alone. It is deterministic and needs no network access, which
// makes it the fallback when AI extraction is unavailable or keeps failing.
type RuleParser struct{}

func NewRuleParser() *RuleParser {
	return &RuleParser{}
}

// Parse converts normalized resume text into structured resume data. It never
// fails: unrecognized content simply yields emptier output.
func (p *RuleParser) Parse(text string) *models.ResumeData {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	personalInfo := extractPersonalInfo(lines)
	sections := buildSections(splitIntoSections(lines))

	resume := &models.ResumeData{
		TargetJobTitle: models.DeriveTargetJobTitle(personalInfo.JobTitle),
		PersonalInfo:   personalInfo,
		Sections:       sections,
	}
	resume.ApplyDefaults()

	logging.GetGlobalLogger().Debug("Rule-based parse complete", map[string]interface{}{
		"sections": len(resume.Sections),
		"has_name": resume.PersonalInfo.FullName != "",
	})

	return resume
}

// extractPersonalInfo reads the contact block from the top of the resume.
func extractPersonalInfo(lines []string) models.PersonalInfo {
	info := models.PersonalInfo{}

	// The name is the first non-empty line that is not a section header.
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !isSectionHeader(line) {
			info.FullName = line
			break
		}
	}

	// Job title and contact details live in the first ten lines.
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)

		if line != "" && info.JobTitle == "" &&
			line != info.FullName &&
			!contactPattern.MatchString(line) &&
			!isSectionHeader(line) &&
			len(strings.Fields(line)) <= 4 {
			info.JobTitle = line
		}

		for _, match := range contactPattern.FindAllStringSubmatch(line, -1) {
			if match[1] != "" {
				info.Phone = match[1]
			}
			if match[2] != "" {
				info.Email = match[2]
			}
			if match[3] != "" {
				info.Location = strings.TrimSpace(match[3])
			}
		}
	}

	info.Summary = extractSummary(lines)
	return info
}

// extractSummary collects the text under a summary-style header up to the
// next section header.
func extractSummary(lines []string) string {
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if !containsAny(lower, summaryKeywords) {
			continue
		}

		var summaryLines []string
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if isSectionHeader(next) {
				break
			}
			if next != "" {
				summaryLines = append(summaryLines, next)
			}
		}
		return strings.Join(summaryLines, " ")
	}
	return ""
}

// buildSections converts raw header-grouped line blocks into typed sections.
// Headers that map to no known type (summary blocks etc.) are skipped.
func buildSections(raw []rawSection) []models.Section {
	sections := []models.Section{}

	for _, rs := range raw {
		sectionType, ok := sectionTypeFor(rs.name)
		if !ok {
			continue
		}

		section := models.NewSection(sectionType, titleCase(rs.name))
		switch sectionType {
		case models.SectionExperience:
			section.Experience = parseExperienceItems(rs.lines)
		case models.SectionProjects:
			section.Projects = parseProjectItems(rs.lines)
		case models.SectionEducation:
			section.Education = parseEducationItems(rs.lines)
		case models.SectionSkills:
			section.Skills, section.Groups = parseSkillsItems(rs.lines)
		}
		sections = append(sections, section)
	}

	models.SortSections(sections)
	return sections
}
