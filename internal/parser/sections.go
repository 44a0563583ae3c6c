package parser

import (
	"strings"
	"unicode"

	"resume-extract/pkg/models"
)

// sectionMapping associates a header keyword with the section type it
// introduces. Order matters: the first keyword contained in a header line
// wins, so longer synonyms come before their substrings.
type sectionMapping struct {
	keyword string
	typ     models.SectionType
}

var sectionMappings = []sectionMapping{
	{"work experience", models.SectionExperience},
	{"professional experience", models.SectionExperience},
	{"employment", models.SectionExperience},
	{"experience", models.SectionExperience},
	{"projects", models.SectionProjects},
	{"academic background", models.SectionEducation},
	{"education", models.SectionEducation},
	{"technical skills", models.SectionSkills},
	{"core competencies", models.SectionSkills},
	{"skills", models.SectionSkills},
}

// headerKeywords marks a line as a section header for sectioning and for
// terminating the summary scan. Includes the summary headers themselves.
var headerKeywords = []string{
	"work experience", "experience", "employment", "professional experience",
	"projects", "education", "academic background", "skills",
	"technical skills", "core competencies", "professional summary",
	"summary", "profile", "objective",
}

var summaryKeywords = []string{"professional summary", "summary", "profile", "objective"}

// isSectionHeader reports whether a line reads like a section header.
func isSectionHeader(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, keyword := range headerKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// sectionTypeFor maps a raw header line to a section type. The bool result
// is false for headers that are recognized (summary etc.) but carry no
// typed section.
func sectionTypeFor(header string) (models.SectionType, bool) {
	lower := strings.ToLower(header)
	for _, m := range sectionMappings {
		if strings.Contains(lower, m.keyword) {
			return m.typ, true
		}
	}
	return "", false
}

// rawSection is a header line plus the lines grouped under it.
type rawSection struct {
	name  string
	lines []string
}

// splitIntoSections groups lines under the preceding header line. Headers
// with no following lines are dropped; a repeated header replaces the
// earlier occurrence.
func splitIntoSections(lines []string) []rawSection {
	var ordered []rawSection
	index := make(map[string]int)

	var currentName string
	var currentLines []string

	flush := func() {
		if currentName == "" || len(currentLines) == 0 {
			return
		}
		if i, seen := index[currentName]; seen {
			ordered[i].lines = currentLines
		} else {
			index[currentName] = len(ordered)
			ordered = append(ordered, rawSection{name: currentName, lines: currentLines})
		}
	}

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if isSectionHeader(stripped) {
			flush()
			currentName = strings.ToLower(stripped)
			currentLines = nil
		} else if currentName != "" && stripped != "" {
			currentLines = append(currentLines, line)
		}
	}
	flush()

	return ordered
}

// titleCase upper-cases the first letter of every word, mirroring how
// section keys are turned back into display titles.
func titleCase(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
