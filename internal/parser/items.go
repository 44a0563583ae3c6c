package parser

import (
	"regexp"
	"strings"

	"resume-extract/pkg/models"
)

var (
	titleDatePattern = regexp.MustCompile(`(.*?)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|\d{4})`)
	dashSplitPattern = regexp.MustCompile(`[—–-]`)
	gpaPattern       = regexp.MustCompile(`gpa:?\s*:?\s*(\d+\.?\d*)`)
	projectNameRe    = regexp.MustCompile(`^(.*?)\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|\d{4})`)
)

var degreeKeywords = []string{"bachelor", "master", "phd", "degree", "engineering"}

// asBullet strips a leading bullet marker so descriptions stay a list of
// discrete bullet strings.
func asBullet(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, "- "))
}

// experienceBuilder accumulates one work experience entry while scanning a
// section's lines. It is local to a single parsing pass.
type experienceBuilder struct {
	item models.ExperienceItem
}

func (b *experienceBuilder) consume(line string) {
	// A line carrying a month/year plus a dash or "present" is a
	// title+date line.
	if titleDatePattern.MatchString(line) &&
		(strings.ContainsAny(line, "—–-") || containsPresent(line)) {
		parts := dashSplitPattern.Split(line, -1)
		if len(parts) >= 2 {
			b.item.JobTitle = strings.TrimSpace(parts[0])
			b.item.StartDate, b.item.EndDate = ParseDateRange(line)
			b.item.CurrentPosition = containsPresent(line)
		}
		return
	}

	words := len(strings.Fields(line))
	switch {
	case b.item.JobTitle != "" && b.item.Company == "" && words <= 3:
		b.item.Company = line
	case b.item.Company != "" && b.item.Location == "" && words <= 3:
		b.item.Location = line
	default:
		b.item.Description = append(b.item.Description, asBullet(line))
	}
}

func (b *experienceBuilder) empty() bool {
	return b.item.JobTitle == "" && b.item.Company == "" && b.item.Location == "" &&
		b.item.StartDate == nil && b.item.EndDate == nil && len(b.item.Description) == 0
}

func parseExperienceItems(lines []string) []models.ExperienceItem {
	builder := &experienceBuilder{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		builder.consume(line)
	}

	if builder.empty() {
		return []models.ExperienceItem{}
	}
	if builder.item.Description == nil {
		builder.item.Description = models.BulletList{}
	}
	return []models.ExperienceItem{builder.item}
}

func parseProjectItems(lines []string) []models.ProjectItem {
	items := []models.ProjectItem{}
	var current *models.ProjectItem

	flush := func() {
		if current == nil {
			return
		}
		if current.Description == nil {
			current.Description = models.BulletList{}
		}
		if current.Technologies == nil {
			current.Technologies = []string{}
		}
		items = append(items, *current)
		current = nil
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case hasDateToken(line):
			// A dated line starts a new project
			flush()
			current = &models.ProjectItem{}

			current.StartDate, current.EndDate = ParseDateRange(line)
			current.Ongoing = current.EndDate != nil && *current.EndDate == "Present"

			// The name is whatever precedes both the link marker and the date.
			info := line
			if idx := strings.Index(line, "[View Project]"); idx >= 0 {
				info = strings.TrimSpace(line[:idx])
			}
			if m := projectNameRe.FindStringSubmatch(info); m != nil {
				current.Name = strings.TrimSpace(m[1])
			} else if !hasDateToken(info) {
				current.Name = info
			}

		case strings.HasPrefix(line, "Technologies:"):
			if current != nil {
				techs := strings.TrimSpace(strings.TrimPrefix(line, "Technologies:"))
				for _, tech := range strings.Split(techs, ",") {
					if tech = strings.TrimSpace(tech); tech != "" {
						current.Technologies = append(current.Technologies, tech)
					}
				}
			}

		default:
			if current != nil {
				current.Description = append(current.Description, asBullet(line))
			}
		}
	}

	flush()
	return items
}

// educationBuilder accumulates one education entry, filling institution then
// location for otherwise unrecognized lines.
type educationBuilder struct {
	item models.EducationItem
}

func (b *educationBuilder) consume(line string) {
	lower := strings.ToLower(line)

	switch {
	case hasDateToken(line):
		b.item.StartDate, b.item.EndDate = ParseDateRange(line)
		b.item.Current = b.item.EndDate != nil && *b.item.EndDate == "Present"
	case containsAny(lower, degreeKeywords):
		b.item.Degree = line
	case strings.Contains(lower, "gpa"):
		if m := gpaPattern.FindStringSubmatch(lower); m != nil {
			b.item.GPA = m[1]
		}
	case b.item.Institution == "":
		b.item.Institution = line
	case b.item.Location == "":
		b.item.Location = line
	default:
		b.item.Description = append(b.item.Description, asBullet(line))
	}
}

func (b *educationBuilder) empty() bool {
	return b.item.Degree == "" && b.item.Institution == "" && b.item.Location == "" &&
		b.item.GPA == "" && b.item.StartDate == nil && b.item.EndDate == nil &&
		len(b.item.Description) == 0
}

func parseEducationItems(lines []string) []models.EducationItem {
	builder := &educationBuilder{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		builder.consume(line)
	}

	if builder.empty() {
		return []models.EducationItem{}
	}
	if builder.item.Description == nil {
		builder.item.Description = models.BulletList{}
	}
	return []models.EducationItem{builder.item}
}

// parseSkillsItems turns "Category: a, b, c" lines into one group per
// category plus one flat item per skill.
func parseSkillsItems(lines []string) ([]models.SkillItem, []models.SkillGroup) {
	items := []models.SkillItem{}
	groups := []models.SkillGroup{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		category := strings.TrimSpace(parts[0])
		skillsText := strings.TrimSpace(parts[1])
		if skillsText == "" {
			continue
		}

		var skills []string
		for _, skill := range strings.Split(skillsText, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}
		if len(skills) == 0 {
			continue
		}

		groups = append(groups, models.SkillGroup{Name: category, Skills: skills})
		for _, skill := range skills {
			items = append(items, models.SkillItem{Name: skill, Category: category})
		}
	}

	return items, groups
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
