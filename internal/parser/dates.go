package parser

import (
	"regexp"
	"strings"
)

var (
	// Matches "May 2024" style month-year tokens.
	dateRangePattern = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{4})`)

	// Matches any month name or 4-digit year, used to spot lines that carry
	// date information at all.
	dateTokenPattern = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|\d{4})`)
)

// ParseDateRange extracts a start/end date pair from free-form text. The
// first "MonthName YYYY" occurrence is the start date, the second the end
// date. A single date followed by "present" yields the literal end date
// "Present". Text without month/year tokens yields (nil, nil).
func ParseDateRange(text string) (start, end *string) {
	dates := dateRangePattern.FindAllStringSubmatch(text, -1)

	if len(dates) >= 1 {
		s := dates[0][1] + " " + dates[0][2]
		start = &s
	}
	if len(dates) >= 2 {
		e := dates[1][1] + " " + dates[1][2]
		end = &e
	} else if len(dates) == 1 && containsPresent(text) {
		e := "Present"
		end = &e
	}

	return start, end
}

func containsPresent(text string) bool {
	return strings.Contains(strings.ToLower(text), "present")
}

func hasDateToken(line string) bool {
	return dateTokenPattern.MatchString(line)
}
