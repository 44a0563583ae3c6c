package processors

import (
	"regexp"
	"strings"
)

// TextNormalizer cleans raw extracted resume text into a parser-friendly
// form. Every rewrite is deterministic and normalization is idempotent:
// running it on already-normalized text changes nothing.
type TextNormalizer struct {
	lineBreaks   *regexp.Regexp
	blankRuns    *regexp.Regexp
	bullets      *regexp.Regexp
	headerColons *regexp.Regexp
	capsHeaders  *regexp.Regexp
}

// NewTextNormalizer creates a new text normalizer instance
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		lineBreaks: regexp.MustCompile(`\r\n|\r`),
		blankRuns:  regexp.MustCompile(`\n\s*\n\s*\n+`),
		// Bullet glyphs and the mis-decoded byte sequence PDF extraction
		// sometimes produces for them.
		bullets: regexp.MustCompile(`(?:â€¢|[\x{2022}\x{2023}\x{25E6}*])\s*`),
		// A colon glued to text after an all-caps header token.
		headerColons: regexp.MustCompile(`([A-Z][A-Z\s]+):(\S)`),
		// A short all-caps line not already surrounded by blank lines.
		capsHeaders: regexp.MustCompile(`([^\n])\n([A-Z][A-Z\s]{2,})\n([^\n])`),
	}
}

// Normalize rewrites text in six ordered steps: canonical line endings,
// collapsed blank runs, dash bullets, spaced header colons, blank lines
// around all-caps headers, and per-line plus whole-text trimming.
func (n *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = n.lineBreaks.ReplaceAllString(text, "\n")
	text = n.blankRuns.ReplaceAllString(text, "\n\n")
	text = n.bullets.ReplaceAllString(text, "- ")
	text = n.headerColons.ReplaceAllString(text, "$1: $2")
	text = n.capsHeaders.ReplaceAllString(text, "$1\n\n$2\n\n$3")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
