package processors

import (
	"strings"

	"resume-extract/pkg/models"
)

// technicalKeywords is the fixed vocabulary whose density pushes a resume
// toward the higher-capacity model tier.
var technicalKeywords = []string{
	"algorithm", "framework", "architecture", "infrastructure",
	"kubernetes", "docker", "aws", "azure", "cloud", "devops",
	"backend", "frontend", "fullstack", "machine learning", "ai",
	"microservices", "distributed", "scalable", "optimization",
}

// ComplexityClassifier scores resume text to pick an extraction model tier.
// The label never blocks extraction, it only steers model selection.
type ComplexityClassifier struct{}

// NewComplexityClassifier creates a new complexity classifier instance
func NewComplexityClassifier() *ComplexityClassifier {
	return &ComplexityClassifier{}
}

// Classify labels text as simple or complex. The score adds 1 for more than
// 1000 tokens, 2 for table-like pipe density, and 2 for more than 5 distinct
// technical keyword hits; 3 or more is complex.
func (c *ComplexityClassifier) Classify(text string) models.ComplexityLabel {
	score := 0

	if len(strings.Fields(text)) > 1000 {
		score++
	}

	if strings.Count(text, "|") > 10 {
		score += 2
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, keyword := range technicalKeywords {
		if strings.Contains(lower, keyword) {
			hits++
		}
	}
	if hits > 5 {
		score += 2
	}

	if score >= 3 {
		return models.ComplexityComplex
	}
	return models.ComplexitySimple
}
