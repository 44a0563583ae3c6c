package processors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-extract/pkg/models"
)

func TestNormalizeLineEndings(t *testing.T) {
	n := NewTextNormalizer()
	out := n.Normalize("line one\r\nline two\rline three")
	assert.Equal(t, "line one\nline two\nline three", out)
	assert.NotContains(t, out, "\r")
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	n := NewTextNormalizer()
	out := n.Normalize("alpha\n\n\n\n\nbeta")
	assert.Equal(t, "alpha\n\nbeta", out)
	assert.NotContains(t, out, "\n\n\n")
}

func TestNormalizeBullets(t *testing.T) {
	n := NewTextNormalizer()
	out := n.Normalize("• first\n* second")
	assert.Equal(t, "- first\n- second", out)
}

func TestNormalizeMisdecodedBullets(t *testing.T) {
	n := NewTextNormalizer()
	out := n.Normalize("â€¢ shipped feature")
	assert.Equal(t, "- shipped feature", out)
}

func TestNormalizeHeaderColons(t *testing.T) {
	n := NewTextNormalizer()
	assert.Equal(t, "SKILLS: Python", n.Normalize("SKILLS:Python"))
	assert.Equal(t, "SKILLS: Python", n.Normalize("SKILLS: Python"))
}

func TestNormalizeCapsHeaders(t *testing.T) {
	n := NewTextNormalizer()
	out := n.Normalize("intro text\nEDUCATION\ninstitute one")
	assert.Equal(t, "intro text\n\nEDUCATION\n\ninstitute one", out)
}

func TestNormalizeTrims(t *testing.T) {
	n := NewTextNormalizer()
	out := n.Normalize("   padded line   \n  another  \n")
	assert.Equal(t, "padded line\nanother", out)
}

func TestNormalizeEmpty(t *testing.T) {
	n := NewTextNormalizer()
	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("   \n\n   "))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"line one\r\nline two\rline three",
		"alpha\n\n\n\n\nbeta",
		"• first\n* second",
		"â€¢ mangled bullet",
		"SKILLS:Python",
		"intro text\nEDUCATION\ninstitute one",
		"John Doe\r\n\r\n\r\nSKILLS:Go\n• built things\nWORK HISTORY\nAcme Corp",
	}

	n := NewTextNormalizer()
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewComplexityClassifier()
	text := "kubernetes docker aws " + strings.Repeat("word ", 500)
	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
}

func TestClassifySimple(t *testing.T) {
	c := NewComplexityClassifier()
	assert.Equal(t, models.ComplexitySimple, c.Classify("short resume text"))
	assert.Equal(t, models.ComplexitySimple, c.Classify(""))
}

func TestClassifyComplex(t *testing.T) {
	c := NewComplexityClassifier()

	// Six distinct technical keywords (score 2) plus table density (score 2)
	text := "kubernetes docker aws microservices distributed devops\n" +
		strings.Repeat("| col | col | col |\n", 5)
	assert.Equal(t, models.ComplexityComplex, c.Classify(text))
}

func TestClassifyKeywordsAloneInsufficient(t *testing.T) {
	c := NewComplexityClassifier()
	text := "kubernetes docker aws microservices distributed devops"
	assert.Equal(t, models.ComplexitySimple, c.Classify(text))
}
