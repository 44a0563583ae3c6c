package extractor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestExtractPDFFixture(t *testing.T) {
	e := testEngine()
	text, err := e.Extract(context.Background(), readFixture(t, "sample.pdf"), ".pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Software Engineer")
}

func TestExtractDocxFixture(t *testing.T) {
	e := testEngine()
	text, err := e.Extract(context.Background(), readFixture(t, "sample.docx"), ".docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Software Engineer")
}

func TestLayoutStageReadsPDFFixture(t *testing.T) {
	e := testEngine()
	text, err := e.extractPDFLayout(context.Background(), readFixture(t, "sample.pdf"))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
}

func TestRenderStageReadsPDFFixture(t *testing.T) {
	text, err := extractPDFRender(context.Background(), readFixture(t, "sample.pdf"))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
}

func TestStructuredStageReadsDocxFixture(t *testing.T) {
	text, err := extractDocxStructured(context.Background(), readFixture(t, "sample.docx"))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Go | Python")
}

func TestOCRStageReadsRasterizedPage(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed")
	}

	e := testEngine()
	text, err := e.extractPDFOCR(context.Background(), readFixture(t, "sample.pdf"))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane")
}
