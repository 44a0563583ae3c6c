package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-extract/internal/config"
	"resume-extract/pkg/utils"
)

func testEngine() *Engine {
	cfg := &config.Config{}
	cfg.Extractor.PDFTolerance = 3
	cfg.Extractor.OCREnabled = true
	cfg.Extractor.OCRLanguage = "eng"
	return NewEngine(cfg)
}

func stub(name, text string, err error) strategy {
	return strategy{
		name: name,
		run: func(ctx context.Context, data []byte) (string, error) {
			return text, err
		},
	}
}

func TestExtractPlainText(t *testing.T) {
	e := testEngine()
	text, err := e.Extract(context.Background(), []byte("plain resume text"), ".txt")
	require.NoError(t, err)
	assert.Equal(t, "plain resume text", text)
}

func TestExtractPlainTextReplacesInvalidUTF8(t *testing.T) {
	e := testEngine()
	text, err := e.Extract(context.Background(), []byte{'o', 'k', 0xff, '!'}, ".txt")
	require.NoError(t, err)
	assert.Equal(t, "ok�!", text)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := testEngine()
	_, err := e.Extract(context.Background(), []byte("data"), ".odt")
	require.Error(t, err)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "Unsupported file format", customErr.Message)
}

func TestExtractExtensionCaseInsensitive(t *testing.T) {
	e := testEngine()
	text, err := e.Extract(context.Background(), []byte("upper"), ".TXT")
	require.NoError(t, err)
	assert.Equal(t, "upper", text)
}

func TestCascadeFirstSuccessWins(t *testing.T) {
	e := testEngine()
	strategies := []strategy{
		stub("first", "from first", nil),
		stub("second", "from second", nil),
	}

	text, err := e.runCascade(context.Background(), nil, strategies)
	require.NoError(t, err)
	assert.Equal(t, "from first", text)
}

func TestCascadeSkipsFailuresAndBlankResults(t *testing.T) {
	e := testEngine()
	strategies := []strategy{
		stub("broken", "", errors.New("cannot read file")),
		stub("blank", "   \n  ", nil),
		stub("working", "recovered text", nil),
	}

	text, err := e.runCascade(context.Background(), nil, strategies)
	require.NoError(t, err)
	assert.Equal(t, "recovered text", text)
}

func TestScannedPDFExhaustedReturnsEmptyText(t *testing.T) {
	e := testEngine()
	e.pdf = []strategy{
		stub("pdf_layout", "", errors.New("no text layer")),
		stub("pdf_render", "", nil),
		stub("pdf_ocr", "   ", nil),
	}

	text, err := e.Extract(context.Background(), []byte("%PDF"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestDocxExhaustedReportsExtractionError(t *testing.T) {
	e := testEngine()
	e.docx = []strategy{
		stub("docx_structured", "", errors.New("bad header")),
		stub("docx_converter", "", nil),
	}

	_, err := e.Extract(context.Background(), []byte("PK"), ".docx")
	require.Error(t, err)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "Document extraction failed", customErr.Message)
	assert.Contains(t, customErr.Detail, "bad header")
}

func TestCascadeStopsOnCanceledContext(t *testing.T) {
	e := testEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.runCascade(ctx, nil, []strategy{stub("never", "text", nil)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFCascadeIncludesOCRWhenEnabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Extractor.OCREnabled = true
	withOCR := NewEngine(cfg)
	require.Len(t, withOCR.pdf, 3)
	assert.Equal(t, "pdf_ocr", withOCR.pdf[2].name)

	cfg2 := &config.Config{}
	cfg2.Extractor.OCREnabled = false
	withoutOCR := NewEngine(cfg2)
	assert.Len(t, withoutOCR.pdf, 2)
}
