package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-extract/internal/config"
	"resume-extract/internal/logging"
	"resume-extract/pkg/utils"
)

// errCascadeExhausted marks a cascade where every strategy failed or produced
// blank text. The format dispatch decides whether that is an error: a scanned
// PDF with nothing recognizable legitimately yields no text, a DOCX that no
// reader can open does not.
var errCascadeExhausted = errors.New("all extraction strategies exhausted")

// Engine extracts plain text from uploaded documents. Each format carries an
// ordered cascade of strategies; the first one producing non-blank text wins.
type Engine struct {
	config *config.Config
	logger logging.Logger
	pdf    []strategy
	docx   []strategy
}

// NewEngine creates an extraction engine with the standard cascades: layout
// then render-library then OCR for PDFs, structured parse then converter
// fallback for DOCX.
func NewEngine(cfg *config.Config) *Engine {
	e := &Engine{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}

	e.pdf = []strategy{
		{name: "pdf_layout", run: e.extractPDFLayout},
		{name: "pdf_render", run: extractPDFRender},
	}
	if cfg.Extractor.OCREnabled {
		e.pdf = append(e.pdf, strategy{name: "pdf_ocr", run: e.extractPDFOCR})
	}

	e.docx = []strategy{
		{name: "docx_structured", run: extractDocxStructured},
		{name: "docx_converter", run: extractDocxConverter},
	}

	return e
}

// Extract dispatches on the file extension. Unsupported extensions fail
// without touching the payload.
func (e *Engine) Extract(ctx context.Context, data []byte, extension string) (string, error) {
	switch strings.ToLower(extension) {
	case ".pdf":
		text, err := e.runCascade(ctx, data, e.pdf)
		if errors.Is(err, errCascadeExhausted) {
			e.logger.Warn("PDF yielded no text after all strategies, returning empty", map[string]interface{}{
				"detail": err.Error(),
			})
			return "", nil
		}
		return text, err
	case ".docx":
		text, err := e.runCascade(ctx, data, e.docx)
		if errors.Is(err, errCascadeExhausted) {
			return "", utils.NewDocumentExtractionError(err.Error())
		}
		return text, err
	case ".txt":
		return decodePlainText(data), nil
	default:
		return "", utils.NewUnsupportedFormatError(
			fmt.Sprintf("unsupported file type: %s", extension))
	}
}

// runCascade tries each strategy in order until one yields non-blank text.
func (e *Engine) runCascade(ctx context.Context, data []byte, strategies []strategy) (string, error) {
	var lastErr error

	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := s.run(ctx, data)
		if err != nil {
			lastErr = err
			e.logger.Warn("Extraction strategy failed, trying next", map[string]interface{}{
				"strategy": s.name,
				"error":    err.Error(),
			})
			continue
		}
		if strings.TrimSpace(text) == "" {
			e.logger.Debug("Extraction strategy produced no text, trying next", map[string]interface{}{
				"strategy": s.name,
			})
			continue
		}

		e.logger.Info("Text extraction succeeded", map[string]interface{}{
			"strategy":    s.name,
			"text_length": len(text),
		})
		return text, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", errCascadeExhausted, lastErr)
	}
	return "", errCascadeExhausted
}
