package extractor

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// extractPDFOCR is the last resort for scanned or image-only PDFs: rasterize
// every page and run it through Tesseract.
func (e *Engine) extractPDFOCR(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf for OCR: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if lang := e.config.Extractor.OCRLanguage; lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("failed to set OCR language %q: %w", lang, err)
		}
	}

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		img, err := doc.Image(n)
		if err != nil {
			return "", fmt.Errorf("failed to rasterize page %d: %w", n+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode page %d: %w", n+1, err)
		}

		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			return "", fmt.Errorf("failed to load page %d into OCR: %w", n+1, err)
		}

		pageText, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("OCR failed on page %d: %w", n+1, err)
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n\n")
		}
	}

	return sb.String(), nil
}
