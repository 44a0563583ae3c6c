package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// extractPDFRender extracts the text layer with a full PDF rendering library.
// It handles files whose text layer the lightweight parser cannot read.
func extractPDFRender(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf for rendering: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("failed to read text of page %d: %w", n+1, err)
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n\n")
		}
	}

	return sb.String(), nil
}
