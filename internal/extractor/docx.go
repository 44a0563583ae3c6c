package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/fumiama/go-docx"
)

// extractDocxStructured walks the document body so paragraphs and table rows
// come out in reading order.
func extractDocxStructured(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("docx parsing panicked: %v", r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}

	var parts []string
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			parts = append(parts, block.String())
		case *docx.Table:
			if rows := renderDocxTable(block); rows != "" {
				parts = append(parts, rows)
			}
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// renderDocxTable flattens a table into one line per row with cell text
// vertical-bar-joined, the same shape tabular PDF content takes.
func renderDocxTable(table *docx.Table) string {
	var rows []string
	for _, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var texts []string
			for _, para := range cell.Paragraphs {
				if s := strings.TrimSpace(para.String()); s != "" {
					texts = append(texts, s)
				}
			}
			cells = append(cells, strings.Join(texts, " "))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

// extractDocxConverter is the flat-text fallback when structured parsing
// cannot read the file.
func extractDocxConverter(ctx context.Context, data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), docconv.MimeTypeByExtension("file.docx"), true)
	if err != nil {
		return "", fmt.Errorf("docx conversion failed: %w", err)
	}
	return res.Body, nil
}
