package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// tableCellGap is the horizontal whitespace, in points, that separates two
// fragments into different table cells. A few character widths.
const tableCellGap = 18.0

// extractPDFLayout reads the embedded text layer page by page, grouping text
// fragments into visual rows so columns and headers keep their line
// structure. Rows whose vertical positions differ by no more than the
// configured tolerance are merged into one line. Rows that split into
// multiple cells are additionally rendered vertical-bar-joined after the
// page body, so tabular content survives normalization.
func (e *Engine) extractPDFLayout(ctx context.Context, data []byte) (text string, err error) {
	// The PDF parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf layout extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	tolerance := int64(e.config.Extractor.PDFTolerance)
	var pages []string

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageNum, err)
		}

		var body strings.Builder
		var tableRows []string
		var lastPos int64 = -1

		for _, row := range rows {
			cells := splitRowCells(row.Content)
			if len(cells) == 0 {
				continue
			}
			if len(cells) > 1 {
				tableRows = append(tableRows, strings.Join(cells, " | "))
			}

			if lastPos >= 0 && abs(lastPos-row.Position) <= tolerance {
				body.WriteString(" ")
			} else if body.Len() > 0 {
				body.WriteString("\n")
			}
			body.WriteString(strings.Join(cells, " "))
			lastPos = row.Position
		}

		pageText := body.String()
		if len(tableRows) > 0 {
			pageText += "\n" + strings.Join(tableRows, "\n")
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n\n"), nil
}

// splitRowCells groups a visual row's text fragments into cells wherever the
// horizontal gap between fragments exceeds tableCellGap. Ordinary prose rows
// come back as a single cell.
func splitRowCells(content pdf.TextHorizontal) []string {
	var cells []string
	var cell strings.Builder
	lastEnd := -1.0

	for _, t := range content {
		s := strings.TrimSpace(t.S)
		if s == "" {
			lastEnd = t.X + t.W
			continue
		}

		if lastEnd >= 0 && t.X-lastEnd > tableCellGap && cell.Len() > 0 {
			cells = append(cells, cell.String())
			cell.Reset()
		}
		if cell.Len() > 0 {
			cell.WriteString(" ")
		}
		cell.WriteString(s)
		lastEnd = t.X + t.W
	}

	if cell.Len() > 0 {
		cells = append(cells, cell.String())
	}
	return cells
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
