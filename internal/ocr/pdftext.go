package ocr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls the embedded text layer out of a PDF. Returns the
// empty string for scanned PDFs without a text layer; the caller decides
// whether to fall back to image OCR or AI extraction.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading pdf page %d: %w", pageNum, err)
		}
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	return strings.TrimSpace(builder.String()), nil
}
