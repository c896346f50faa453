package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"aansluitintake/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting connections. The delimiter is a
// semicolon, matching what Dutch Excel installs expect.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &CSVWriter{csv: cw}
}

// WriteHeader writes the Dutch header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Headers())
}

// WriteConnections converts a batch of connections to CSV rows and writes them.
func (w *CSVWriter) WriteConnections(conns []domain.Connection) error {
	for i := range conns {
		if err := w.csv.Write(Row(&conns[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV renders the full export (BOM, header, rows) to w.
func WriteCSV(w io.Writer, conns []domain.Connection) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	writer := NewCSVWriter(w)
	if err := writer.WriteHeader(); err != nil {
		return err
	}
	if err := writer.WriteConnections(conns); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition and S3 keys.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, dated filename with the given extension.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
