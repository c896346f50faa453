package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"aansluitintake/internal/config"
	"aansluitintake/internal/port"
)

// TesseractRecognizer runs the tesseract CLI over an image and implements
// port.TextRecognizer. TSV output carries per-word confidences, which the
// intake job reports as a mean score.
type TesseractRecognizer struct {
	binary    string
	languages string
	timeout   time.Duration
}

// NewTesseractRecognizer creates a recognizer from OCR config.
func NewTesseractRecognizer(cfg *config.OCRConfig) *TesseractRecognizer {
	binary := cfg.TesseractPath
	if binary == "" {
		binary = "tesseract"
	}
	languages := cfg.Languages
	if languages == "" {
		languages = "nld+eng"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &TesseractRecognizer{
		binary:    binary,
		languages: languages,
		timeout:   timeout,
	}
}

func (t *TesseractRecognizer) RecognizeImage(ctx context.Context, image []byte) (*port.RecognizedText, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binary, "stdin", "stdout", "-l", t.languages, "tsv")
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("tesseract timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("running tesseract: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	text, confidence := parseTSV(stdout.String())
	return &port.RecognizedText{Text: text, Confidence: confidence}, nil
}

// parseTSV rebuilds line-oriented text from tesseract TSV output and averages
// the word confidences. Non-word rows carry conf -1 and are skipped.
func parseTSV(tsv string) (string, float64) {
	var builder strings.Builder
	var confSum float64
	var confCount int
	prevLine := ""

	for i, row := range strings.Split(tsv, "\n") {
		if i == 0 {
			// header row
			continue
		}
		cols := strings.Split(row, "\t")
		if len(cols) < 12 {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}

		// block, paragraph and line numbers identify the output line
		lineKey := cols[2] + "/" + cols[3] + "/" + cols[4]
		if prevLine != "" && lineKey != prevLine {
			builder.WriteString("\n")
		} else if prevLine != "" {
			builder.WriteString(" ")
		}
		prevLine = lineKey

		builder.WriteString(word)
		confSum += conf
		confCount++
	}

	if confCount == 0 {
		return "", 0
	}
	return builder.String(), confSum / float64(confCount)
}
