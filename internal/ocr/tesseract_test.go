package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tsvRow(block, par, line, conf, text string) string {
	return "5\t1\t" + block + "\t" + par + "\t" + line + "\t1\t0\t0\t10\t10\t" + conf + "\t" + text
}

func TestParseTSV(t *testing.T) {
	tsv := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
		"2\t1\t1\t0\t0\t0\t0\t0\t100\t100\t-1\t\n" +
		tsvRow("1", "1", "1", "96", "EAN:") + "\n" +
		tsvRow("1", "1", "1", "90", "123456789012345678") + "\n" +
		tsvRow("1", "1", "2", "84", "Plaats:") + "\n" +
		tsvRow("1", "1", "2", "90", "Utrecht") + "\n"

	text, confidence := parseTSV(tsv)
	assert.Equal(t, "EAN: 123456789012345678\nPlaats: Utrecht", text)
	assert.InDelta(t, 90.0, confidence, 0.001)
}

func TestParseTSV_Empty(t *testing.T) {
	text, confidence := parseTSV("level\tpage_num\n")
	assert.Empty(t, text)
	assert.Zero(t, confidence)
}
