package extract

import (
	"regexp"
	"strings"

	"aansluitintake/internal/domain"
)

var blankLinesRe = regexp.MustCompile(`\n{2,}|\r\n{2,}`)

// splitByMarkers starts a new block at every marker line. It only commits when
// the text actually divided: more than one block and more than one marker.
func splitByMarkers(lines []string, useHeadingMarkers bool) []string {
	var blocks []string
	var current []string
	hasPrimaryMarker := false
	markerCount := 0

	for _, line := range lines {
		marker := isEANMarker(line) || (useHeadingMarkers && isHeadingMarker(line))
		if marker {
			markerCount++
			if len(current) > 0 && hasPrimaryMarker {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
				hasPrimaryMarker = false
			}
			hasPrimaryMarker = true
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	if len(blocks) > 1 && markerCount > 1 {
		return blocks
	}
	return nil
}

// SplitIntoBlocks divides intake text into per-connection blocks. SplitMode
// none returns the whole text as a single block. Auto tries marker lines
// first (heading markers only when the text contains no EAN codes), then
// blank-line paragraphs, then the whole text.
func SplitIntoBlocks(text string, splitMode domain.SplitMode) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if splitMode == domain.SplitModeNone {
		return []string{trimmed}
	}

	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}

	hasEANs := len(FindEANCodes(trimmed)) > 0
	if markerBlocks := splitByMarkers(lines, !hasEANs); markerBlocks != nil {
		return markerBlocks
	}

	var blocks []string
	for _, block := range blankLinesRe.Split(trimmed, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) > 0 {
		return blocks
	}
	return []string{trimmed}
}
