package extract

import (
	"regexp"
	"strings"
)

var (
	eanRunRe     = regexp.MustCompile(`(?:\d[\s-]?){18}`)
	eanWordRe    = regexp.MustCompile(`\bean\b`)
	longDigitsRe = regexp.MustCompile(`\d{6,}`)
)

// FindEANCodes returns the distinct 18-digit EAN codes in the text, in order
// of first occurrence. Single spaces or dashes between digits are tolerated.
func FindEANCodes(text string) []string {
	var codes []string
	seen := make(map[string]struct{})
	for _, match := range eanRunRe.FindAllString(text, -1) {
		digits := nonDigitRe.ReplaceAllString(match, "")
		if len(digits) != 18 {
			continue
		}
		if _, ok := seen[digits]; ok {
			continue
		}
		seen[digits] = struct{}{}
		codes = append(codes, digits)
	}
	return codes
}

// isEANMarker reports whether a line announces a new connection by EAN: either
// it contains a full EAN code, or the word "ean" next to a long digit run.
func isEANMarker(line string) bool {
	if len(FindEANCodes(line)) > 0 {
		return true
	}
	return eanWordRe.MatchString(strings.ToLower(line)) && longDigitsRe.MatchString(line)
}

func isHeadingMarker(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "aansluiting") ||
		strings.HasPrefix(lower, "aansluitnaam") ||
		strings.HasPrefix(lower, "aansluitnummer")
}
