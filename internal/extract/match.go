package extract

import (
	"math"
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeLabel lowercases a label and collapses every non-alphanumeric run
// to a single space.
func NormalizeLabel(value string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(strings.ToLower(value), " "))
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// MatchLabelToField maps a free-form label to a connection field. Telemetry
// labels are special-cased before the alias table: "code" or "meet" in the
// label means the code field, anything else the type field. Exact alias
// matches win, then bidirectional substring containment (for labels longer
// than two characters), then the closest Levenshtein ratio at 0.25 or better.
func MatchLabelToField(label string) (Field, bool) {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return "", false
	}

	if strings.Contains(normalized, "telemetrie") || strings.Contains(normalized, "telemetry") {
		if strings.Contains(normalized, "code") || strings.Contains(normalized, "meet") {
			return FieldTelemetryCode, true
		}
		return FieldTelemetryType, true
	}

	var bestField Field
	bestScore := math.Inf(1)

	for _, entry := range labelAliases {
		for _, alias := range entry.aliases {
			aliasNormalized := NormalizeLabel(alias)
			if aliasNormalized == "" {
				continue
			}
			if normalized == aliasNormalized {
				return entry.field, true
			}
			if strings.Contains(normalized, aliasNormalized) || strings.Contains(aliasNormalized, normalized) {
				if len(normalized) > 2 {
					return entry.field, true
				}
			}
			distance := levenshtein(normalized, aliasNormalized)
			score := float64(distance) / float64(max(len([]rune(normalized)), len([]rune(aliasNormalized))))
			if score < bestScore {
				bestScore = score
				bestField = entry.field
			}
		}
	}

	if bestScore <= 0.25 {
		return bestField, true
	}
	return "", false
}
