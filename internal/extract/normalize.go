package extract

import (
	"regexp"
	"strings"

	"aansluitintake/internal/domain"
)

var (
	nonDigitRe     = regexp.MustCompile(`\D`)
	nlPostcodeRe   = regexp.MustCompile(`^\d{4}[A-Z]{2}$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	segmentTokenRe = regexp.MustCompile(`\b(KV|GV)\b`)
)

// NormalizeEAN keeps only digits and truncates to the 18-digit EAN length.
func NormalizeEAN(value string) string {
	digits := nonDigitRe.ReplaceAllString(value, "")
	if len(digits) > 18 {
		digits = digits[:18]
	}
	return digits
}

// NormalizePostcode canonicalizes a Dutch postcode to "NNNN XX". Values that
// do not have the Dutch shape (Belgian four-digit codes for instance) pass
// through trimmed and uppercased. Idempotent.
func NormalizePostcode(value string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	noSpace := whitespaceRe.ReplaceAllString(trimmed, "")
	if nlPostcodeRe.MatchString(noSpace) {
		return noSpace[:4] + " " + noSpace[4:]
	}
	return trimmed
}

// NormalizeProduct maps free-form product text onto the product enum by
// keyword stem. Returns false when no stem matches.
func NormalizeProduct(value string) (string, bool) {
	normalized := strings.ToLower(value)
	switch {
	case strings.Contains(normalized, "elek"):
		return string(domain.ProductElektra), true
	case strings.Contains(normalized, "gas"):
		return string(domain.ProductGas), true
	case strings.Contains(normalized, "water"):
		return string(domain.ProductWater), true
	case strings.Contains(normalized, "warm"):
		return string(domain.ProductWarmte), true
	case strings.Contains(normalized, "onbek"), strings.Contains(normalized, "unknown"):
		return string(domain.ProductOnbekend), true
	}
	return "", false
}

// NormalizeMarketSegment recognizes a KV or GV token, or the usual spellings
// of "unknown". Returns false when neither applies.
func NormalizeMarketSegment(value string) (string, bool) {
	if m := segmentTokenRe.FindStringSubmatch(strings.ToUpper(value)); m != nil {
		return m[1], true
	}
	normalized := strings.ToLower(value)
	if strings.Contains(normalized, "onbek") ||
		strings.Contains(normalized, "nvt") ||
		strings.Contains(normalized, "niet bekend") ||
		strings.Contains(normalized, "unknown") {
		return string(domain.SegmentOnbekend), true
	}
	return "", false
}

// NormalizeTelemetryType classifies telemetry text into the known metering
// regimes. Yes/no style answers carry no regime and map to Onbekend; a bare
// "telemetrie" label word yields the empty string.
func NormalizeTelemetryType(value string) string {
	normalized := strings.ToLower(value)
	switch {
	case strings.Contains(normalized, "slim"):
		return "Slimme meter"
	case strings.Contains(normalized, "maand"):
		return "Maandbemeten"
	case strings.Contains(normalized, "jaar"):
		return "Jaarbemeten"
	case strings.Contains(normalized, "continu"), strings.Contains(normalized, "kwartier"):
		return "Continu (kwartierwaarden)"
	}
	if strings.Contains(normalized, "onbek") ||
		strings.Contains(normalized, "niet bekend") ||
		strings.Contains(normalized, "unknown") ||
		strings.Contains(normalized, "onduidelijk") ||
		strings.Contains(normalized, "ja") ||
		strings.Contains(normalized, "aanwezig") ||
		strings.Contains(normalized, "yes") ||
		strings.Contains(normalized, "nee") ||
		strings.Contains(normalized, "geen") ||
		strings.Contains(normalized, "niet") ||
		strings.Contains(normalized, "no") {
		return "Onbekend"
	}
	switch strings.TrimSpace(normalized) {
	case "telemetrie", "telemetry":
		return ""
	}
	return strings.TrimSpace(value)
}

// NormalizeTelemetryCode uppercases and strips spaces; the usual spellings of
// "unknown" collapse to the ONBEKEND sentinel.
func NormalizeTelemetryCode(value string) string {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return ""
	}
	switch strings.ToLower(normalized) {
	case "onbekend", "unknown", "nvt", "n.v.t.":
		return domain.TelemetryCodeUnknown
	}
	return whitespaceRe.ReplaceAllString(strings.ToUpper(normalized), "")
}

// NormalizeIBAN strips whitespace and uppercases.
func NormalizeIBAN(value string) string {
	return strings.ToUpper(whitespaceRe.ReplaceAllString(value, ""))
}

// NormalizeKvk keeps only digits.
func NormalizeKvk(value string) string {
	return nonDigitRe.ReplaceAllString(value, "")
}
