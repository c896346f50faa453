package connection

import "strings"

// Character confusions seen in OCR output of postcodes, in both directions:
// letters misread where a digit belongs and digits misread where a letter
// belongs.
var ocrToDigit = map[rune]rune{
	'O': '0',
	'Q': '0',
	'D': '0',
	'I': '1',
	'L': '1',
	'Z': '2',
	'S': '5',
	'G': '6',
	'T': '7',
	'B': '8',
}

var digitToLetter = map[rune]rune{
	'0': 'O',
	'1': 'I',
	'2': 'Z',
	'5': 'S',
	'6': 'G',
	'7': 'T',
	'8': 'B',
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// DetectLikelyOCRPostcodeError checks whether a malformed postcode becomes a
// valid one after swapping confusable characters, and returns the corrected
// form. Handles the six-character NL shape and the four-digit BE shape.
func DetectLikelyOCRPostcodeError(value string) (string, bool) {
	compact := strings.ToUpper(whitespacePattern.ReplaceAllString(value, ""))
	if compact == "" {
		return "", false
	}

	if len(compact) == 6 {
		runes := []rune(compact)
		corrected := make([]rune, 6)
		for i, r := range runes[:4] {
			if isDigit(r) {
				corrected[i] = r
			} else if mapped, ok := ocrToDigit[r]; ok {
				corrected[i] = mapped
			} else {
				corrected[i] = r
			}
		}
		for i, r := range runes[4:] {
			if isUpper(r) {
				corrected[4+i] = r
			} else if mapped, ok := digitToLetter[r]; ok {
				corrected[4+i] = mapped
			} else {
				corrected[4+i] = r
			}
		}
		result := string(corrected)
		if result != compact && nlPostcodePattern.MatchString(result) {
			return result[:4] + " " + result[4:], true
		}
	}

	if len(compact) == 4 {
		corrected := make([]rune, 0, 4)
		for _, r := range compact {
			if isDigit(r) {
				corrected = append(corrected, r)
			} else if mapped, ok := ocrToDigit[r]; ok {
				corrected = append(corrected, mapped)
			} else {
				corrected = append(corrected, r)
			}
		}
		result := string(corrected)
		if result != compact && bePostcodePattern.MatchString(result) {
			return result, true
		}
	}

	return "", false
}
