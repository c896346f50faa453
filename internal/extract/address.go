package extract

import (
	"regexp"
	"strings"
)

// SupplierAddressWarning is attached when the only usable address in a block
// looks like it belongs to the supplier rather than the customer.
const SupplierAddressWarning = "Dit lijkt mogelijk het leverancieradres - controleer."

// Address is a parsed Dutch street address line.
type Address struct {
	Street      string
	HouseNumber string
	Addition    string
}

// PostcodeCity is a postcode plus city pair found on a single line.
type PostcodeCity struct {
	Postcode string
	City     string
}

var (
	addressLineRe    = regexp.MustCompile(`^(.+?)\s+(\d{1,6})\s*([A-Za-z0-9\-/]*)$`)
	postcodeCityRe   = regexp.MustCompile(`(\d{4}\s?[A-Z]{2}|\d{4})\s+([A-Za-z][A-Za-z\s\-]+)(,|$)`)
	nlPostcodeLineRe = regexp.MustCompile(`\d{4}\s?[A-Z]{2}`)
	afterSeparatorRe = regexp.MustCompile(`[:\-]\s*(.+)$`)
	trailingPunctRe  = regexp.MustCompile(`[.,;]+$`)
)

// ParseAddress splits "Hoofdstraat 12a" into street, house number and
// addition. Only the part before the first comma is considered; lines with a
// colon or more than six digits in total are rejected as non-addresses.
func ParseAddress(value string) *Address {
	cleaned := strings.TrimSpace(strings.SplitN(strings.TrimSpace(value), ",", 2)[0])
	if cleaned == "" || strings.Contains(cleaned, ":") {
		return nil
	}
	if len(nonDigitRe.ReplaceAllString(cleaned, "")) > 6 {
		return nil
	}
	m := addressLineRe.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}
	return &Address{
		Street:      strings.TrimSpace(m[1]),
		HouseNumber: m[2],
		Addition:    strings.TrimSpace(m[3]),
	}
}

func lineHasIgnoreWord(line string) bool {
	normalized := NormalizeLabel(line)
	for _, word := range addressIgnoreWords {
		if strings.Contains(normalized, NormalizeLabel(word)) {
			return true
		}
	}
	return false
}

func lineHasLabel(line string, labels []string) bool {
	normalized := NormalizeLabel(line)
	for _, label := range labels {
		if strings.Contains(normalized, NormalizeLabel(label)) {
			return true
		}
	}
	return false
}

func valueAfterSeparator(line string) string {
	if m := afterSeparatorRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// FindPostcodeAndCity scans lines for a postcode followed by a city name.
// A four-digit match followed by exactly two letters on a line that also has
// the Dutch postcode shape is a mis-split NL postcode, not a Belgian code, and
// is skipped. skipSupplier skips supplier/netbeheerder/afzender lines.
func FindPostcodeAndCity(text string, skipSupplier bool) *PostcodeCity {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(trailingPunctRe.ReplaceAllString(strings.TrimSuffix(line, "\r"), ""))
		if skipSupplier && lineHasIgnoreWord(line) {
			continue
		}
		m := postcodeCityRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		city := strings.TrimSpace(m[2])
		if len(m[1]) == 4 && len(city) == 2 && nlPostcodeLineRe.MatchString(line) {
			continue
		}
		return &PostcodeCity{
			Postcode: NormalizePostcode(m[1]),
			City:     city,
		}
	}
	return nil
}

// addressCandidate is a possible address found near an address label.
type addressCandidate struct {
	address      *Address
	postcodeCity *PostcodeCity
	isSupplier   bool
}

// extractAddressCandidate looks at the value after the label separator plus
// the next three lines for a street line and a postcode/city line.
func extractAddressCandidate(lines []string, index int) *addressCandidate {
	var candidates []string
	if v := valueAfterSeparator(lines[index]); v != "" {
		candidates = append(candidates, v)
	}
	for i := index + 1; i <= index+3 && i < len(lines); i++ {
		if lines[i] != "" {
			candidates = append(candidates, lines[i])
		}
	}

	var address *Address
	var postcodeCity *PostcodeCity
	isSupplier := false
	for _, candidate := range candidates {
		if address == nil {
			address = ParseAddress(candidate)
		}
		if postcodeCity == nil {
			postcodeCity = FindPostcodeAndCity(candidate, false)
		}
		if lineHasIgnoreWord(candidate) {
			isSupplier = true
		}
	}

	if address == nil && postcodeCity == nil {
		return nil
	}
	return &addressCandidate{address: address, postcodeCity: postcodeCity, isSupplier: isSupplier}
}

// selectAddressCandidate prefers the first non-supplier candidate; when only
// supplier-looking candidates exist the first is taken with a warning.
func selectAddressCandidate(candidates []*addressCandidate) (*addressCandidate, string) {
	if len(candidates) == 0 {
		return nil, ""
	}
	for _, candidate := range candidates {
		if !candidate.isSupplier {
			return candidate, ""
		}
	}
	return candidates[0], SupplierAddressWarning
}

type labeledAddresses struct {
	delivery *addressCandidate
	invoice  *addressCandidate
	warning  string
}

func extractLabeledAddresses(lines []string) labeledAddresses {
	var deliveryCandidates, invoiceCandidates []*addressCandidate
	for i, line := range lines {
		if lineHasLabel(line, deliveryAddressLabels) {
			if candidate := extractAddressCandidate(lines, i); candidate != nil {
				deliveryCandidates = append(deliveryCandidates, candidate)
			}
		}
		if lineHasLabel(line, invoiceAddressLabels) {
			if candidate := extractAddressCandidate(lines, i); candidate != nil {
				invoiceCandidates = append(invoiceCandidates, candidate)
			}
		}
	}

	delivery, warning := selectAddressCandidate(deliveryCandidates)
	invoice, _ := selectAddressCandidate(invoiceCandidates)
	return labeledAddresses{delivery: delivery, invoice: invoice, warning: warning}
}
