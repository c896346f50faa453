package connection

import (
	"fmt"
	"regexp"
	"strings"

	"aansluitintake/internal/domain"
)

var (
	eanPattern        = regexp.MustCompile(`^\d{18}$`)
	kvkPattern        = regexp.MustCompile(`^\d{8}$`)
	nlPostcodePattern = regexp.MustCompile(`^\d{4}\s?[A-Z]{2}$`)
	bePostcodePattern = regexp.MustCompile(`^\d{4}$`)
	ibanShapePattern  = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{10,30}$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// IsValidEAN reports whether the value is exactly 18 digits after stripping
// whitespace.
func IsValidEAN(value string) bool {
	if value == "" {
		return false
	}
	return eanPattern.MatchString(whitespacePattern.ReplaceAllString(value, ""))
}

// IsValidPostcodeNLorBE accepts the Dutch "1234 AB" shape (space optional)
// and the Belgian bare four-digit shape.
func IsValidPostcodeNLorBE(value string) bool {
	if value == "" {
		return false
	}
	normalized := strings.ToUpper(strings.TrimSpace(value))
	return bePostcodePattern.MatchString(normalized) || nlPostcodePattern.MatchString(normalized)
}

// IsValidKvk reports whether the value is exactly 8 digits after stripping
// whitespace.
func IsValidKvk(value string) bool {
	if value == "" {
		return false
	}
	return kvkPattern.MatchString(whitespacePattern.ReplaceAllString(value, ""))
}

// IsValidIBAN checks the IBAN shape and the ISO 13616 mod-97 checksum.
func IsValidIBAN(value string) bool {
	if value == "" {
		return false
	}
	normalized := strings.ToUpper(whitespacePattern.ReplaceAllString(value, ""))
	if !ibanShapePattern.MatchString(normalized) {
		return false
	}
	rearranged := normalized[4:] + normalized[:4]
	remainder := 0
	for _, char := range rearranged {
		if char >= '0' && char <= '9' {
			remainder = (remainder*10 + int(char-'0')) % 97
		} else {
			// letters expand to two digits (A=10 .. Z=35)
			remainder = (remainder*100 + int(char-'A') + 10) % 97
		}
	}
	return remainder == 1
}

// formatRule checks a populated field against its expected shape. Empty
// fields are the required rules' concern and pass here.
type formatRule struct {
	ruleKey  string
	ruleName string
	validate func(*domain.Connection) []Result
}

func (r *formatRule) RuleKey() string    { return r.ruleKey }
func (r *formatRule) RuleName() string   { return r.ruleName }
func (r *formatRule) Severity() Severity { return SeverityError }

func (r *formatRule) Validate(c *domain.Connection) []Result {
	return r.validate(c)
}

func isOCRSource(source domain.ConnectionSource) bool {
	return source == domain.SourceOCRPhoto || source == domain.SourceOCRPDF
}

// postcodeMessage builds the error for a malformed postcode. OCR-sourced
// records get the misread hint, with a concrete suggestion when the
// confusable-character correction produces a valid postcode.
func postcodeMessage(c *domain.Connection, value string) string {
	if isOCRSource(c.Source) {
		if suggested, likely := DetectLikelyOCRPostcodeError(value); likely {
			return fmt.Sprintf("Postcode lijkt verkeerd herkend, controleer. Bedoeld: %s?", suggested)
		}
		return "Postcode lijkt verkeerd herkend, controleer."
	}
	return "Ongeldige postcode. Gebruik NL (1234 AB) of BE (1234)."
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// FormatRules returns the shape and enum-membership rules.
func FormatRules() []*formatRule {
	productOptions := make([]string, 0, len(domain.ProductOptions))
	for _, p := range domain.ProductOptions {
		productOptions = append(productOptions, string(p))
	}
	segmentOptions := make([]string, 0, len(domain.MarketSegmentOptions))
	for _, s := range domain.MarketSegmentOptions {
		segmentOptions = append(segmentOptions, string(s))
	}

	return []*formatRule{
		{
			ruleKey: "fmt.ean_code", ruleName: "Formaat: EAN-code",
			validate: func(c *domain.Connection) []Result {
				if c.EANCode == "" || IsValidEAN(c.EANCode) {
					return nil
				}
				return []Result{{Field: "eanCode", Severity: SeverityError, Message: "EAN moet precies 18 cijfers zijn."}}
			},
		},
		{
			ruleKey: "fmt.delivery_postcode", ruleName: "Formaat: Postcode levering",
			validate: func(c *domain.Connection) []Result {
				if c.DeliveryPostcode == "" || IsValidPostcodeNLorBE(c.DeliveryPostcode) {
					return nil
				}
				return []Result{{Field: "deliveryPostcode", Severity: SeverityError, Message: postcodeMessage(c, c.DeliveryPostcode)}}
			},
		},
		{
			ruleKey: "fmt.invoice_postcode", ruleName: "Formaat: Postcode factuur",
			validate: func(c *domain.Connection) []Result {
				if c.InvoiceSameAsDelivery || c.InvoicePostcode == "" || IsValidPostcodeNLorBE(c.InvoicePostcode) {
					return nil
				}
				return []Result{{Field: "invoicePostcode", Severity: SeverityError, Message: postcodeMessage(c, c.InvoicePostcode)}}
			},
		},
		{
			ruleKey: "fmt.kvk_number", ruleName: "Formaat: KvK-nummer",
			validate: func(c *domain.Connection) []Result {
				if c.KvkNumber == "" || IsValidKvk(c.KvkNumber) {
					return nil
				}
				return []Result{{Field: "kvkNumber", Severity: SeverityError, Message: "KvK moet 8 cijfers zijn."}}
			},
		},
		{
			ruleKey: "fmt.iban", ruleName: "Formaat: IBAN",
			validate: func(c *domain.Connection) []Result {
				if c.IBAN == "" || IsValidIBAN(c.IBAN) {
					return nil
				}
				return []Result{{Field: "iban", Severity: SeverityError, Message: "IBAN lijkt ongeldig. Controleer het rekeningnummer."}}
			},
		},
		{
			ruleKey: "fmt.product", ruleName: "Formaat: Product",
			validate: func(c *domain.Connection) []Result {
				if c.Product == "" || containsString(productOptions, c.Product) {
					return nil
				}
				return []Result{{Field: "product", Severity: SeverityError, Message: "Kies een product of Onbekend."}}
			},
		},
		{
			ruleKey: "fmt.market_segment", ruleName: "Formaat: Marktsegment",
			validate: func(c *domain.Connection) []Result {
				if c.MarketSegment == "" || containsString(segmentOptions, c.MarketSegment) {
					return nil
				}
				return []Result{{Field: "marketSegment", Severity: SeverityError, Message: "Kies KV, GV of Onbekend."}}
			},
		},
		{
			ruleKey: "fmt.telemetry_type", ruleName: "Formaat: Telemetrie",
			validate: func(c *domain.Connection) []Result {
				if c.TelemetryType == "" || containsString(domain.TelemetryTypeOptions, c.TelemetryType) {
					return nil
				}
				return []Result{{Field: "telemetryType", Severity: SeverityError, Message: "Kies een geldige telemetrie-optie."}}
			},
		},
	}
}
