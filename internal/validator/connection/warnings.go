package connection

import (
	"strings"

	"aansluitintake/internal/domain"
)

// warningRule flags advisory issues that never block saving.
type warningRule struct {
	ruleKey  string
	ruleName string
	validate func(*domain.Connection) []Result
}

func (r *warningRule) RuleKey() string    { return r.ruleKey }
func (r *warningRule) RuleName() string   { return r.ruleName }
func (r *warningRule) Severity() Severity { return SeverityWarning }

func (r *warningRule) Validate(c *domain.Connection) []Result {
	return r.validate(c)
}

// WarningRules returns the advisory rules: unknown sentinels left in place
// and the supplier-address flag from extraction.
func WarningRules() []*warningRule {
	return []*warningRule{
		{
			ruleKey: "warn.product_onbekend", ruleName: "Controle: Product",
			validate: func(c *domain.Connection) []Result {
				if c.Product != string(domain.ProductOnbekend) {
					return nil
				}
				return []Result{{Field: "product", Severity: SeverityWarning, Message: "Product staat op Onbekend. Controleer dit indien mogelijk."}}
			},
		},
		{
			ruleKey: "warn.segment_onbekend", ruleName: "Controle: Marktsegment",
			validate: func(c *domain.Connection) []Result {
				if c.MarketSegment != string(domain.SegmentOnbekend) {
					return nil
				}
				return []Result{{Field: "marketSegment", Severity: SeverityWarning, Message: "Marktsegment staat op Onbekend. Controleer dit indien mogelijk."}}
			},
		},
		{
			ruleKey: "warn.telemetry_code_onbekend", ruleName: "Controle: Telemetriecode",
			validate: func(c *domain.Connection) []Result {
				if !strings.EqualFold(c.TelemetryCode, domain.TelemetryCodeUnknown) {
					return nil
				}
				return []Result{{Field: "telemetryCode", Severity: SeverityWarning, Message: "Telemetriecode staat op ONBEKEND. Voeg deze later toe indien mogelijk."}}
			},
		},
		{
			ruleKey: "warn.address", ruleName: "Controle: Leveringsadres",
			validate: func(c *domain.Connection) []Result {
				if c.AddressWarning == "" {
					return nil
				}
				return []Result{{Field: "deliveryStreet", Severity: SeverityWarning, Message: c.AddressWarning}}
			},
		},
	}
}
