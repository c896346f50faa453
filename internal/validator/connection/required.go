package connection

import (
	"strings"

	"aansluitintake/internal/domain"
)

// requiredFieldRule checks that a required field is not empty.
type requiredFieldRule struct {
	ruleKey  string
	ruleName string
	field    string
	message  string
	extract  func(*domain.Connection) string
	// when returns false the rule is skipped for this record
	when func(*domain.Connection) bool
}

func (r *requiredFieldRule) RuleKey() string    { return r.ruleKey }
func (r *requiredFieldRule) RuleName() string   { return r.ruleName }
func (r *requiredFieldRule) Severity() Severity { return SeverityError }

func (r *requiredFieldRule) Validate(c *domain.Connection) []Result {
	if r.when != nil && !r.when(c) {
		return nil
	}
	if strings.TrimSpace(r.extract(c)) != "" {
		return nil
	}
	return []Result{{Field: r.field, Severity: SeverityError, Message: r.message}}
}

func invoiceAddressRequired(c *domain.Connection) bool {
	return !c.InvoiceSameAsDelivery
}

// RequiredFieldRules returns the required-field rules with their Dutch
// operator-facing messages. The invoice-address rules only apply when the
// invoice address differs from the delivery address.
func RequiredFieldRules() []*requiredFieldRule {
	return []*requiredFieldRule{
		{
			ruleKey: "req.ean_code", ruleName: "Verplicht: EAN-code", field: "eanCode",
			message: "EAN-code is verplicht (18 cijfers).",
			extract: func(c *domain.Connection) string { return c.EANCode },
		},
		{
			ruleKey: "req.product", ruleName: "Verplicht: Product", field: "product",
			message: "Kies een product.",
			extract: func(c *domain.Connection) string { return c.Product },
		},
		{
			ruleKey: "req.tenaamstelling", ruleName: "Verplicht: Tenaamstelling", field: "tenaamstelling",
			message: "Tenaamstelling is verplicht.",
			extract: func(c *domain.Connection) string { return c.Tenaamstelling },
		},
		{
			ruleKey: "req.kvk_number", ruleName: "Verplicht: KvK-nummer", field: "kvkNumber",
			message: "KvK-nummer is verplicht.",
			extract: func(c *domain.Connection) string { return c.KvkNumber },
		},
		{
			ruleKey: "req.iban", ruleName: "Verplicht: IBAN", field: "iban",
			message: "IBAN is verplicht.",
			extract: func(c *domain.Connection) string { return c.IBAN },
		},
		{
			ruleKey: "req.authorized_signatory", ruleName: "Verplicht: Tekenbevoegde", field: "authorizedSignatory",
			message: "Tekenbevoegde volgens KvK is verplicht.",
			extract: func(c *domain.Connection) string { return c.AuthorizedSignatory },
		},
		{
			ruleKey: "req.telemetry_code", ruleName: "Verplicht: Telemetriecode", field: "telemetryCode",
			message: "Telemetriecode / Meetcode is verplicht. Kies ONBEKEND als je dit niet weet.",
			extract: func(c *domain.Connection) string { return c.TelemetryCode },
		},
		{
			ruleKey: "req.delivery_street", ruleName: "Verplicht: Straat levering", field: "deliveryStreet",
			message: "Straat van leveringsadres is verplicht.",
			extract: func(c *domain.Connection) string { return c.DeliveryStreet },
		},
		{
			ruleKey: "req.delivery_house_number", ruleName: "Verplicht: Huisnummer levering", field: "deliveryHouseNumber",
			message: "Huisnummer van leveringsadres is verplicht.",
			extract: func(c *domain.Connection) string { return c.DeliveryHouseNumber },
		},
		{
			ruleKey: "req.delivery_postcode", ruleName: "Verplicht: Postcode levering", field: "deliveryPostcode",
			message: "Postcode van leveringsadres is verplicht.",
			extract: func(c *domain.Connection) string { return c.DeliveryPostcode },
		},
		{
			ruleKey: "req.delivery_city", ruleName: "Verplicht: Plaats levering", field: "deliveryCity",
			message: "Plaats van leveringsadres is verplicht.",
			extract: func(c *domain.Connection) string { return c.DeliveryCity },
		},
		{
			ruleKey: "req.market_segment", ruleName: "Verplicht: Marktsegment", field: "marketSegment",
			message: "Kies een marktsegment.",
			extract: func(c *domain.Connection) string { return c.MarketSegment },
		},
		{
			ruleKey: "req.invoice_street", ruleName: "Verplicht: Straat factuur", field: "invoiceStreet",
			message: "Straat van factuuradres is verplicht.",
			extract: func(c *domain.Connection) string { return c.InvoiceStreet },
			when:    invoiceAddressRequired,
		},
		{
			ruleKey: "req.invoice_house_number", ruleName: "Verplicht: Huisnummer factuur", field: "invoiceHouseNumber",
			message: "Huisnummer van factuuradres is verplicht.",
			extract: func(c *domain.Connection) string { return c.InvoiceHouseNumber },
			when:    invoiceAddressRequired,
		},
		{
			ruleKey: "req.invoice_postcode", ruleName: "Verplicht: Postcode factuur", field: "invoicePostcode",
			message: "Postcode van factuuradres is verplicht.",
			extract: func(c *domain.Connection) string { return c.InvoicePostcode },
			when:    invoiceAddressRequired,
		},
		{
			ruleKey: "req.invoice_city", ruleName: "Verplicht: Plaats factuur", field: "invoiceCity",
			message: "Plaats van factuuradres is verplicht.",
			extract: func(c *domain.Connection) string { return c.InvoiceCity },
			when:    invoiceAddressRequired,
		},
	}
}
