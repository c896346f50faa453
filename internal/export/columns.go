package export

import (
	"strings"
	"time"

	"aansluitintake/internal/domain"
)

// Column couples a connection field key to its Dutch export header.
type Column struct {
	Key   string
	Label string
}

// Columns is the export column set, in sheet order. All three renderers
// (CSV, XLSX, PDF) derive from the same list so the outputs stay in sync.
var Columns = []Column{
	{Key: "eanCode", Label: "EAN code"},
	{Key: "product", Label: "Product"},
	{Key: "tenaamstelling", Label: "Tenaamstelling"},
	{Key: "kvkNumber", Label: "KvK"},
	{Key: "legalForm", Label: "Rechtsvorm"},
	{Key: "iban", Label: "IBAN"},
	{Key: "authorizedSignatory", Label: "Tekenbevoegde"},
	{Key: "telemetryCode", Label: "Telemetriecode"},
	{Key: "telemetryType", Label: "Telemetrie type"},
	{Key: "deliveryPostcode", Label: "Postcode levering"},
	{Key: "deliveryHouseNumber", Label: "Huisnummer levering"},
	{Key: "deliveryAddition", Label: "Toevoeging levering"},
	{Key: "deliveryStreet", Label: "Straat levering"},
	{Key: "deliveryCity", Label: "Plaats levering"},
	{Key: "invoiceSameAsDelivery", Label: "Factuuradres = levering"},
	{Key: "invoicePostcode", Label: "Postcode factuur"},
	{Key: "invoiceHouseNumber", Label: "Huisnummer factuur"},
	{Key: "invoiceAddition", Label: "Toevoeging factuur"},
	{Key: "invoiceStreet", Label: "Straat factuur"},
	{Key: "invoiceCity", Label: "Plaats factuur"},
	{Key: "gridOperator", Label: "Netbeheerder"},
	{Key: "supplier", Label: "Leverancier"},
	{Key: "marketSegment", Label: "Segment"},
	{Key: "department", Label: "Afdeling"},
	{Key: "meterNumber", Label: "Meternummer"},
	{Key: "annualUsageNormal", Label: "Jaarverbruik hoog"},
	{Key: "annualUsageLow", Label: "Jaarverbruik laag"},
	{Key: "status", Label: "Status"},
	{Key: "notes", Label: "Notities"},
	{Key: "createdAt", Label: "Aangemaakt"},
	{Key: "source", Label: "Bron"},
}

// Headers returns the header labels in column order.
func Headers() []string {
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Label
	}
	return headers
}

// invoiceSameAsDelivery treats a record with an unticked flag but no invoice
// address at all as mirrored, so half-filled records still export a usable
// invoice address.
func invoiceSameAsDelivery(c *domain.Connection) bool {
	return c.InvoiceSameAsDelivery ||
		(c.InvoiceStreet == "" && c.InvoiceHouseNumber == "" &&
			c.InvoicePostcode == "" && c.InvoiceCity == "")
}

// Value resolves one export column for a connection. Invoice address columns
// mirror the delivery address when the invoice side is the same.
func Value(c *domain.Connection, key string) string {
	invoiceSame := invoiceSameAsDelivery(c)

	switch key {
	case "eanCode":
		return c.EANCode
	case "product":
		return c.Product
	case "tenaamstelling":
		return c.Tenaamstelling
	case "kvkNumber":
		return c.KvkNumber
	case "legalForm":
		return c.LegalForm
	case "iban":
		return c.IBAN
	case "authorizedSignatory":
		return c.AuthorizedSignatory
	case "telemetryCode":
		return c.TelemetryCode
	case "telemetryType":
		return c.TelemetryType
	case "deliveryPostcode":
		return c.DeliveryPostcode
	case "deliveryHouseNumber":
		return c.DeliveryHouseNumber
	case "deliveryAddition":
		return c.DeliveryAddition
	case "deliveryStreet":
		return c.DeliveryStreet
	case "deliveryCity":
		return c.DeliveryCity
	case "invoiceSameAsDelivery":
		if invoiceSame {
			return "Ja"
		}
		return "Nee"
	case "invoicePostcode":
		if invoiceSame {
			return c.DeliveryPostcode
		}
		return c.InvoicePostcode
	case "invoiceHouseNumber":
		if invoiceSame {
			return c.DeliveryHouseNumber
		}
		return c.InvoiceHouseNumber
	case "invoiceAddition":
		if invoiceSame {
			return c.DeliveryAddition
		}
		return c.InvoiceAddition
	case "invoiceStreet":
		if invoiceSame {
			return c.DeliveryStreet
		}
		return c.InvoiceStreet
	case "invoiceCity":
		if invoiceSame {
			return c.DeliveryCity
		}
		return c.InvoiceCity
	case "gridOperator":
		return c.GridOperator
	case "supplier":
		return c.Supplier
	case "marketSegment":
		return c.MarketSegment
	case "department":
		return c.Department
	case "meterNumber":
		return c.MeterNumber
	case "annualUsageNormal":
		return c.AnnualUsageNormal
	case "annualUsageLow":
		return c.AnnualUsageLow
	case "status":
		return c.Status
	case "notes":
		return c.Notes
	case "createdAt":
		return c.CreatedAt.Format(time.RFC3339)
	case "source":
		return string(c.Source)
	}
	return ""
}

// Row renders a connection to a string slice in column order.
func Row(c *domain.Connection) []string {
	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i] = Value(c, col.Key)
	}
	return row
}

// FormatAddress joins address parts into "Street 12 A, 1234 AB Plaats".
// Returns "-" when every part is empty.
func FormatAddress(street, houseNumber, addition, postcode, city string) string {
	var line1Parts []string
	for _, part := range []string{street, houseNumber, addition} {
		if strings.TrimSpace(part) != "" {
			line1Parts = append(line1Parts, part)
		}
	}
	var line2Parts []string
	for _, part := range []string{postcode, city} {
		if strings.TrimSpace(part) != "" {
			line2Parts = append(line2Parts, part)
		}
	}

	line1 := strings.Join(line1Parts, " ")
	line2 := strings.Join(line2Parts, " ")
	switch {
	case line1 == "" && line2 == "":
		return "-"
	case line2 == "":
		return line1
	case line1 == "":
		return line2
	}
	return line1 + ", " + line2
}
