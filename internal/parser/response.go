package parser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/extract"
	"aansluitintake/internal/port"
)

// aiRecord is one connection object as the model returns it. The outer
// pointer field shadows the embedded bool so an omitted
// invoiceSameAsDelivery can be told apart from an explicit false.
type aiRecord struct {
	domain.Connection
	InvoiceSame *bool `json:"invoiceSameAsDelivery"`
}

type aiEnvelope struct {
	Connections []aiRecord `json:"connections"`
	Warning     string     `json:"warning"`
}

// DecodeRecords decodes the model's JSON answer into domain connections.
// Values run through the same normalizers as the heuristic engine so both
// extraction paths produce the same shapes.
func DecodeRecords(text string, opts port.ExtractOptions) ([]domain.Connection, string, error) {
	var envelope aiEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, "", fmt.Errorf("decoding model JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	records := envelope.Connections
	if !opts.AllowMultiple && len(records) > 1 {
		records = records[:1]
	}

	connections := make([]domain.Connection, 0, len(records))
	for _, r := range records {
		conn := r.Connection
		if !hasBusinessContent(&conn) {
			continue
		}

		conn.ID = uuid.New()
		conn.CreatedAt = time.Now().UTC()
		conn.Source = opts.Source

		if r.InvoiceSame != nil {
			conn.InvoiceSameAsDelivery = *r.InvoiceSame
		} else {
			conn.InvoiceSameAsDelivery = !conn.HasInvoiceAddress()
		}

		conn.EANCode = extract.NormalizeEAN(conn.EANCode)
		if product, ok := extract.NormalizeProduct(conn.Product); ok {
			conn.Product = product
		}
		if segment, ok := extract.NormalizeMarketSegment(conn.MarketSegment); ok {
			conn.MarketSegment = segment
		}
		conn.DeliveryPostcode = extract.NormalizePostcode(conn.DeliveryPostcode)
		conn.InvoicePostcode = extract.NormalizePostcode(conn.InvoicePostcode)
		conn.IBAN = extract.NormalizeIBAN(conn.IBAN)
		conn.KvkNumber = extract.NormalizeKvk(conn.KvkNumber)
		domain.Normalize(&conn)

		connections = append(connections, conn)
	}

	return connections, strings.TrimSpace(envelope.Warning), nil
}

// hasBusinessContent filters out records the model returned empty. A bare
// telemetry sentinel or address warning is not a record.
func hasBusinessContent(c *domain.Connection) bool {
	fields := []string{
		c.EANCode, c.Product, c.Tenaamstelling, c.KvkNumber, c.IBAN,
		c.AuthorizedSignatory, c.MeterNumber, c.GridOperator, c.Supplier,
		c.MarketSegment, c.DeliveryStreet, c.DeliveryPostcode, c.DeliveryCity,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
