package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalize repairs a connection record in place. It runs on every read and
// write so that records captured by older clients (or sloppy AI output) end up
// in the current shape: telemetry sentinels enforced, IBAN canonicalized,
// company status keywords mapped, invoice flag consistent with the invoice
// address fields, id and timestamp backfilled.
func Normalize(c *Connection) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Source == "" {
		c.Source = SourceManual
	}

	c.TelemetryType = normalizeLegacyTelemetryType(c.TelemetryType)
	c.TelemetryCode = normalizeLegacyTelemetryCode(c.TelemetryCode)
	c.IBAN = strings.ToUpper(strings.Join(strings.Fields(c.IBAN), ""))
	c.CompanyActive = normalizeCompanyActive(c.CompanyActive)

	if c.HasInvoiceAddress() {
		c.InvoiceSameAsDelivery = false
	}
}

func normalizeLegacyTelemetryType(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "ja", "nee", "yes", "no":
		return "Onbekend"
	}
	return v
}

func normalizeLegacyTelemetryCode(v string) string {
	trimmed := strings.TrimSpace(v)
	switch strings.ToLower(trimmed) {
	case "", "ja", "nee", "yes", "no", "onbekend", "unknown", "nvt", "n.v.t.":
		return TelemetryCodeUnknown
	}
	return strings.ReplaceAll(strings.ToUpper(trimmed), " ", "")
}

func normalizeCompanyActive(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "active", "actief", "ja", "true", "1":
		return string(CompanyActiveYes)
	case "inactive", "inactief", "nee", "false", "0", "closed", "gesloten":
		return string(CompanyActiveNo)
	case "unknown", "onbekend", "nvt":
		return string(CompanyActiveUnknown)
	}
	return v
}
