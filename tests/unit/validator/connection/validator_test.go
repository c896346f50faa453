package connection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/validator/connection"
)

func validConnection(source domain.ConnectionSource) domain.Connection {
	conn := domain.NewDraftConnection(source)
	conn.EANCode = "123456789012345678"
	conn.Product = "Elektra"
	conn.Tenaamstelling = "Test BV"
	conn.KvkNumber = "12345678"
	conn.IBAN = "NL91ABNA0417164300"
	conn.AuthorizedSignatory = "Jan Jansen"
	conn.TelemetryCode = "ONBEKEND"
	conn.DeliveryStreet = "Straatnaam"
	conn.DeliveryHouseNumber = "12"
	conn.DeliveryPostcode = "1234 AB"
	conn.DeliveryCity = "Utrecht"
	conn.MarketSegment = "KV"
	return conn
}

func TestIsValidEAN(t *testing.T) {
	assert.True(t, connection.IsValidEAN("123456789012345678"))
	assert.True(t, connection.IsValidEAN("1234 5678 9012 3456 78"))
	assert.False(t, connection.IsValidEAN("123456"))
	assert.False(t, connection.IsValidEAN(""))
}

func TestIsValidPostcodeNLorBE(t *testing.T) {
	assert.True(t, connection.IsValidPostcodeNLorBE("1234 AB"))
	assert.True(t, connection.IsValidPostcodeNLorBE("1234AB"))
	assert.True(t, connection.IsValidPostcodeNLorBE("1234"))
	assert.False(t, connection.IsValidPostcodeNLorBE("12AB"))
	assert.False(t, connection.IsValidPostcodeNLorBE(""))
}

func TestIsValidKvk(t *testing.T) {
	assert.True(t, connection.IsValidKvk("12345678"))
	assert.True(t, connection.IsValidKvk("12 34 56 78"))
	assert.False(t, connection.IsValidKvk("1234"))
}

func TestIsValidIBAN(t *testing.T) {
	assert.True(t, connection.IsValidIBAN("NL91 ABNA 0417 1643 00"))
	assert.True(t, connection.IsValidIBAN("BE71 0961 2345 6769"))
	assert.False(t, connection.IsValidIBAN("NL00 BANK 0000 0000 00"))

	t.Run("rejects digit transpositions", func(t *testing.T) {
		assert.True(t, connection.IsValidIBAN("NL91ABNA0417164300"))
		assert.False(t, connection.IsValidIBAN("NL91ABNA0417164030"))
		assert.False(t, connection.IsValidIBAN("NL19ABNA0417164300"))
	})
}

func TestDetectLikelyOCRPostcodeError(t *testing.T) {
	suggested, likely := connection.DetectLikelyOCRPostcodeError("I234 A8")
	assert.True(t, likely)
	assert.Equal(t, "1234 AB", suggested)

	suggested, likely = connection.DetectLikelyOCRPostcodeError("I234")
	assert.True(t, likely)
	assert.Equal(t, "1234", suggested)

	_, likely = connection.DetectLikelyOCRPostcodeError("1234 AB")
	assert.False(t, likely)

	_, likely = connection.DetectLikelyOCRPostcodeError("")
	assert.False(t, likely)
}

func TestValidate_RequiredFields(t *testing.T) {
	draft := domain.NewDraftConnection(domain.SourceManual)
	report := connection.Validate(&draft)

	assert.Equal(t, "EAN-code is verplicht (18 cijfers).", report.Errors["eanCode"])
	assert.Equal(t, "Kies een product.", report.Errors["product"])
	assert.Equal(t, "Tenaamstelling is verplicht.", report.Errors["tenaamstelling"])
	assert.Equal(t, "KvK-nummer is verplicht.", report.Errors["kvkNumber"])
	assert.Equal(t, "IBAN is verplicht.", report.Errors["iban"])
	assert.Equal(t, "Tekenbevoegde volgens KvK is verplicht.", report.Errors["authorizedSignatory"])
	assert.Equal(t, "Postcode van leveringsadres is verplicht.", report.Errors["deliveryPostcode"])
	// the draft default ONBEKEND satisfies the telemetry code requirement
	assert.NotContains(t, report.Errors, "telemetryCode")
	assert.False(t, report.Valid())
}

func TestValidate_CleanRecordPasses(t *testing.T) {
	conn := validConnection(domain.SourceManual)
	report := connection.Validate(&conn)
	assert.Empty(t, report.Errors)
	assert.True(t, report.Valid())
	// sentinel telemetry code still warns
	assert.Contains(t, report.Warnings, "telemetryCode")
}

func TestValidate_OCRPostcodeSuggestion(t *testing.T) {
	conn := validConnection(domain.SourceOCRPhoto)
	conn.DeliveryPostcode = "I234 A8"

	report := connection.Validate(&conn)
	assert.Equal(t, "Postcode lijkt verkeerd herkend, controleer. Bedoeld: 1234 AB?", report.Errors["deliveryPostcode"])
}

func TestValidate_ManualPostcodeMessage(t *testing.T) {
	conn := validConnection(domain.SourceManual)
	conn.DeliveryPostcode = "12AB"

	report := connection.Validate(&conn)
	assert.Equal(t, "Ongeldige postcode. Gebruik NL (1234 AB) of BE (1234).", report.Errors["deliveryPostcode"])
}

func TestValidate_InvoiceAddressConditional(t *testing.T) {
	conn := validConnection(domain.SourceManual)
	conn.InvoiceSameAsDelivery = false

	report := connection.Validate(&conn)
	assert.Equal(t, "Straat van factuuradres is verplicht.", report.Errors["invoiceStreet"])
	assert.Equal(t, "Huisnummer van factuuradres is verplicht.", report.Errors["invoiceHouseNumber"])
	assert.Equal(t, "Postcode van factuuradres is verplicht.", report.Errors["invoicePostcode"])
	assert.Equal(t, "Plaats van factuuradres is verplicht.", report.Errors["invoiceCity"])

	conn.InvoiceStreet = "Postweg"
	conn.InvoiceHouseNumber = "3"
	conn.InvoicePostcode = "5678 CD"
	conn.InvoiceCity = "Den Haag"
	report = connection.Validate(&conn)
	assert.True(t, report.Valid())
}

func TestValidate_Warnings(t *testing.T) {
	conn := validConnection(domain.SourceOCRPhoto)
	conn.Product = "Onbekend"
	conn.MarketSegment = "Onbekend"
	conn.AddressWarning = "Dit lijkt mogelijk het leverancieradres - controleer."

	report := connection.Validate(&conn)
	require.True(t, report.Valid())
	assert.Equal(t, "Product staat op Onbekend. Controleer dit indien mogelijk.", report.Warnings["product"])
	assert.Equal(t, "Marktsegment staat op Onbekend. Controleer dit indien mogelijk.", report.Warnings["marketSegment"])
	assert.Equal(t, conn.AddressWarning, report.Warnings["deliveryStreet"])
}

func TestValidate_EnumMembership(t *testing.T) {
	conn := validConnection(domain.SourceManual)
	conn.Product = "Telefonie"
	conn.MarketSegment = "XL"
	conn.TelemetryType = "GPRS-modem"

	report := connection.Validate(&conn)
	assert.Equal(t, "Kies een product of Onbekend.", report.Errors["product"])
	assert.Equal(t, "Kies KV, GV of Onbekend.", report.Errors["marketSegment"])
	assert.Equal(t, "Kies een geldige telemetrie-optie.", report.Errors["telemetryType"])
}
