package extract

// Field identifies a connection field targeted by the label matcher. Values
// match the JSON field names of domain.Connection.
type Field string

const (
	FieldID                    Field = "id"
	FieldEANCode               Field = "eanCode"
	FieldProduct               Field = "product"
	FieldTenaamstelling        Field = "tenaamstelling"
	FieldKvkNumber             Field = "kvkNumber"
	FieldIBAN                  Field = "iban"
	FieldAuthorizedSignatory   Field = "authorizedSignatory"
	FieldDepartment            Field = "department"
	FieldDeliveryStreet        Field = "deliveryStreet"
	FieldDeliveryHouseNumber   Field = "deliveryHouseNumber"
	FieldDeliveryAddition      Field = "deliveryAddition"
	FieldDeliveryPostcode      Field = "deliveryPostcode"
	FieldDeliveryCity          Field = "deliveryCity"
	FieldInvoiceStreet         Field = "invoiceStreet"
	FieldInvoiceHouseNumber    Field = "invoiceHouseNumber"
	FieldInvoiceAddition       Field = "invoiceAddition"
	FieldInvoicePostcode       Field = "invoicePostcode"
	FieldInvoiceCity           Field = "invoiceCity"
	FieldGridOperator          Field = "gridOperator"
	FieldSupplier              Field = "supplier"
	FieldMarketSegment         Field = "marketSegment"
	FieldTelemetryCode         Field = "telemetryCode"
	FieldTelemetryType         Field = "telemetryType"
	FieldMeterNumber           Field = "meterNumber"
	FieldAnnualUsageNormal     Field = "annualUsageNormal"
	FieldAnnualUsageLow        Field = "annualUsageLow"
	FieldStatus                Field = "status"
	FieldNotes                 Field = "notes"
	FieldCreatedAt             Field = "createdAt"
	FieldSource                Field = "source"
	FieldInvoiceSameAsDelivery Field = "invoiceSameAsDelivery"
	FieldAddressWarning        Field = "addressWarning"
)

type fieldAliases struct {
	field   Field
	aliases []string
}

// labelAliases is the Dutch intake vocabulary. Order matters: the matcher
// walks the table top to bottom and the first containment hit wins.
var labelAliases = []fieldAliases{
	{FieldID, []string{"id"}},
	{FieldEANCode, []string{
		"ean",
		"ean code",
		"ean-code",
		"ean nr",
		"ean nummer",
		"aansluitnummer",
		"ean nummer",
	}},
	{FieldProduct, []string{
		"product",
		"energieproduct",
		"soort product",
		"energie type",
		"type product",
	}},
	{FieldTenaamstelling, []string{
		"tenaamstelling",
		"naam op contract",
		"naam op factuur",
		"contractant",
		"contract naam",
		"factuurnaam",
		"bedrijfsnaam",
		"klantnaam",
		"klant",
		"naam klant",
	}},
	{FieldKvkNumber, []string{"kvk", "kvk nummer", "kvk-nummer", "kvk nr"}},
	{FieldIBAN, []string{"iban", "rekeningnummer", "account number", "bankrekening"}},
	{FieldAuthorizedSignatory, []string{
		"tekenbevoegde",
		"tekenbevoegd",
		"tekenbevoegde volgens kvk",
		"vertegenwoordiger",
	}},
	{FieldDepartment, []string{"afdeling", "department", "dept"}},
	{FieldDeliveryStreet, []string{"straat", "straatnaam", "straat naam", "adres straat"}},
	{FieldDeliveryHouseNumber, []string{"huisnummer", "huis nummer", "hnr", "nr", "huisnr", "huis nr"}},
	{FieldDeliveryAddition, []string{
		"toevoeging",
		"huisnummer toevoeging",
		"huisnr toevoeging",
		"bus",
		"bis",
		"app",
	}},
	{FieldDeliveryPostcode, []string{"postcode", "post code", "postal code", "zip"}},
	{FieldDeliveryCity, []string{"plaats", "stad", "city", "woonplaats"}},
	{FieldInvoiceStreet, []string{"factuurstraat", "straat factuur", "factuuradres straat"}},
	{FieldInvoiceHouseNumber, []string{"factuur huisnummer", "huisnummer factuur", "factuur huis nr"}},
	{FieldInvoiceAddition, []string{
		"factuur toevoeging",
		"toevoeging factuur",
		"factuur bus",
	}},
	{FieldInvoicePostcode, []string{"factuur postcode", "postcode factuur"}},
	{FieldInvoiceCity, []string{"factuur plaats", "plaats factuur"}},
	{FieldGridOperator, []string{"netbeheerder", "grid operator", "netbeheerder naam"}},
	{FieldSupplier, []string{"leverancier", "energieleverancier", "supplier"}},
	{FieldMarketSegment, []string{"marktsegment", "segment", "kv/gv", "markt segment", "segmentatie"}},
	{FieldTelemetryCode, []string{
		"telemetriecode",
		"telemetrycode",
		"meetcode",
		"meet code",
	}},
	{FieldTelemetryType, []string{"telemetrie", "telemetry", "telemetrie type", "telemetrie aanwezig"}},
	{FieldMeterNumber, []string{"meternummer", "meter nummer", "meter nr"}},
	{FieldAnnualUsageNormal, []string{"jaarverbruik hoog", "jaarverbruik normaal", "verbruik hoog", "jaargebruik hoog"}},
	{FieldAnnualUsageLow, []string{"jaarverbruik laag", "verbruik laag", "jaargebruik laag"}},
	{FieldStatus, []string{"status", "fase"}},
	{FieldNotes, []string{"notities", "opmerking", "remarks", "opmerkingen"}},
	{FieldCreatedAt, []string{"aangemaakt", "created"}},
	{FieldSource, []string{"bron", "source"}},
	{FieldInvoiceSameAsDelivery, []string{"factuuradres gelijk aan leveringsadres", "factuuradres hetzelfde"}},
	{FieldAddressWarning, nil},
}

var deliveryAddressLabels = []string{
	"leveringsadres", "aansluitadres", "adres aansluiting", "adres aansluit", "klantadres",
}

var invoiceAddressLabels = []string{
	"factuuradres", "facturatieadres", "billing address", "postadres",
}

// addressIgnoreWords mark lines that belong to the supplier or grid operator
// rather than the customer.
var addressIgnoreWords = []string{"leverancier", "netbeheerder", "afzender"}

var genericAddressAliases = []string{"adres", "locatie adres", "adres locatie", "adresregel", "adres regel"}
