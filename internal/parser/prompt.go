package parser

import "aansluitintake/internal/port"

// BuildConnectionPrompt returns the extraction prompt for Dutch energy
// connection documents. The model answers with the JSON contract decoded by
// DecodeRecords.
func BuildConnectionPrompt(opts port.ExtractOptions) string {
	multiple := `- The document may describe MULTIPLE connections (aansluitingen). Return one object per connection. A connection is usually anchored by its own 18-digit EAN code.`
	if !opts.AllowMultiple {
		multiple = `- Return exactly ONE connection object, even if the document mentions several. Use the first/main connection.`
	}

	return `You are a data extraction assistant for Dutch energy contracts. The input is (OCR'd) text or a scan of an intake document for energy connections (aansluitingen). Extract the data into JSON.

IMPORTANT INSTRUCTIONS:
` + multiple + `
- Field values are Dutch. Copy them as written, do not translate.
- "eanCode" is exactly 18 digits. Strip spaces and dashes.
- "product" is one of: Elektra, Gas, Water, Warmte, Onbekend.
- "marketSegment" is KV (kleinverbruik), GV (grootverbruik) or Onbekend.
- "telemetryType" is one of: Onbekend, Slimme meter, Maandbemeten, Jaarbemeten, Continu (kwartierwaarden).
- "telemetryCode" is the meetcode/telemetriecode. Use "ONBEKEND" when the document only says whether telemetry exists.
- Dutch postcodes look like "1234 AB", Belgian ones are 4 digits.
- Addresses split into street, house number and addition (e.g. "Stationsweg 12 A" -> "Stationsweg", "12", "A").
- NEVER use the address of the leverancier, netbeheerder or afzender as the delivery address. If you are not sure, set "addressWarning" to "Dit lijkt mogelijk het leverancieradres - controleer."
- Set "invoiceSameAsDelivery" to false only when the document shows a separate invoice address (factuuradres).
- Leave fields you cannot find as empty strings. Never guess.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation.

The JSON object has two top-level keys: "connections" (array) and "warning" (string, empty when there is nothing to flag).

Each connection object follows this schema:
{
  "eanCode": "",
  "product": "",
  "tenaamstelling": "",
  "kvkNumber": "",
  "iban": "",
  "authorizedSignatory": "",
  "authorizedSignatoryRole": "",
  "vatNumber": "",
  "contactEmail": "",
  "contactPhone": "",
  "website": "",
  "invoiceEmail": "",
  "telemetryCode": "",
  "telemetryType": "",
  "department": "",
  "meterNumber": "",
  "annualUsageNormal": "",
  "annualUsageLow": "",
  "gridOperator": "",
  "supplier": "",
  "marketSegment": "",
  "deliveryStreet": "",
  "deliveryHouseNumber": "",
  "deliveryAddition": "",
  "deliveryPostcode": "",
  "deliveryCity": "",
  "invoiceSameAsDelivery": true,
  "invoiceStreet": "",
  "invoiceHouseNumber": "",
  "invoiceAddition": "",
  "invoicePostcode": "",
  "invoiceCity": "",
  "notes": "",
  "addressWarning": ""
}`
}
