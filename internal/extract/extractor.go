package extract

import (
	"regexp"
	"strings"

	"aansluitintake/internal/domain"
)

// Options controls a text extraction run.
type Options struct {
	Source        domain.ConnectionSource
	AllowMultiple bool
	SplitMode     domain.SplitMode
}

// DefaultOptions are the options used for photo OCR intake.
func DefaultOptions() Options {
	return Options{
		Source:        domain.SourceOCRPhoto,
		AllowMultiple: true,
		SplitMode:     domain.SplitModeAuto,
	}
}

var (
	labelValueRe = regexp.MustCompile(`^(.+?)[:\-]\s*(.+)$`)
	spacedRe     = regexp.MustCompile(`^(.+?)\s{2,}(.+)$`)
	looseRe      = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9\s/-]{2,25})\s+(.+)$`)
	kvkTokenRe   = regexp.MustCompile(`\b(\d{8})\b`)
)

// blockFields accumulates extracted values for one block. Every assignment is
// first-wins; later hits for the same field are ignored.
type blockFields struct {
	values      map[Field]string
	invoiceSame *bool
}

func newBlockFields() *blockFields {
	return &blockFields{values: make(map[Field]string)}
}

func (bf *blockFields) has(field Field) bool {
	_, ok := bf.values[field]
	return ok
}

func (bf *blockFields) get(field Field) string {
	return bf.values[field]
}

func (bf *blockFields) setIfAbsent(field Field, value string) {
	if value == "" {
		return
	}
	if _, ok := bf.values[field]; !ok {
		bf.values[field] = value
	}
}

func (bf *blockFields) setInvoiceSame(v bool) {
	bf.invoiceSame = &v
}

// hasBusinessFields reports whether the block produced anything beyond the
// draft defaults. Records that only carry a telemetry code or an address
// warning are considered empty and dropped.
func (bf *blockFields) hasBusinessFields() bool {
	for field := range bf.values {
		if field != FieldTelemetryCode && field != FieldAddressWarning {
			return true
		}
	}
	return false
}

// ExtractConnections runs the heuristic engine over free-form intake text and
// returns draft connection records. It never fails: unusable text simply
// yields no records.
func ExtractConnections(text string, opts Options) []domain.Connection {
	if opts.Source == "" {
		opts.Source = domain.SourceOCRPhoto
	}
	if opts.SplitMode == "" {
		opts.SplitMode = domain.SplitModeAuto
	}

	blocks := SplitIntoBlocks(text, opts.SplitMode)
	if !opts.AllowMultiple && len(blocks) > 1 {
		blocks = blocks[:1]
	}

	var connections []domain.Connection
	for _, block := range blocks {
		fields := extractFieldsFromBlock(block)
		eans := FindEANCodes(block)
		if opts.AllowMultiple && len(eans) > 1 {
			for _, ean := range eans {
				conn := domain.NewDraftConnection(opts.Source)
				fields.apply(&conn)
				conn.EANCode = ean
				connections = append(connections, conn)
			}
			continue
		}
		if len(eans) > 0 {
			fields.setIfAbsent(FieldEANCode, eans[0])
		}
		if !fields.hasBusinessFields() {
			continue
		}
		conn := domain.NewDraftConnection(opts.Source)
		fields.apply(&conn)
		connections = append(connections, conn)
	}
	return connections
}

func extractFieldsFromBlock(block string) *blockFields {
	fields := newBlockFields()
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}

	labeled := extractLabeledAddresses(lines)
	if labeled.delivery != nil {
		fields.applyCandidate(labeled.delivery, false)
	}
	if labeled.invoice != nil {
		fields.applyCandidate(labeled.invoice, true)
		fields.setInvoiceSame(false)
	}
	if labeled.warning != "" {
		fields.setIfAbsent(FieldAddressWarning, labeled.warning)
	}

	for _, line := range lines {
		m := labelValueRe.FindStringSubmatch(line)
		if m == nil {
			m = spacedRe.FindStringSubmatch(line)
		}
		if m == nil {
			m = looseRe.FindStringSubmatch(line)
		}
		if m != nil {
			fields.applyLabelValue(m[1], m[2])
		}
	}

	if !fields.has(FieldEANCode) {
		if eans := FindEANCodes(block); len(eans) > 0 {
			fields.setIfAbsent(FieldEANCode, eans[0])
		}
	}
	if !fields.has(FieldProduct) {
		if product, ok := NormalizeProduct(block); ok {
			fields.setIfAbsent(FieldProduct, product)
		}
	}
	if !fields.has(FieldMarketSegment) {
		if segment, ok := NormalizeMarketSegment(block); ok {
			fields.setIfAbsent(FieldMarketSegment, segment)
		}
	}
	if !fields.has(FieldKvkNumber) {
		collapsed := whitespaceRe.ReplaceAllString(block, " ")
		if m := kvkTokenRe.FindStringSubmatch(collapsed); m != nil {
			fields.setIfAbsent(FieldKvkNumber, m[1])
		}
	}
	if !fields.has(FieldTelemetryType) {
		for _, line := range lines {
			normalized := NormalizeLabel(line)
			if strings.Contains(normalized, "telemetrie") || strings.Contains(normalized, "telemetry") {
				if telemetry := NormalizeTelemetryType(line); telemetry != "" {
					fields.setIfAbsent(FieldTelemetryType, telemetry)
				}
				break
			}
		}
	}

	var safeLines []string
	hasSupplierLine := false
	for _, line := range lines {
		if lineHasIgnoreWord(line) {
			hasSupplierLine = true
		} else {
			safeLines = append(safeLines, line)
		}
	}

	if !fields.has(FieldDeliveryStreet) || !fields.has(FieldDeliveryHouseNumber) {
		for _, line := range safeLines {
			if address := ParseAddress(line); address != nil {
				fields.setAddress(address, false)
				break
			}
		}
	}
	if !fields.has(FieldDeliveryPostcode) || !fields.has(FieldDeliveryCity) {
		if pc := FindPostcodeAndCity(strings.Join(safeLines, "\n"), true); pc != nil {
			fields.setIfAbsent(FieldDeliveryPostcode, pc.Postcode)
			fields.setIfAbsent(FieldDeliveryCity, pc.City)
		}
	}

	// Last resort: take the supplier's address, but flag it.
	if (!fields.has(FieldDeliveryStreet) || !fields.has(FieldDeliveryHouseNumber)) && hasSupplierLine {
		for _, line := range lines {
			if !lineHasIgnoreWord(line) {
				continue
			}
			if address := ParseAddress(line); address != nil {
				fields.setAddress(address, false)
				fields.setIfAbsent(FieldAddressWarning, SupplierAddressWarning)
				break
			}
		}
	}
	if (!fields.has(FieldDeliveryPostcode) || !fields.has(FieldDeliveryCity)) && hasSupplierLine {
		if pc := FindPostcodeAndCity(strings.Join(lines, "\n"), false); pc != nil {
			fields.setIfAbsent(FieldDeliveryPostcode, pc.Postcode)
			fields.setIfAbsent(FieldDeliveryCity, pc.City)
			fields.setIfAbsent(FieldAddressWarning, SupplierAddressWarning)
		}
	}

	if fields.has(FieldInvoiceStreet) || fields.has(FieldInvoiceHouseNumber) ||
		fields.has(FieldInvoicePostcode) || fields.has(FieldInvoiceCity) {
		fields.setInvoiceSame(false)
	}

	return fields
}

func (bf *blockFields) applyCandidate(candidate *addressCandidate, invoice bool) {
	if candidate.address != nil {
		bf.setAddress(candidate.address, invoice)
	}
	if candidate.postcodeCity != nil {
		if invoice {
			bf.setIfAbsent(FieldInvoicePostcode, candidate.postcodeCity.Postcode)
			bf.setIfAbsent(FieldInvoiceCity, candidate.postcodeCity.City)
		} else {
			bf.setIfAbsent(FieldDeliveryPostcode, candidate.postcodeCity.Postcode)
			bf.setIfAbsent(FieldDeliveryCity, candidate.postcodeCity.City)
		}
	}
}

func (bf *blockFields) setAddress(address *Address, invoice bool) {
	if invoice {
		bf.setIfAbsent(FieldInvoiceStreet, address.Street)
		bf.setIfAbsent(FieldInvoiceHouseNumber, address.HouseNumber)
		if address.Addition != "" {
			bf.setIfAbsent(FieldInvoiceAddition, address.Addition)
		}
	} else {
		bf.setIfAbsent(FieldDeliveryStreet, address.Street)
		bf.setIfAbsent(FieldDeliveryHouseNumber, address.HouseNumber)
		if address.Addition != "" {
			bf.setIfAbsent(FieldDeliveryAddition, address.Addition)
		}
	}
}

// applyAddressValue routes a generic "adres" label to the delivery or invoice
// address fields. Labels carrying a supplier word only leave a warning.
func (bf *blockFields) applyAddressValue(invoice bool, label, rawValue string) {
	if lineHasIgnoreWord(label) {
		bf.setIfAbsent(FieldAddressWarning, SupplierAddressWarning)
		return
	}
	if address := ParseAddress(rawValue); address != nil {
		bf.setAddress(address, invoice)
	}
	if pc := FindPostcodeAndCity(rawValue, true); pc != nil {
		if invoice {
			bf.setIfAbsent(FieldInvoicePostcode, pc.Postcode)
			bf.setIfAbsent(FieldInvoiceCity, pc.City)
		} else {
			bf.setIfAbsent(FieldDeliveryPostcode, pc.Postcode)
			bf.setIfAbsent(FieldDeliveryCity, pc.City)
		}
	}
	if invoice {
		bf.setInvoiceSame(false)
	}
}

func (bf *blockFields) applyLabelValue(label, value string) {
	normalizedLabel := NormalizeLabel(label)
	for _, alias := range genericAddressAliases {
		if strings.Contains(normalizedLabel, NormalizeLabel(alias)) {
			bf.applyAddressValue(lineHasLabel(label, invoiceAddressLabels), label, value)
			return
		}
	}

	field, ok := MatchLabelToField(label)
	if !ok {
		return
	}
	normalizedValue := strings.TrimSpace(value)
	if normalizedValue == "" {
		return
	}

	switch field {
	case FieldEANCode:
		bf.setIfAbsent(FieldEANCode, NormalizeEAN(normalizedValue))
	case FieldKvkNumber:
		bf.setIfAbsent(FieldKvkNumber, NormalizeKvk(normalizedValue))
	case FieldIBAN:
		bf.setIfAbsent(FieldIBAN, NormalizeIBAN(normalizedValue))
	case FieldDeliveryPostcode:
		if pc := FindPostcodeAndCity(normalizedValue, true); pc != nil {
			bf.setIfAbsent(FieldDeliveryPostcode, pc.Postcode)
			bf.setIfAbsent(FieldDeliveryCity, pc.City)
		} else {
			bf.setIfAbsent(FieldDeliveryPostcode, NormalizePostcode(normalizedValue))
		}
	case FieldInvoicePostcode:
		if pc := FindPostcodeAndCity(normalizedValue, true); pc != nil {
			bf.setIfAbsent(FieldInvoicePostcode, pc.Postcode)
			bf.setIfAbsent(FieldInvoiceCity, pc.City)
		} else {
			bf.setIfAbsent(FieldInvoicePostcode, NormalizePostcode(normalizedValue))
		}
		bf.setInvoiceSame(false)
	case FieldProduct:
		if product, ok := NormalizeProduct(normalizedValue); ok {
			bf.setIfAbsent(FieldProduct, product)
		} else {
			bf.setIfAbsent(FieldProduct, normalizedValue)
		}
	case FieldMarketSegment:
		if segment, ok := NormalizeMarketSegment(normalizedValue); ok {
			bf.setIfAbsent(FieldMarketSegment, segment)
		} else {
			bf.setIfAbsent(FieldMarketSegment, normalizedValue)
		}
	case FieldDeliveryStreet:
		if address := ParseAddress(normalizedValue); address != nil {
			bf.setAddress(address, false)
		} else {
			bf.setIfAbsent(FieldDeliveryStreet, normalizedValue)
		}
	case FieldInvoiceStreet:
		if address := ParseAddress(normalizedValue); address != nil {
			bf.setAddress(address, true)
		} else {
			bf.setIfAbsent(FieldInvoiceStreet, normalizedValue)
		}
		bf.setInvoiceSame(false)
	case FieldTelemetryType:
		if telemetry := NormalizeTelemetryType(normalizedValue); telemetry != "" {
			bf.setIfAbsent(FieldTelemetryType, telemetry)
		}
	case FieldTelemetryCode:
		bf.setIfAbsent(FieldTelemetryCode, NormalizeTelemetryCode(normalizedValue))
	case FieldInvoiceSameAsDelivery:
		lower := strings.ToLower(normalizedValue)
		if strings.Contains(lower, "nee") {
			bf.setInvoiceSame(false)
		}
		if strings.Contains(lower, "ja") {
			bf.setInvoiceSame(true)
		}
	case FieldID, FieldCreatedAt, FieldSource, FieldAddressWarning:
		// metadata labels never overwrite record bookkeeping
	default:
		bf.setIfAbsent(field, normalizedValue)
	}
}

// apply copies the accumulated values onto a draft connection.
func (bf *blockFields) apply(c *domain.Connection) {
	for field, value := range bf.values {
		switch field {
		case FieldEANCode:
			c.EANCode = value
		case FieldProduct:
			c.Product = value
		case FieldTenaamstelling:
			c.Tenaamstelling = value
		case FieldKvkNumber:
			c.KvkNumber = value
		case FieldIBAN:
			c.IBAN = value
		case FieldAuthorizedSignatory:
			c.AuthorizedSignatory = value
		case FieldDepartment:
			c.Department = value
		case FieldDeliveryStreet:
			c.DeliveryStreet = value
		case FieldDeliveryHouseNumber:
			c.DeliveryHouseNumber = value
		case FieldDeliveryAddition:
			c.DeliveryAddition = value
		case FieldDeliveryPostcode:
			c.DeliveryPostcode = value
		case FieldDeliveryCity:
			c.DeliveryCity = value
		case FieldInvoiceStreet:
			c.InvoiceStreet = value
		case FieldInvoiceHouseNumber:
			c.InvoiceHouseNumber = value
		case FieldInvoiceAddition:
			c.InvoiceAddition = value
		case FieldInvoicePostcode:
			c.InvoicePostcode = value
		case FieldInvoiceCity:
			c.InvoiceCity = value
		case FieldGridOperator:
			c.GridOperator = value
		case FieldSupplier:
			c.Supplier = value
		case FieldMarketSegment:
			c.MarketSegment = value
		case FieldTelemetryCode:
			c.TelemetryCode = value
		case FieldTelemetryType:
			c.TelemetryType = value
		case FieldMeterNumber:
			c.MeterNumber = value
		case FieldAnnualUsageNormal:
			c.AnnualUsageNormal = value
		case FieldAnnualUsageLow:
			c.AnnualUsageLow = value
		case FieldStatus:
			c.Status = value
		case FieldNotes:
			c.Notes = value
		case FieldAddressWarning:
			c.AddressWarning = value
		}
	}
	if bf.invoiceSame != nil {
		c.InvoiceSameAsDelivery = *bf.invoiceSame
	}
}
