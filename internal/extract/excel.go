package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"aansluitintake/internal/domain"
)

// ExcelImportResult is the outcome of a spreadsheet import: the draft records
// plus the header mapping report for the operator.
type ExcelImportResult struct {
	Connections     []domain.Connection `json:"connections"`
	MappedHeaders   map[string]Field    `json:"mappedHeaders"`
	UnmappedHeaders []string            `json:"unmappedHeaders"`
}

// ExtractConnectionsFromExcel reads the first sheet of an xlsx workbook and
// maps its columns onto connection fields via the label matcher. Cells are
// normalized per field; unmapped headers are reported, not dropped silently.
func ExtractConnectionsFromExcel(r io.Reader) (*ExcelImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	result := &ExcelImportResult{MappedHeaders: map[string]Field{}}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return result, nil
	}

	headers := rows[0]
	mapping := make(map[int]Field)
	for i, header := range headers {
		if header == "" {
			continue
		}
		if field, ok := MatchLabelToField(header); ok {
			mapping[i] = field
			result.MappedHeaders[header] = field
		} else {
			result.UnmappedHeaders = append(result.UnmappedHeaders, header)
		}
	}

	for _, row := range rows[1:] {
		draft := domain.NewDraftConnection(domain.SourceExcel)
		for i := range headers {
			field, ok := mapping[i]
			if !ok {
				continue
			}
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			applyExcelValue(&draft, field, raw)
		}

		if draft.DeliveryPostcode == "" || draft.DeliveryCity == "" {
			if raw := cellByHeader(headers, row, "Postcode"); raw != "" {
				if pc := FindPostcodeAndCity(raw, true); pc != nil {
					if draft.DeliveryPostcode == "" {
						draft.DeliveryPostcode = pc.Postcode
					}
					if draft.DeliveryCity == "" {
						draft.DeliveryCity = pc.City
					}
				}
			}
		}
		rowText := strings.Join(row, " | ")
		if draft.Product == "" {
			if product, ok := NormalizeProduct(rowText); ok {
				draft.Product = product
			}
		}
		if draft.MarketSegment == "" {
			if segment, ok := NormalizeMarketSegment(rowText); ok {
				draft.MarketSegment = segment
			}
		}
		if draft.HasInvoiceAddress() {
			draft.InvoiceSameAsDelivery = false
		}
		result.Connections = append(result.Connections, draft)
	}

	return result, nil
}

func cellByHeader(headers, row []string, name string) string {
	for i, header := range headers {
		if header == name && i < len(row) {
			return row[i]
		}
	}
	return ""
}

func applyExcelValue(draft *domain.Connection, field Field, raw string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return
	}
	switch field {
	case FieldEANCode:
		draft.EANCode = NormalizeEAN(value)
	case FieldDeliveryPostcode:
		draft.DeliveryPostcode = NormalizePostcode(value)
	case FieldInvoicePostcode:
		draft.InvoicePostcode = NormalizePostcode(value)
	case FieldKvkNumber:
		draft.KvkNumber = NormalizeKvk(value)
	case FieldProduct:
		if product, ok := NormalizeProduct(value); ok {
			draft.Product = product
		} else {
			draft.Product = value
		}
	case FieldMarketSegment:
		if segment, ok := NormalizeMarketSegment(value); ok {
			draft.MarketSegment = segment
		} else {
			draft.MarketSegment = value
		}
	case FieldTelemetryType:
		if telemetry := NormalizeTelemetryType(value); telemetry != "" {
			draft.TelemetryType = telemetry
		}
	case FieldTelemetryCode:
		draft.TelemetryCode = NormalizeTelemetryCode(value)
	case FieldIBAN:
		draft.IBAN = NormalizeIBAN(value)
	case FieldInvoiceSameAsDelivery:
		switch strings.ToLower(value) {
		case "ja", "yes", "true", "1":
			draft.InvoiceSameAsDelivery = true
		case "nee", "no", "false", "0":
			draft.InvoiceSameAsDelivery = false
		}
	case FieldDeliveryStreet:
		if draft.DeliveryHouseNumber == "" {
			if address := ParseAddress(value); address != nil {
				draft.DeliveryStreet = address.Street
				draft.DeliveryHouseNumber = address.HouseNumber
				if address.Addition != "" {
					draft.DeliveryAddition = address.Addition
				}
				return
			}
		}
		draft.DeliveryStreet = value
	case FieldInvoiceStreet:
		if draft.InvoiceHouseNumber == "" {
			if address := ParseAddress(value); address != nil {
				draft.InvoiceStreet = address.Street
				draft.InvoiceHouseNumber = address.HouseNumber
				if address.Addition != "" {
					draft.InvoiceAddition = address.Addition
				}
				draft.InvoiceSameAsDelivery = false
				return
			}
		}
		draft.InvoiceStreet = value
	case FieldTenaamstelling:
		draft.Tenaamstelling = value
	case FieldAuthorizedSignatory:
		draft.AuthorizedSignatory = value
	case FieldDepartment:
		draft.Department = value
	case FieldDeliveryHouseNumber:
		draft.DeliveryHouseNumber = value
	case FieldDeliveryAddition:
		draft.DeliveryAddition = value
	case FieldDeliveryCity:
		draft.DeliveryCity = value
	case FieldInvoiceHouseNumber:
		draft.InvoiceHouseNumber = value
	case FieldInvoiceAddition:
		draft.InvoiceAddition = value
	case FieldInvoiceCity:
		draft.InvoiceCity = value
	case FieldGridOperator:
		draft.GridOperator = value
	case FieldSupplier:
		draft.Supplier = value
	case FieldMeterNumber:
		draft.MeterNumber = value
	case FieldAnnualUsageNormal:
		draft.AnnualUsageNormal = value
	case FieldAnnualUsageLow:
		draft.AnnualUsageLow = value
	case FieldStatus:
		draft.Status = value
	case FieldNotes:
		draft.Notes = value
	}
}

// ExcelToText renders the first sheet as labeled lines for the AI extraction
// path: one "Rij N: header: value | ..." line per row, capped at maxRows.
func ExcelToText(r io.Reader, maxRows int) (string, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", 0, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", 0, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return "", 0, nil
	}

	headers := rows[0]
	dataRows := rows[1:]
	truncated := 0
	if maxRows > 0 && len(dataRows) > maxRows {
		truncated = len(dataRows) - maxRows
		dataRows = dataRows[:maxRows]
	}

	lines := []string{
		fmt.Sprintf("Excel sheet: %s", sheets[0]),
		fmt.Sprintf("Kolommen: %s", strings.Join(headers, ", ")),
	}
	for i, row := range dataRows {
		var pairs []string
		for j, header := range headers {
			value := ""
			if j < len(row) {
				value = strings.TrimSpace(row[j])
			}
			if value != "" {
				pairs = append(pairs, fmt.Sprintf("%s: %s", header, value))
			}
		}
		lines = append(lines, fmt.Sprintf("Rij %d: %s", i+1, strings.Join(pairs, " | ")))
	}
	return strings.Join(lines, "\n"), truncated, nil
}
