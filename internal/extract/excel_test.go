package extract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"aansluitintake/internal/domain"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestExtractConnectionsFromExcel(t *testing.T) {
	r := buildWorkbook(t, [][]string{
		{"EAN code", "Product", "Tenaamstelling", "KvK nummer", "Postcode", "Plaats", "Onzin kolom xyz"},
		{"1234 5678 9012 3456 78", "elektriciteit", "Impact BV", "KvK 12345678", "1234ab", "Utrecht", "niks"},
		{"987654321098765432", "gas", "Impact Warmte BV", "87654321", "9000", "Gent", ""},
	})

	result, err := ExtractConnectionsFromExcel(r)
	require.NoError(t, err)
	require.Len(t, result.Connections, 2)

	first := result.Connections[0]
	assert.Equal(t, "123456789012345678", first.EANCode)
	assert.Equal(t, "Elektra", first.Product)
	assert.Equal(t, "Impact BV", first.Tenaamstelling)
	assert.Equal(t, "12345678", first.KvkNumber)
	assert.Equal(t, "1234 AB", first.DeliveryPostcode)
	assert.Equal(t, "Utrecht", first.DeliveryCity)
	assert.Equal(t, domain.SourceExcel, first.Source)

	second := result.Connections[1]
	assert.Equal(t, "987654321098765432", second.EANCode)
	assert.Equal(t, "Gas", second.Product)
	assert.Equal(t, "9000", second.DeliveryPostcode)

	assert.Contains(t, result.MappedHeaders, "EAN code")
	assert.Contains(t, result.UnmappedHeaders, "Onzin kolom xyz")
}

func TestExtractConnectionsFromExcel_StreetColumnReparsed(t *testing.T) {
	r := buildWorkbook(t, [][]string{
		{"Tenaamstelling", "Straat"},
		{"Impact BV", "Stationsstraat 12 A"},
	})

	result, err := ExtractConnectionsFromExcel(r)
	require.NoError(t, err)
	require.Len(t, result.Connections, 1)
	conn := result.Connections[0]
	assert.Equal(t, "Stationsstraat", conn.DeliveryStreet)
	assert.Equal(t, "12", conn.DeliveryHouseNumber)
	assert.Equal(t, "A", conn.DeliveryAddition)
}

func TestExcelToText(t *testing.T) {
	r := buildWorkbook(t, [][]string{
		{"EAN code", "Plaats"},
		{"123456789012345678", "Utrecht"},
		{"987654321098765432", ""},
	})

	text, truncated, err := ExcelToText(r, 200)
	require.NoError(t, err)
	assert.Zero(t, truncated)
	assert.Contains(t, text, "Excel sheet: Sheet1")
	assert.Contains(t, text, "Kolommen: EAN code, Plaats")
	assert.Contains(t, text, "Rij 1: EAN code: 123456789012345678 | Plaats: Utrecht")
	assert.Contains(t, text, "Rij 2: EAN code: 987654321098765432")
}

func TestExcelToText_TruncatesRows(t *testing.T) {
	rows := [][]string{{"Plaats"}}
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{"Utrecht"})
	}
	r := buildWorkbook(t, rows)

	text, truncated, err := ExcelToText(r, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, truncated)
	assert.Contains(t, text, "Rij 3: Plaats: Utrecht")
	assert.NotContains(t, text, "Rij 4")
}
