package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"aansluitintake/internal/domain"
)

var (
	pdfColorPrimary   = &props.Color{Red: 15, Green: 23, Blue: 42}    // slate-900
	pdfColorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	pdfColorCardFill  = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	pdfColorBorder    = &props.Color{Red: 203, Green: 213, Blue: 225} // slate-300
	pdfColorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// WritePDF renders the export as a PDF: a branded header followed by one
// card of label/value pairs per connection.
func WritePDF(conns []domain.Connection) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(12).
		WithTopMargin(10).
		WithRightMargin(12).
		Build()

	m := maroto.New(cfg)

	m.AddRows(buildPDFHeader(len(conns))...)

	for i := range conns {
		m.AddRows(buildConnectionCard(&conns[i], i+1)...)
		m.AddRows(row.New(4))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func buildPDFHeader(total int) []core.Row {
	meta := fmt.Sprintf("Aangemaakt: %s  |  Totaal: %d", time.Now().Format("02-01-2006 15:04"), total)
	return []core.Row{
		row.New(12).Add(
			col.New(4).Add(text.New("Impact Energy", props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Color: pdfColorWhite,
				Top:   3,
				Left:  2,
			})),
			col.New(8).Add(text.New("Intake export aansluitingen", props.Text{
				Size:  13,
				Color: pdfColorWhite,
				Top:   3,
			})),
		).WithStyle(&props.Cell{BackgroundColor: pdfColorPrimary}),
		row.New(7).Add(
			col.New(12).Add(text.New(meta, props.Text{
				Size:  8,
				Color: pdfColorPrimary,
				Top:   2,
			})),
		),
		row.New(3),
	}
}

// connectionFields lists the label/value pairs shown on a connection card,
// in form order.
func connectionFields(c *domain.Connection, index int) [][2]string {
	deliveryAddress := FormatAddress(
		c.DeliveryStreet, c.DeliveryHouseNumber, c.DeliveryAddition,
		c.DeliveryPostcode, c.DeliveryCity,
	)
	invoiceAddress := "Gelijk aan leveringsadres"
	if !invoiceSameAsDelivery(c) {
		invoiceAddress = FormatAddress(
			c.InvoiceStreet, c.InvoiceHouseNumber, c.InvoiceAddition,
			c.InvoicePostcode, c.InvoiceCity,
		)
	}

	return [][2]string{
		{"Aansluiting", fmt.Sprintf("#%d", index)},
		{"Tenaamstelling", c.Tenaamstelling},
		{"EAN", c.EANCode},
		{"Product", c.Product},
		{"Marktsegment", c.MarketSegment},
		{"KvK", c.KvkNumber},
		{"Rechtsvorm", c.LegalForm},
		{"Tekenbevoegde", c.AuthorizedSignatory},
		{"IBAN", c.IBAN},
		{"Telemetriecode / Meetcode", c.TelemetryCode},
		{"Telemetrie type", c.TelemetryType},
		{"Leveringsadres", deliveryAddress},
		{"Factuuradres", invoiceAddress},
		{"Netbeheerder", c.GridOperator},
		{"Leverancier", c.Supplier},
		{"Meternummer", c.MeterNumber},
		{"Afdeling", c.Department},
		{"Jaarverbruik hoog", c.AnnualUsageNormal},
		{"Jaarverbruik laag", c.AnnualUsageLow},
		{"Status", c.Status},
		{"Adreswaarschuwing", c.AddressWarning},
		{"Notities", c.Notes},
		{"Bron", string(c.Source)},
		{"Aangemaakt", c.CreatedAt.Format(time.RFC3339)},
	}
}

func buildConnectionCard(c *domain.Connection, index int) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Aansluiting %d", index), props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Color: pdfColorPrimary,
				Top:   2,
				Left:  2,
			})),
		).WithStyle(&props.Cell{
			BackgroundColor: pdfColorCardFill,
			BorderType:      border.Full,
			BorderColor:     pdfColorBorder,
		}),
	}

	for _, field := range connectionFields(c, index) {
		value := field[1]
		if value == "" {
			value = "-"
		}
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(field[0], props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: pdfColorPrimary,
				Left:  2,
			})),
			col.New(8).Add(text.New(value, props.Text{
				Size:  8,
				Color: pdfColorSecondary,
				Align: align.Left,
			})),
		))
	}

	return rows
}
