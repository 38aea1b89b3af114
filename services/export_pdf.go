package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates a PDF document for a quote using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteTableHeader(m)
	for _, r := range data.Rows {
		addQuoteTableRow(m, r)
	}
	addQuoteSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds the quote number, title, client and date.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	// Row 1: "QUOTE" title (left) + quote number (right)
	m.AddRows(
		row.New(12).Add(
			col.New(6).Add(
				text.New("QUOTE", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
			col.New(6).Add(
				text.New(data.Number, props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	// Row 2: title (if any) spanning the page
	if data.Title != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(data.Title, props.Text{
						Size:  10,
						Align: align.Left,
					}),
				),
			),
		)
	}

	// Row 3: client (left) + date (right)
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Client: %s", data.ClientName), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addQuoteTableHeader adds the column header row for the line item table.
func addQuoteTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("UOM", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Disc.", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Subtotal", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addQuoteTableRow adds a single line item row to the table.
func addQuoteTableRow(m core.Maroto, r QuoteExportRow) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), baseText)),
			col.New(4).Add(text.New(r.Description, leftText)),
			col.New(1).Add(text.New(formatQty(r.Qty), rightText)),
			col.New(1).Add(text.New(r.UOM, baseText)),
			col.New(2).Add(text.New(FormatEUR(r.UnitPrice), rightText)),
			col.New(1).Add(text.New(FormatPercent(r.DiscountPercent), baseText)),
			col.New(2).Add(text.New(FormatEUR(r.Subtotal), rightText)),
		),
	)
}

// addQuoteSummary adds subtotal, tax breakdown, discounts and total.
func addQuoteSummary(m core.Maroto, data QuoteExportData) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	addLine := func(label, value string) {
		m.AddRows(
			row.New(7).Add(
				col.New(8),
				col.New(2).Add(text.New(label, labelStyle)).WithStyle(summaryCell),
				col.New(2).Add(text.New(value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	addLine("Subtotal:", FormatEUR(data.Subtotal))
	for _, tax := range data.TaxLines {
		addLine(
			fmt.Sprintf("%s (%s):", tax.Name, FormatPercent(tax.Rate)),
			FormatEUR(tax.Amount),
		)
	}
	if data.Discounts != 0 {
		addLine("Discounts:", "-"+FormatEUR(data.Discounts))
	}
	addLine("Total:", FormatEUR(data.Total))
}

// formatQty formats a quantity: whole numbers without decimals, others with 2 decimals.
func formatQty(val float64) string {
	if val == math.Trunc(val) {
		return fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%.2f", val)
}
