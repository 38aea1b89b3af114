package services

// QuoteExportRow represents a single line item row in a quote export.
type QuoteExportRow struct {
	Index           int
	Description     string
	ProductID       string
	Qty             float64
	UOM             string
	UnitPrice       float64
	DiscountPercent float64
	Subtotal        float64
}

// QuoteExportData holds all data needed to render a quote export.
type QuoteExportData struct {
	Number      string
	Title       string
	ClientName  string
	Status      string
	CreatedDate string
	Rows        []QuoteExportRow
	Subtotal    float64
	TaxLines    []TaxLine
	TotalTaxes  float64
	Discounts   float64
	Total       float64
}
