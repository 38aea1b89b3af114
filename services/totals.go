package services

// QuoteTotals aggregates a quote built from finished line items. This is a
// separate pipeline from FinancialBreakdown: here the discount is a flat
// currency amount applied after tax, while the cost-based pipeline folds a
// percentage margin in before tax. The two flows stay distinct on purpose.
type QuoteTotals struct {
	Subtotal     float64            `json:"subtotal"`
	TaxBreakdown map[string]float64 `json:"tax_breakdown"`
	TotalTaxes   float64            `json:"total_taxes"`
	Discounts    float64            `json:"discounts"`
	Total        float64            `json:"total"`
}

// CalcQuoteTotals computes subtotal, per-tax amounts and the final total for
// a set of line items. Every named tax rate is applied independently against
// the same subtotal; taxes do not cascade. Discounts is a flat currency
// amount subtracted at the end. Negative totals are not clamped.
func CalcQuoteTotals(items []QuoteItem, taxes map[string]float64, additionalDiscounts float64) QuoteTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += orZero(item.Subtotal)
	}

	breakdown := make(map[string]float64, len(taxes))
	var totalTaxes float64
	for name, rate := range taxes {
		amount := subtotal * orZero(rate) / 100
		breakdown[name] = amount
		totalTaxes += amount
	}

	discounts := orZero(additionalDiscounts)

	return QuoteTotals{
		Subtotal:     subtotal,
		TaxBreakdown: breakdown,
		TotalTaxes:   totalTaxes,
		Discounts:    discounts,
		Total:        subtotal + totalTaxes - discounts,
	}
}
