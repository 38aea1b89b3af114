package handlers

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// loadQuoteItems fetches the line items of a quote in sort order and maps
// them to engine items. The stored subtotal is carried as-is; it is the
// authoritative per-line value.
func loadQuoteItems(app *pocketbase.PocketBase, quoteID string) ([]services.QuoteItem, error) {
	records, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"sort_order",
		0,
		0,
		map[string]any{"quoteId": quoteID},
	)
	if err != nil {
		return nil, fmt.Errorf("could not query quote items: %w", err)
	}

	items := make([]services.QuoteItem, 0, len(records))
	for _, rec := range records {
		items = append(items, services.QuoteItem{
			ID:              rec.Id,
			ProductID:       rec.GetString("product"),
			Description:     rec.GetString("description"),
			Quantity:        rec.GetFloat("quantity"),
			UnitOfMeasure:   rec.GetString("uom"),
			UnitPrice:       rec.GetFloat("unit_price"),
			DiscountPercent: rec.GetFloat("discount_percent"),
			Subtotal:        rec.GetFloat("subtotal"),
		})
	}
	return items, nil
}

// quoteTaxes reads the named tax rates stored on a quote record. A missing
// or malformed field yields an empty map, never an error to the caller.
func quoteTaxes(quote *core.Record) map[string]float64 {
	taxes := map[string]float64{}
	if err := quote.UnmarshalJSONField("tax_rates", &taxes); err != nil {
		log.Printf("quote_data: quoteTaxes: could not parse tax_rates of quote %s: %v", quote.Id, err)
		return map[string]float64{}
	}
	return taxes
}

// recomputeQuoteTotals recalculates the full quote aggregate from its line
// items and stores it on the quote record. Totals are always rebuilt in
// full; individual stored fields are never patched incrementally.
func recomputeQuoteTotals(app *pocketbase.PocketBase, quote *core.Record) error {
	items, err := loadQuoteItems(app, quote.Id)
	if err != nil {
		return err
	}

	totals := services.CalcQuoteTotals(items, quoteTaxes(quote), quote.GetFloat("additional_discounts"))

	quote.Set("subtotal", totals.Subtotal)
	quote.Set("taxes_breakdown", totals.TaxBreakdown)
	quote.Set("total_taxes", totals.TotalTaxes)
	quote.Set("total", totals.Total)

	if err := app.Save(quote); err != nil {
		return fmt.Errorf("could not save quote totals: %w", err)
	}
	return nil
}

// quoteJSON builds the API representation of a quote with its items.
func quoteJSON(quote *core.Record, items []services.QuoteItem) map[string]any {
	return map[string]any{
		"id":                   quote.Id,
		"number":               quote.GetString("number"),
		"title":                quote.GetString("title"),
		"client_name":          quote.GetString("client_name"),
		"status":               quote.GetString("status"),
		"notes":                quote.GetString("notes"),
		"tax_rates":            quoteTaxes(quote),
		"additional_discounts": quote.GetFloat("additional_discounts"),
		"subtotal":             quote.GetFloat("subtotal"),
		"total_taxes":          quote.GetFloat("total_taxes"),
		"total":                quote.GetFloat("total"),
		"items":                items,
	}
}
