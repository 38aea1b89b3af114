package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// breakdownRequest is the JSON body of a cost-based calculator preview.
type breakdownRequest struct {
	Labor           services.LaborConfig           `json:"labor"`
	Materials       []services.CalculatorMaterial  `json:"materials"`
	AdditionalCosts *services.AdditionalCostConfig `json:"additional_costs"`
	MarginPercent   float64                        `json:"margin_percent"`
	TaxRatePercent  float64                        `json:"tax_rate_percent"`
}

// HandleCalculatorBreakdown computes a full financial breakdown from raw
// calculator inputs. Nothing is persisted; this is the live preview the
// calculator screen polls on every input change.
func HandleCalculatorBreakdown(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req breakdownRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if req.AdditionalCosts == nil {
			req.AdditionalCosts = services.NewAdditionalCostConfig()
		}

		breakdown := services.CalculateBreakdown(
			req.Labor,
			req.Materials,
			req.AdditionalCosts,
			req.MarginPercent,
			req.TaxRatePercent,
		)

		return e.JSON(http.StatusOK, breakdown)
	}
}

// totalsRequest is the JSON body of a quote totals preview.
type totalsRequest struct {
	Items               []services.QuoteItem `json:"items"`
	Taxes               map[string]float64   `json:"taxes"`
	AdditionalDiscounts float64              `json:"additional_discounts"`
}

// HandleTotalsPreview computes quote totals from line items without touching
// any stored quote. Item subtotals are recomputed from quantity, price and
// discount so the preview cannot be fed stale values.
func HandleTotalsPreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req totalsRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		for i := range req.Items {
			req.Items[i].Subtotal = services.ItemSubtotal(
				req.Items[i].Quantity,
				req.Items[i].UnitPrice,
				req.Items[i].DiscountPercent,
			)
		}

		totals := services.CalcQuoteTotals(req.Items, req.Taxes, req.AdditionalDiscounts)
		return e.JSON(http.StatusOK, totals)
	}
}
