package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// quoteUpdateRequest uses pointers so absent fields leave the stored value
// untouched.
type quoteUpdateRequest struct {
	Title               *string             `json:"title"`
	ClientName          *string             `json:"client_name"`
	Status              *string             `json:"status"`
	Notes               *string             `json:"notes"`
	TaxRates            *map[string]float64 `json:"tax_rates"`
	AdditionalDiscounts *float64            `json:"additional_discounts"`
}

var validStatuses = map[string]bool{
	"draft":    true,
	"sent":     true,
	"accepted": true,
}

// HandleQuoteUpdate patches quote header fields. Any change that affects the
// money side (tax rates, discounts) triggers a full totals recomputation.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		quote, err := app.FindRecordById("quotes", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		var req quoteUpdateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
			errors["title"] = "Title is required"
		}
		if req.Status != nil && !validStatuses[*req.Status] {
			errors["status"] = "Status must be draft, sent or accepted"
		}
		if req.AdditionalDiscounts != nil && *req.AdditionalDiscounts < 0 {
			errors["additional_discounts"] = "Discounts must be zero or greater"
		}
		if len(errors) > 0 {
			return validationError(e, errors)
		}

		if req.Title != nil {
			quote.Set("title", strings.TrimSpace(*req.Title))
		}
		if req.ClientName != nil {
			quote.Set("client_name", strings.TrimSpace(*req.ClientName))
		}
		if req.Status != nil {
			quote.Set("status", *req.Status)
		}
		if req.Notes != nil {
			quote.Set("notes", *req.Notes)
		}
		if req.TaxRates != nil {
			quote.Set("tax_rates", *req.TaxRates)
		}
		if req.AdditionalDiscounts != nil {
			quote.Set("additional_discounts", *req.AdditionalDiscounts)
		}

		if err := recomputeQuoteTotals(app, quote); err != nil {
			log.Printf("quote_update: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items, err := loadQuoteItems(app, quote.Id)
		if err != nil {
			log.Printf("quote_update: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, quoteJSON(quote, items))
	}
}
