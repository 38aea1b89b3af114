package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

type quoteCreateRequest struct {
	Title      string             `json:"title"`
	ClientName string             `json:"client_name"`
	Notes      string             `json:"notes"`
	TaxRates   map[string]float64 `json:"tax_rates"`
}

// HandleQuoteCreate creates a draft quote with a generated number. When the
// request carries no tax rates the quote starts with the default IVA rate
// from the catalog.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quoteCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		req.Title = strings.TrimSpace(req.Title)
		req.ClientName = strings.TrimSpace(req.ClientName)

		errors := make(map[string]string)
		if req.Title == "" {
			errors["title"] = "Title is required"
		}
		if len(errors) > 0 {
			return validationError(e, errors)
		}

		if len(req.TaxRates) == 0 {
			req.TaxRates = defaultTaxRates(app)
		}

		number, err := services.GenerateQuoteNumber(app, time.Now())
		if err != nil {
			log.Printf("quote_create: could not generate quote number: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("number", number)
		record.Set("title", req.Title)
		record.Set("client_name", req.ClientName)
		record.Set("status", "draft")
		record.Set("notes", req.Notes)
		record.Set("tax_rates", req.TaxRates)
		record.Set("additional_discounts", 0)
		record.Set("subtotal", 0)
		record.Set("total_taxes", 0)
		record.Set("total", 0)

		if err := app.Save(record); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, quoteJSON(record, []services.QuoteItem{}))
	}
}

// defaultTaxRates reads the tax rate catalog into a name -> rate map.
func defaultTaxRates(app *pocketbase.PocketBase) map[string]float64 {
	rates := map[string]float64{}
	records, err := app.FindRecordsByFilter("tax_rates", "id != ''", "name", 0, 0, nil)
	if err != nil {
		log.Printf("quote_create: defaultTaxRates: could not query tax_rates: %v", err)
		return rates
	}
	for _, rec := range records {
		rates[rec.GetString("name")] = rec.GetFloat("rate")
	}
	return rates
}
