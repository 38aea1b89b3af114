package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

type quoteItemAddRequest struct {
	ProductID       string  `json:"product_id"`
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UOM             string  `json:"uom"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

// nextSortOrder returns the sort_order for a new item on the given quote.
func nextSortOrder(app *pocketbase.PocketBase, quoteID string) int {
	existing, _ := app.FindRecordsByFilter(
		"quote_items", "quote = {:quoteId}", "-sort_order", 1, 0,
		map[string]any{"quoteId": quoteID},
	)
	if len(existing) > 0 {
		return existing[0].GetInt("sort_order") + 1
	}
	return 1
}

// HandleQuoteItemAdd appends a line item to a quote. When product_id points
// to a catalog material, description, unit and price are taken from the
// catalog. Adding a product that is already on the quote is a no-op: the
// existing line is kept untouched and returned as-is.
func HandleQuoteItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		var req quoteItemAddRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Description = strings.TrimSpace(req.Description)

		if req.ProductID != "" {
			material, err := app.FindRecordById("materials", req.ProductID)
			if err != nil {
				return validationError(e, map[string]string{"product_id": "Product not found in catalog"})
			}

			dup, _ := app.FindRecordsByFilter(
				"quote_items", "quote = {:quoteId} && product = {:productId}", "", 1, 0,
				map[string]any{"quoteId": quoteID, "productId": req.ProductID},
			)
			if len(dup) > 0 {
				items, err := loadQuoteItems(app, quoteID)
				if err != nil {
					log.Printf("quote_items: HandleQuoteItemAdd: %v", err)
					return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
				return e.JSON(http.StatusOK, quoteJSON(quote, items))
			}

			if req.Description == "" {
				req.Description = material.GetString("name")
			}
			if req.UOM == "" {
				req.UOM = material.GetString("unit")
			}
			if req.UnitPrice == 0 {
				req.UnitPrice = material.GetFloat("unit_price")
			}
		}

		errors := make(map[string]string)
		if req.Description == "" {
			errors["description"] = "Description is required"
		}
		if req.Quantity <= 0 {
			errors["quantity"] = "Quantity must be greater than zero"
		}
		if req.UnitPrice < 0 {
			errors["unit_price"] = "Unit price must be zero or greater"
		}
		if len(errors) > 0 {
			return validationError(e, errors)
		}

		col, err := app.FindCollectionByNameOrId("quote_items")
		if err != nil {
			log.Printf("quote_items: HandleQuoteItemAdd: could not find quote_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("quote", quoteID)
		record.Set("sort_order", nextSortOrder(app, quoteID))
		record.Set("product", req.ProductID)
		record.Set("description", req.Description)
		record.Set("quantity", req.Quantity)
		record.Set("uom", req.UOM)
		record.Set("unit_price", req.UnitPrice)
		record.Set("discount_percent", req.DiscountPercent)
		record.Set("subtotal", services.ItemSubtotal(req.Quantity, req.UnitPrice, req.DiscountPercent))

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: HandleQuoteItemAdd: could not save item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := recomputeQuoteTotals(app, quote); err != nil {
			log.Printf("quote_items: HandleQuoteItemAdd: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("quote_items: HandleQuoteItemAdd: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusCreated, quoteJSON(quote, items))
	}
}

type quoteItemUpdateRequest struct {
	Quantity        *float64 `json:"quantity"`
	DiscountPercent *float64 `json:"discount_percent"`
}

// HandleQuoteItemUpdate changes quantity or discount on one line item and
// recomputes the line subtotal and the quote totals. Non-positive quantities
// are rejected here; the engine below accepts any number.
func HandleQuoteItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		item, err := app.FindRecordById("quote_items", itemID)
		if err != nil || item.GetString("quote") != quoteID {
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		var req quoteItemUpdateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if req.Quantity != nil && *req.Quantity <= 0 {
			errors["quantity"] = "Quantity must be greater than zero"
		}
		if req.DiscountPercent != nil && (*req.DiscountPercent < 0 || *req.DiscountPercent > 100) {
			errors["discount_percent"] = "Discount must be between 0 and 100"
		}
		if len(errors) > 0 {
			return validationError(e, errors)
		}

		if req.Quantity != nil {
			item.Set("quantity", *req.Quantity)
		}
		if req.DiscountPercent != nil {
			item.Set("discount_percent", *req.DiscountPercent)
		}
		item.Set("subtotal", services.ItemSubtotal(
			item.GetFloat("quantity"),
			item.GetFloat("unit_price"),
			item.GetFloat("discount_percent"),
		))

		if err := app.Save(item); err != nil {
			log.Printf("quote_items: HandleQuoteItemUpdate: could not save item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := recomputeQuoteTotals(app, quote); err != nil {
			log.Printf("quote_items: HandleQuoteItemUpdate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("quote_items: HandleQuoteItemUpdate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, quoteJSON(quote, items))
	}
}

// HandleQuoteItemDelete removes a line item and recomputes the quote totals.
func HandleQuoteItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		item, err := app.FindRecordById("quote_items", itemID)
		if err != nil || item.GetString("quote") != quoteID {
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		if err := app.Delete(item); err != nil {
			log.Printf("quote_items: HandleQuoteItemDelete: could not delete item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := recomputeQuoteTotals(app, quote); err != nil {
			log.Printf("quote_items: HandleQuoteItemDelete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("quote_items: HandleQuoteItemDelete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, quoteJSON(quote, items))
	}
}
