package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteList returns all quotes, newest first. The optional status
// query parameter filters by lifecycle state.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}

		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("quotes", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("quote_list: could not query quotes: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		quotes := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			quotes = append(quotes, map[string]any{
				"id":          rec.Id,
				"number":      rec.GetString("number"),
				"title":       rec.GetString("title"),
				"client_name": rec.GetString("client_name"),
				"status":      rec.GetString("status"),
				"total":       rec.GetFloat("total"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"quotes": quotes})
	}
}
