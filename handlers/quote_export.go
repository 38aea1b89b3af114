package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// buildQuoteExportData fetches a quote and its line items and assembles the
// export payload shared by the Excel and PDF generators.
func buildQuoteExportData(app *pocketbase.PocketBase, quoteID string) (services.QuoteExportData, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return services.QuoteExportData{}, fmt.Errorf("quote not found: %w", err)
	}

	items, err := loadQuoteItems(app, quoteID)
	if err != nil {
		return services.QuoteExportData{}, err
	}

	rows := make([]services.QuoteExportRow, 0, len(items))
	for i, item := range items {
		rows = append(rows, services.QuoteExportRow{
			Index:           i + 1,
			Description:     item.Description,
			ProductID:       item.ProductID,
			Qty:             item.Quantity,
			UOM:             item.UnitOfMeasure,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Subtotal:        item.Subtotal,
		})
	}

	// Tax lines in stable name order; map iteration order is random.
	taxes := quoteTaxes(quote)
	names := make([]string, 0, len(taxes))
	for name := range taxes {
		names = append(names, name)
	}
	sort.Strings(names)

	subtotal := quote.GetFloat("subtotal")
	taxLines := make([]services.TaxLine, 0, len(names))
	for _, name := range names {
		taxLines = append(taxLines, services.ApplyTax(subtotal, name, taxes[name]))
	}

	createdDate := ""
	if dt := quote.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.QuoteExportData{
		Number:      quote.GetString("number"),
		Title:       quote.GetString("title"),
		ClientName:  quote.GetString("client_name"),
		Status:      quote.GetString("status"),
		CreatedDate: createdDate,
		Rows:        rows,
		Subtotal:    subtotal,
		TaxLines:    taxLines,
		TotalTaxes:  quote.GetFloat("total_taxes"),
		Discounts:   quote.GetFloat("additional_discounts"),
		Total:       quote.GetFloat("total"),
	}, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportExcel generates and downloads an Excel file for a quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildQuoteExportData(app, id)
		if err != nil {
			log.Printf("quote_export: excel: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("quote_export: failed to generate Excel: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("%s.xlsx", sanitizeFilename(data.Number))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF generates and downloads a PDF file for a quote.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildQuoteExportData(app, id)
		if err != nil {
			log.Printf("quote_export: pdf: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("quote_export: failed to generate PDF: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(data.Number))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
