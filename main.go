package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/collections"
	"quotedesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Calculator previews (stateless) ──────────────────────
		se.Router.POST("/api/calculator/breakdown", handlers.HandleCalculatorBreakdown(app))
		se.Router.POST("/api/calculator/totals", handlers.HandleTotalsPreview(app))

		// ── Quote CRUD ───────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/api/quotes", handlers.HandleQuoteCreate(app))
		se.Router.PATCH("/api/quotes/{id}", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleQuoteDelete(app))

		// ── Quote line items ─────────────────────────────────────
		se.Router.POST("/api/quotes/{id}/items", handlers.HandleQuoteItemAdd(app))
		se.Router.PATCH("/api/quotes/{id}/items/{itemId}", handlers.HandleQuoteItemUpdate(app))
		se.Router.DELETE("/api/quotes/{id}/items/{itemId}", handlers.HandleQuoteItemDelete(app))

		// ── Quote export ─────────────────────────────────────────
		se.Router.GET("/api/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/api/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))

		// Quote view (after specific /quotes/{id}/* routes)
		se.Router.GET("/api/quotes/{id}", handlers.HandleQuoteView(app))

		// ── Materials catalog ────────────────────────────────────
		se.Router.GET("/api/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/api/materials", handlers.HandleMaterialCreate(app))
		se.Router.POST("/api/materials/import", handlers.HandleMaterialsImportValidate(app))
		se.Router.POST("/api/materials/import/commit", handlers.HandleMaterialsImportCommit(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
