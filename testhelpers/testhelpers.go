// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestQuote creates a quote record with the given number and title.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, number, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("number", number)
	record.Set("title", title)
	record.Set("status", "draft")
	record.Set("tax_rates", map[string]float64{"IVA": 13})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a quote item record linked to a quote.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, quoteID, description string, quantity, unitPrice, discountPercent float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	existing, _ := app.FindRecordsByFilter(
		"quote_items", "quote = {:quoteId}", "-sort_order", 1, 0,
		map[string]any{"quoteId": quoteID},
	)
	nextSort := 1
	if len(existing) > 0 {
		nextSort = existing[0].GetInt("sort_order") + 1
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", nextSort)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("uom", "pcs")
	record.Set("unit_price", unitPrice)
	record.Set("discount_percent", discountPercent)
	record.Set("subtotal", quantity*unitPrice*(1-discountPercent/100))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// CreateTestMaterial creates a catalog material record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, name, unit string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("unit", unit)
	record.Set("unit_price", unitPrice)
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestTaxRate creates a named tax rate record and returns it.
func CreateTestTaxRate(t *testing.T, app *pocketbase.PocketBase, name string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tax_rates")
	if err != nil {
		t.Fatalf("failed to find tax_rates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("rate", rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tax rate: %v", err)
	}

	return record
}

// AssertBodyContains checks that body contains all specified fragments.
func AssertBodyContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
