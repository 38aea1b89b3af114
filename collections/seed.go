package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type taxRateDef struct {
	name string
	rate float64
}

type materialDef struct {
	name      string
	unit      string
	unitPrice float64
}

var defaultTaxRates = []taxRateDef{
	{name: "IVA", rate: 13},
}

var defaultMaterials = []materialDef{
	{name: "Pine board 2x4", unit: "m", unitPrice: 3.50},
	{name: "MDF sheet 18mm", unit: "sheet", unitPrice: 28.00},
	{name: "Wood screws 4x40", unit: "box", unitPrice: 4.25},
	{name: "White lacquer", unit: "l", unitPrice: 12.80},
	{name: "Aluminum profile", unit: "m", unitPrice: 7.90},
	{name: "Hinge set", unit: "pair", unitPrice: 2.60},
}

// Seed populates the tax_rates and materials catalog with defaults. It is
// safe to call on every startup because it returns early when tax rates
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if tax rates already exist ─────────────────
	taxCol, err := app.FindCollectionByNameOrId("tax_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find tax_rates collection: %w", err)
	}
	existing, err := app.FindAllRecords(taxCol)
	if err != nil {
		return fmt.Errorf("seed: could not query tax_rates: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: tax_rates collection is empty – inserting seed data …")

	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}

	for _, def := range defaultTaxRates {
		record := core.NewRecord(taxCol)
		record.Set("name", def.name)
		record.Set("rate", def.rate)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save tax rate %q: %w", def.name, err)
		}
	}

	for _, def := range defaultMaterials {
		record := core.NewRecord(materialsCol)
		record.Set("name", def.name)
		record.Set("unit", def.unit)
		record.Set("unit_price", def.unitPrice)
		record.Set("active", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save material %q: %w", def.name, err)
		}
	}

	log.Printf("seed: inserted %d tax rates and %d materials", len(defaultTaxRates), len(defaultMaterials))
	return nil
}
