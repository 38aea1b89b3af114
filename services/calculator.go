// Package services provides the quote financial calculation engine and
// supporting quote logic (totals, numbering, formatting, exports).
package services

import (
	"log"
	"math"
)

// Default surcharge rates applied when a config is built fresh.
// They match the rates the product team ships in the calculator UI.
const (
	DefaultToolWearRate    = 10.0
	DefaultMaintenanceRate = 15.0
	DefaultLogisticsRate   = 10.0
)

// DefaultTaxName is used when the caller does not name the tax.
const DefaultTaxName = "IVA"

// LaborConfig holds the labor inputs of the cost-based calculator.
type LaborConfig struct {
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`
}

// CalculatorMaterial is one selected material line in the cost-based calculator.
type CalculatorMaterial struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// AdditionalCostConfig holds the overhead surcharges applied on top of the
// base production cost. Each percentage toggle is independent and is always
// computed against the same base, never against a running total. A disabled
// toggle contributes zero regardless of its stored rate. FixedIncrement is a
// flat currency amount, not a rate.
type AdditionalCostConfig struct {
	ToolWear        bool    `json:"tool_wear"`
	ToolWearRate    float64 `json:"tool_wear_rate"`
	Maintenance     bool    `json:"maintenance"`
	MaintenanceRate float64 `json:"maintenance_rate"`
	Logistics       bool    `json:"logistics"`
	LogisticsRate   float64 `json:"logistics_rate"`
	FixedIncrement  float64 `json:"fixed_increment"`
}

// NewAdditionalCostConfig returns a config with all toggles off and the
// default rates resolved. Rates are resolved once here, not re-read per call.
func NewAdditionalCostConfig() *AdditionalCostConfig {
	return &AdditionalCostConfig{
		ToolWearRate:    DefaultToolWearRate,
		MaintenanceRate: DefaultMaintenanceRate,
		LogisticsRate:   DefaultLogisticsRate,
	}
}

// TaxLine is one named tax applied to a price base. Amount is derived,
// never authoritative input.
type TaxLine struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// FinancialBreakdown is the full output of the cost-based pipeline. Every
// derived field is a pure function of the inputs; a breakdown is built fresh
// on each calculation and never patched in place.
type FinancialBreakdown struct {
	LaborCost               float64   `json:"labor_cost"`
	MaterialsCost           float64   `json:"materials_cost"`
	AdditionalCosts         float64   `json:"additional_costs"`
	BaseProductionCost      float64   `json:"base_production_cost"`
	TotalProductionCost     float64   `json:"total_production_cost"`
	CommercialMarginPercent float64   `json:"commercial_margin_percent"`
	GrossProfit             float64   `json:"gross_profit"`
	SalePrice               float64   `json:"sale_price"`
	Taxes                   []TaxLine `json:"taxes"`
	TotalTaxes              float64   `json:"total_taxes"`
	FinalPrice              float64   `json:"final_price"`
}

// zeroBreakdown is what a failed calculation degrades to: every numeric
// field zero and an empty (non-nil) tax list.
func zeroBreakdown() FinancialBreakdown {
	return FinancialBreakdown{Taxes: []TaxLine{}}
}

// orZero maps NaN and infinities to 0 so a single malformed numeric field
// never poisons the whole breakdown.
func orZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// LaborCost computes hours * hourlyRate. Non-negativity of the inputs is a
// caller precondition; absent values are zero.
func LaborCost(hours, hourlyRate float64) float64 {
	return orZero(hours) * orZero(hourlyRate)
}

// MaterialsTotal sums unitPrice * quantity over all material lines. The sum
// is order-independent; display order stays with the caller.
func MaterialsTotal(materials []CalculatorMaterial) float64 {
	var total float64
	for _, m := range materials {
		total += orZero(m.UnitPrice) * orZero(m.Quantity)
	}
	return total
}

// Total computes the overhead surcharges for a given base production cost.
// Every enabled percentage term is taken against the same baseCost, so the
// surcharges do not compound with each other. With a zero base only the
// fixed increment survives.
func (c *AdditionalCostConfig) Total(baseCost float64) float64 {
	baseCost = orZero(baseCost)

	var total float64
	if c.ToolWear {
		total += baseCost * orZero(c.ToolWearRate) / 100
	}
	if c.Maintenance {
		total += baseCost * orZero(c.MaintenanceRate) / 100
	}
	if c.Logistics {
		total += baseCost * orZero(c.LogisticsRate) / 100
	}
	return total + orZero(c.FixedIncrement)
}

// GrossProfit applies the commercial margin to the total production cost.
// Margins above 100% are mathematically valid and accepted; range clamping
// belongs to the UI.
func GrossProfit(totalProductionCost, marginPercent float64) float64 {
	return orZero(totalProductionCost) * orZero(marginPercent) / 100
}

// ApplyTax builds a single named tax line against a price base. An empty
// name falls back to DefaultTaxName.
func ApplyTax(base float64, name string, ratePercent float64) TaxLine {
	if name == "" {
		name = DefaultTaxName
	}
	return TaxLine{
		Name:   name,
		Rate:   ratePercent,
		Amount: orZero(base) * orZero(ratePercent) / 100,
	}
}

// CalculateBreakdown composes the cost-based pipeline in strict order:
// labor -> materials -> base -> additional costs -> total production cost ->
// margin -> sale price -> tax -> final price. It is a pure function of its
// inputs and holds no state between calls.
//
// If anything inside the computation panics (for example a nil config), the
// failure is logged and an all-zero breakdown is returned instead. The UI
// shows $0.00 rather than an error dialog; callers must not rely on a panic
// escaping this function.
func CalculateBreakdown(
	labor LaborConfig,
	materials []CalculatorMaterial,
	costs *AdditionalCostConfig,
	marginPercent float64,
	taxRatePercent float64,
) (breakdown FinancialBreakdown) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("calculator: CalculateBreakdown: recovered from calculation failure: %v", r)
			breakdown = zeroBreakdown()
		}
	}()

	laborCost := LaborCost(labor.Hours, labor.HourlyRate)
	materialsCost := MaterialsTotal(materials)
	baseProductionCost := laborCost + materialsCost

	additionalCosts := costs.Total(baseProductionCost)
	totalProductionCost := baseProductionCost + additionalCosts

	grossProfit := GrossProfit(totalProductionCost, marginPercent)
	salePrice := totalProductionCost + grossProfit

	tax := ApplyTax(salePrice, DefaultTaxName, orZero(taxRatePercent))
	totalTaxes := tax.Amount

	return FinancialBreakdown{
		LaborCost:               laborCost,
		MaterialsCost:           materialsCost,
		AdditionalCosts:         additionalCosts,
		BaseProductionCost:      baseProductionCost,
		TotalProductionCost:     totalProductionCost,
		CommercialMarginPercent: orZero(marginPercent),
		GrossProfit:             grossProfit,
		SalePrice:               salePrice,
		Taxes:                   []TaxLine{tax},
		TotalTaxes:              totalTaxes,
		FinalPrice:              salePrice + totalTaxes,
	}
}
