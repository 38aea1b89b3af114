package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleMaterialList returns the active materials catalog sorted by name.
// Pass all=1 to include deactivated entries.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "active = true"
		if e.Request.URL.Query().Get("all") == "1" {
			filter = "id != ''"
		}

		records, err := app.FindRecordsByFilter("materials", filter, "name", 0, 0, nil)
		if err != nil {
			log.Printf("materials: HandleMaterialList: could not query materials: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		materials := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			materials = append(materials, map[string]any{
				"id":         rec.Id,
				"name":       rec.GetString("name"),
				"unit":       rec.GetString("unit"),
				"unit_price": rec.GetFloat("unit_price"),
				"active":     rec.GetBool("active"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"materials": materials})
	}
}

type materialCreateRequest struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

// HandleMaterialCreate adds one material to the catalog. Names are unique;
// a duplicate name is rejected rather than silently updated.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req materialCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Unit = strings.TrimSpace(req.Unit)

		errors := make(map[string]string)
		if req.Name == "" {
			errors["name"] = "Name is required"
		}
		if req.Unit == "" {
			errors["unit"] = "Unit is required"
		}
		if req.UnitPrice < 0 {
			errors["unit_price"] = "Unit price must be zero or greater"
		}
		if len(errors) > 0 {
			return validationError(e, errors)
		}

		existing, err := app.FindRecordsByFilter(
			"materials", "name = {:name}", "", 1, 0,
			map[string]any{"name": req.Name},
		)
		if err == nil && len(existing) > 0 {
			return validationError(e, map[string]string{"name": "A material with this name already exists"})
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("materials: HandleMaterialCreate: could not find materials collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("unit", req.Unit)
		record.Set("unit_price", req.UnitPrice)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			log.Printf("materials: HandleMaterialCreate: could not save material: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":         record.Id,
			"name":       record.GetString("name"),
			"unit":       record.GetString("unit"),
			"unit_price": record.GetFloat("unit_price"),
			"active":     true,
		})
	}
}
