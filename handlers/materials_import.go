package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// HandleMaterialsImportValidate receives a catalog file upload (.csv or
// .xlsx), validates it and returns the per-row results. Nothing is saved;
// the client posts the validated rows back to the commit endpoint.
func HandleMaterialsImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// 10MB is plenty for a catalog sheet.
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateMaterialsFile(file, header.Filename)
		if err != nil {
			log.Printf("materials_import: validate: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total_rows": result.TotalRows,
			"valid_rows": result.ValidRows,
			"error_rows": result.ErrorRows,
			"errors":     result.Errors,
			"rows":       result.ParsedRows,
		})
	}
}

type materialsCommitRequest struct {
	Rows []services.MaterialRow `json:"rows"`
}

// HandleMaterialsImportCommit saves previously validated catalog rows. Rows
// whose name already exists in the catalog are skipped, not overwritten.
func HandleMaterialsImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req materialsCommitRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if len(req.Rows) == 0 {
			return apiError(e, http.StatusBadRequest, "No rows to import")
		}

		created, err := services.CommitMaterials(app, req.Rows)
		if err != nil {
			log.Printf("materials_import: commit: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"created": created,
			"skipped": len(req.Rows) - created,
		})
	}
}
