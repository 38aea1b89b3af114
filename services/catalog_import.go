package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ImportError represents a single field-level error on one row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating an uploaded
// materials catalog file.
type ImportResult struct {
	TotalRows  int           `json:"total_rows"`
	ValidRows  int           `json:"valid_rows"`
	ErrorRows  int           `json:"error_rows"`
	Errors     []ImportError `json:"errors"`
	ParsedRows []MaterialRow `json:"-"`
	FileName   string        `json:"-"`
}

// MaterialRow is one parsed and validated catalog row.
type MaterialRow struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

// materialColumns maps recognized header labels to field keys.
var materialColumns = map[string]string{
	"name":       "name",
	"unit":       "unit",
	"unit price": "unit_price",
	"price":      "unit_price",
}

// parseImportCSV reads a CSV file and returns headers + data rows.
func parseImportCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseImportExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseImportExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapMaterialHeaders maps uploaded column headers to field keys. Unrecognized
// columns map to "" and are ignored during row parsing.
func mapMaterialHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		mapped[i] = materialColumns[strings.TrimSpace(norm)]
	}
	return mapped
}

// ValidateMaterialsFile parses and validates an uploaded materials catalog
// file (.csv or .xlsx). Rows with errors are reported but do not abort the
// whole upload; valid rows stay available for commit.
func ValidateMaterialsFile(file multipart.File, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseImportCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseImportExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapMaterialHeaders(headers)

	result := &ImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	seen := make(map[string]bool)

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		values := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			values[key] = value
		}

		var rowErrors []ImportError

		name := values["name"]
		if name == "" {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Field: "Name", Message: "Name is required"})
		} else if seen[strings.ToLower(name)] {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Field: "Name", Message: fmt.Sprintf("Duplicate material %q in file", name)})
		}

		unit := values["unit"]
		if unit == "" {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Field: "Unit", Message: "Unit is required"})
		}

		var unitPrice float64
		priceStr := values["unit_price"]
		if priceStr == "" {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Field: "Unit Price", Message: "Unit Price is required"})
		} else {
			unitPrice, err = strconv.ParseFloat(strings.ReplaceAll(priceStr, ",", "."), 64)
			if err != nil {
				rowErrors = append(rowErrors, ImportError{Row: rowNum, Field: "Unit Price", Message: fmt.Sprintf("%q is not a number", priceStr)})
			} else if unitPrice < 0 {
				rowErrors = append(rowErrors, ImportError{Row: rowNum, Field: "Unit Price", Message: "Unit Price must be zero or greater"})
			}
		}

		if len(rowErrors) > 0 {
			result.ErrorRows++
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		seen[strings.ToLower(name)] = true
		result.ValidRows++
		result.ParsedRows = append(result.ParsedRows, MaterialRow{
			Name:      name,
			Unit:      unit,
			UnitPrice: unitPrice,
		})
	}

	return result, nil
}

// CommitMaterials saves validated catalog rows to the materials collection.
// Rows whose name already exists in the catalog are skipped, keeping the
// existing entry untouched. Returns the number of records created.
func CommitMaterials(app *pocketbase.PocketBase, rows []MaterialRow) (int, error) {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return 0, fmt.Errorf("materials collection not found: %w", err)
	}

	created := 0
	for _, row := range rows {
		existing, err := app.FindRecordsByFilter(
			"materials",
			"name = {:name}",
			"",
			1,
			0,
			map[string]any{"name": row.Name},
		)
		if err == nil && len(existing) > 0 {
			continue
		}

		record := core.NewRecord(col)
		record.Set("name", row.Name)
		record.Set("unit", row.Unit)
		record.Set("unit_price", row.UnitPrice)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			return created, fmt.Errorf("save material %q: %w", row.Name, err)
		}
		created++
	}

	return created, nil
}
