package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleMaterialList_ActiveOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Pine board", "m", 3.50)
	inactive := testhelpers.CreateTestMaterial(t, app, "Old stock", "pcs", 1)
	inactive.Set("active", false)
	if err := app.Save(inactive); err != nil {
		t.Fatalf("save: %v", err)
	}

	handler := HandleMaterialList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	resp := decodeBody(t, rec)
	materials, _ := resp["materials"].([]any)
	if len(materials) != 1 {
		t.Fatalf("expected 1 active material, got %d", len(materials))
	}

	// all=1 includes the inactive one.
	req = httptest.NewRequest(http.MethodGet, "/api/materials?all=1", nil)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	resp = decodeBody(t, rec)
	materials, _ = resp["materials"].([]any)
	if len(materials) != 2 {
		t.Errorf("expected 2 materials with all=1, got %d", len(materials))
	}
}

func TestHandleMaterialCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialCreate(app)

	body := `{"name": "Oak veneer", "unit": "sqm", "unit_price": 15.40}`
	req := newJSONRequest(http.MethodPost, "/api/materials", body)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	record, err := app.FindRecordById("materials", resp["id"].(string))
	if err != nil {
		t.Fatalf("created material not found: %v", err)
	}
	if got := record.GetFloat("unit_price"); got != 15.40 {
		t.Errorf("unit_price = %v, want 15.40", got)
	}
	if !record.GetBool("active") {
		t.Error("new material should be active")
	}
}

func TestHandleMaterialCreate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Pine board", "m", 3.50)

	handler := HandleMaterialCreate(app)

	body := `{"name": "Pine board", "unit": "m", "unit_price": 4}`
	req := newJSONRequest(http.MethodPost, "/api/materials", body)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for duplicate name, got %d", rec.Code)
	}
}

func TestHandleMaterialCreate_Validation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialCreate(app)

	body := `{"name": "", "unit": "", "unit_price": -1}`
	req := newJSONRequest(http.MethodPost, "/api/materials", body)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	fields, _ := resp["fields"].(map[string]any)
	for _, field := range []string{"name", "unit", "unit_price"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("missing field error for %q: %v", field, fields)
		}
	}
}
