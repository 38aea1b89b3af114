package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quotedesk/testhelpers"
)

func TestHandleQuoteCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestTaxRate(t, app, "IVA", 13)

	handler := HandleQuoteCreate(app)

	body := `{"title": "Kitchen cabinets", "client_name": "Acme Interiors"}`
	req := newJSONRequest(http.MethodPost, "/api/quotes", body)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	wantNumber := fmt.Sprintf("Q-%d-0001", time.Now().Year())
	if resp["number"] != wantNumber {
		t.Errorf("number = %v, want %s", resp["number"], wantNumber)
	}
	if resp["status"] != "draft" {
		t.Errorf("status = %v, want draft", resp["status"])
	}

	// Default catalog tax was attached.
	taxes, ok := resp["tax_rates"].(map[string]any)
	if !ok || len(taxes) != 1 {
		t.Fatalf("tax_rates = %v, want one entry", resp["tax_rates"])
	}
	if rate, _ := taxes["IVA"].(float64); rate != 13 {
		t.Errorf("IVA rate = %v, want 13", taxes["IVA"])
	}

	// Persisted record exists.
	if _, err := app.FindRecordById("quotes", resp["id"].(string)); err != nil {
		t.Errorf("created quote not found in db: %v", err)
	}
}

func TestHandleQuoteCreate_MissingTitle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteCreate(app)

	req := newJSONRequest(http.MethodPost, "/api/quotes", `{"title": "  "}`)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	fields, _ := resp["fields"].(map[string]any)
	if _, ok := fields["title"]; !ok {
		t.Errorf("expected a title field error, got %v", resp)
	}
}

func TestHandleQuoteCreate_SequentialNumbers(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteCreate(app)

	for i := 1; i <= 3; i++ {
		req := newJSONRequest(http.MethodPost, "/api/quotes", `{"title": "Quote"}`)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}

		resp := decodeBody(t, rec)
		want := fmt.Sprintf("Q-%d-%04d", time.Now().Year(), i)
		if resp["number"] != want {
			t.Errorf("quote %d number = %v, want %s", i, resp["number"], want)
		}
	}
}
