package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleQuoteUpdate_DiscountRecomputesTotal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Q-2026-0001", "Test quote")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, "Board", 10, 10, 0)

	handler := HandleQuoteUpdate(app)

	req := newJSONRequest(http.MethodPatch, "/api/quotes/"+quote.Id, `{"additional_discounts": 13}`)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// subtotal 100, IVA 13% = 13, minus 13 discount = 100
	updated, _ := app.FindRecordById("quotes", quote.Id)
	if got := updated.GetFloat("total"); !floatClose(got, 100) {
		t.Errorf("total = %v, want 100", got)
	}
}

func TestHandleQuoteUpdate_TaxRatesRecomputeTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Q-2026-0001", "Test quote")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, "Board", 10, 10, 0)

	handler := HandleQuoteUpdate(app)

	req := newJSONRequest(http.MethodPatch, "/api/quotes/"+quote.Id, `{"tax_rates": {"IVA": 13, "Eco": 2}}`)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	// subtotal 100, taxes 13 + 2 = 15
	updated, _ := app.FindRecordById("quotes", quote.Id)
	if got := updated.GetFloat("total_taxes"); !floatClose(got, 15) {
		t.Errorf("total_taxes = %v, want 15", got)
	}
	if got := updated.GetFloat("total"); !floatClose(got, 115) {
		t.Errorf("total = %v, want 115", got)
	}
}

func TestHandleQuoteUpdate_InvalidStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Q-2026-0001", "Test quote")

	handler := HandleQuoteUpdate(app)

	req := newJSONRequest(http.MethodPatch, "/api/quotes/"+quote.Id, `{"status": "archived"}`)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleQuoteUpdate_StatusTransition(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Q-2026-0001", "Test quote")

	handler := HandleQuoteUpdate(app)

	req := newJSONRequest(http.MethodPatch, "/api/quotes/"+quote.Id, `{"status": "sent"}`)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, _ := app.FindRecordById("quotes", quote.Id)
	if got := updated.GetString("status"); got != "sent" {
		t.Errorf("status = %q, want sent", got)
	}
}

func TestHandleQuoteUpdate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteUpdate(app)

	req := newJSONRequest(http.MethodPatch, "/api/quotes/missing", `{"title": "X"}`)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
