package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupE2EDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(&models.Document{}, &models.Client{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

func TestFullDocumentFlowE2E(t *testing.T) {
	app := NewApp(setupE2EDB(t))

	// create a client
	body := `{"name":"Acme SARL","address":"Casablanca","ice":"000123","if_id":"456","taxe_pro":"789","phone":"0600000000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("create client: expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}

	// save a document for that client
	docBody := `{"type":"FACTURE","clientName":"Acme SARL","date":"2024-01-01","total":150,
		"content":{"items":[{"description":"Service","quantity":3,"price":50}],"total":150}}`
	req = httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(docBody))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("create document: expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}

	// the client list now counts one invoice, zero quotes
	req = httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list clients: expected 200 got %d", rr.Code)
	}
	var resp struct {
		Data []models.ClientSummary `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].InvoicesCount != 1 || resp.Data[0].QuotesCount != 0 {
		t.Fatalf("unexpected counts: %+v", resp.Data)
	}

	// exports respond over the same mux
	req = httptest.NewRequest(http.MethodGet, "/api/documents/export/csv", nil)
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Acme SARL") {
		t.Fatalf("csv export: code=%d", rr.Code)
	}
}

func TestCORSPreflightE2E(t *testing.T) {
	app := NewApp(setupE2EDB(t))
	req := httptest.NewRequest(http.MethodOptions, "/api/documents", nil)
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204 got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func TestUnknownDocumentE2E(t *testing.T) {
	app := NewApp(setupE2EDB(t))
	req := httptest.NewRequest(http.MethodGet, "/api/documents/9999", nil)
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "error") {
		t.Fatalf("expected error envelope: %s", rr.Body.String())
	}
}
