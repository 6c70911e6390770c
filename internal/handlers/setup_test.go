package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Document{}, &models.Client{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestMux wires the handlers the same way cmd/server does, so path
// parameters resolve in tests.
func newTestMux(db *gorm.DB) *http.ServeMux {
	dh := NewDocumentHandler(db)
	ch := NewClientHandler(db)
	eh := NewExportHandler(db)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents", dh.List)
	mux.HandleFunc("GET /api/documents/export/csv", eh.CSV)
	mux.HandleFunc("GET /api/documents/export/xlsx", eh.XLSX)
	mux.HandleFunc("GET /api/documents/{id}", dh.Get)
	mux.HandleFunc("POST /api/documents", dh.Create)
	mux.HandleFunc("PUT /api/documents/{id}", dh.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", dh.Delete)
	mux.HandleFunc("GET /api/clients", ch.List)
	mux.HandleFunc("POST /api/clients", ch.Create)
	mux.HandleFunc("PUT /api/clients/{id}", ch.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)
	return mux
}
