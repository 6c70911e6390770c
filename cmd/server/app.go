package main

import (
	"net/http"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/handlers"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withCORS(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all API routes. Every endpoint is public: access
// control lives entirely in the UI gate, which is a deterrent, not a
// security boundary.
func (a *App) setupRoutes() {
	dh := handlers.NewDocumentHandler(a.db)
	ch := handlers.NewClientHandler(a.db)
	eh := handlers.NewExportHandler(a.db)

	// Documents
	a.mux.HandleFunc("GET /api/documents", dh.List)
	a.mux.HandleFunc("GET /api/documents/export/csv", eh.CSV)
	a.mux.HandleFunc("GET /api/documents/export/xlsx", eh.XLSX)
	a.mux.HandleFunc("GET /api/documents/{id}", dh.Get)
	a.mux.HandleFunc("POST /api/documents", dh.Create)
	a.mux.HandleFunc("PUT /api/documents/{id}", dh.Update)
	a.mux.HandleFunc("DELETE /api/documents/{id}", dh.Delete)

	// Clients
	a.mux.HandleFunc("GET /api/clients", ch.List)
	a.mux.HandleFunc("POST /api/clients", ch.Create)
	a.mux.HandleFunc("PUT /api/clients/{id}", ch.Update)
	a.mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)
}

// withCORS allows the browser UI, served from another origin during
// development, to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
