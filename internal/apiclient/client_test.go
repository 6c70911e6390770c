package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/handlers"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Document{}, &models.Client{}))

	dh := handlers.NewDocumentHandler(db)
	ch := handlers.NewClientHandler(db)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents", dh.List)
	mux.HandleFunc("GET /api/documents/{id}", dh.Get)
	mux.HandleFunc("POST /api/documents", dh.Create)
	mux.HandleFunc("PUT /api/documents/{id}", dh.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", dh.Delete)
	mux.HandleFunc("GET /api/clients", ch.List)
	mux.HandleFunc("POST /api/clients", ch.Create)
	mux.HandleFunc("PUT /api/clients/{id}", ch.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestDocumentLifecycle(t *testing.T) {
	api := startServer(t)
	ctx := context.Background()

	content := map[string]any{"items": []map[string]any{{"description": "Service", "quantity": 3, "price": 50}}}
	id, err := api.CreateDocument(ctx, DocumentPayload{
		Type: "FACTURE", ClientName: "Acme SARL", Date: "2024-01-01", Total: 150, Content: content,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	doc, err := api.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "FACTURE", doc.Type)
	assert.Equal(t, 150.0, doc.Total)

	var decoded map[string]any
	require.NoError(t, doc.DecodeContent(&decoded))
	assert.Contains(t, decoded, "items")

	docs, err := api.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Acme SARL", docs[0].ClientName)

	require.NoError(t, api.UpdateDocument(ctx, id, DocumentPayload{
		Type: "DEVIS", ClientName: "Acme SARL", Date: "2024-02-01", Total: 99, Content: content,
	}))
	doc, err = api.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "DEVIS", doc.Type)

	require.NoError(t, api.DeleteDocument(ctx, id))
	_, err = api.GetDocument(ctx, id)
	assert.True(t, IsNotFound(err), "get after delete must be NotFound, got %v", err)
}

func TestNotFoundErrors(t *testing.T) {
	api := startServer(t)
	ctx := context.Background()

	_, err := api.GetDocument(ctx, 42)
	assert.True(t, IsNotFound(err))

	err = api.UpdateDocument(ctx, 42, DocumentPayload{Type: "FACTURE"})
	assert.True(t, IsNotFound(err))

	err = api.DeleteDocument(ctx, 42)
	assert.True(t, IsNotFound(err))

	err = api.DeleteClient(ctx, 42)
	assert.True(t, IsNotFound(err))
}

func TestClientLifecycle(t *testing.T) {
	api := startServer(t)
	ctx := context.Background()

	created, err := api.CreateClient(ctx, ClientPayload{Name: "Acme SARL", ICE: "000123", Phone: "0600000000"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	clients, err := api.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.EqualValues(t, 0, clients[0].InvoicesCount)
	assert.EqualValues(t, 0, clients[0].QuotesCount)

	updated, err := api.UpdateClient(ctx, created.ID, ClientPayload{Name: "Acme SARL", Address: "Casablanca"})
	require.NoError(t, err)
	assert.Equal(t, "Casablanca", updated.Address)

	require.NoError(t, api.DeleteClient(ctx, created.ID))
	clients, err = api.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestTransportFailureSurfacesImmediately(t *testing.T) {
	api := New("http://127.0.0.1:1") // nothing listens here
	_, err := api.ListDocuments(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestDecodeContentHandlesDoubleEncodedBlob(t *testing.T) {
	inner := map[string]any{"total": 150.0}
	raw, err := json.Marshal(inner)
	require.NoError(t, err)
	quoted, err := json.Marshal(string(raw))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, Document{Content: quoted}.DecodeContent(&out))
	assert.Equal(t, 150.0, out["total"])

	var direct map[string]any
	require.NoError(t, Document{Content: raw}.DecodeContent(&direct))
	assert.Equal(t, 150.0, direct["total"])
}
