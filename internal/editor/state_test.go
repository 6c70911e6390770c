package editor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/apiclient"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/handlers"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// startAPI runs the real handlers over an in-memory database and returns a
// client pointed at them.
func startAPI(t *testing.T) (*apiclient.Client, *gorm.DB) {
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

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL), db
}

func TestTotalRecomputedOnEveryItemMutation(t *testing.T) {
	e := NewEditor(nil)

	// template starts with one blank row
	assert.Equal(t, 0.0, e.State().Total)

	e.AddItem()
	require.NoError(t, e.UpdateItem(0, "description", "Service"))
	require.NoError(t, e.UpdateItem(0, "quantity", "3"))
	require.NoError(t, e.UpdateItem(0, "price", "50"))
	assert.Equal(t, 150.0, e.State().Total, "total must follow quantity×price immediately")

	require.NoError(t, e.UpdateItem(1, "quantity", "2"))
	require.NoError(t, e.UpdateItem(1, "price", "19.5"))
	assert.Equal(t, 189.0, e.State().Total)

	require.NoError(t, e.RemoveItem(1))
	assert.Equal(t, 150.0, e.State().Total)

	require.NoError(t, e.UpdateItem(0, "quantity", "0"))
	assert.Equal(t, 0.0, e.State().Total)
}

func TestAddItemAppendsBlankRow(t *testing.T) {
	e := NewEditor(nil)
	before := len(e.State().Items)
	e.AddItem()
	items := e.State().Items
	require.Len(t, items, before+1)
	assert.Equal(t, Item{}, items[len(items)-1])
}

func TestUpdateItemRejectsNegativeAndGarbage(t *testing.T) {
	e := NewEditor(nil)
	assert.Error(t, e.UpdateItem(0, "quantity", "-1"))
	assert.Error(t, e.UpdateItem(0, "price", "abc"))
	assert.Error(t, e.UpdateItem(5, "price", "1"))
	assert.Error(t, e.RemoveItem(5))
}

func TestUpdateFieldExplicitAssignments(t *testing.T) {
	e := NewEditor(nil)
	require.NoError(t, e.UpdateField(SectionMyInfo, "name", "Moi"))
	require.NoError(t, e.UpdateField(SectionClientInfo, "taxePro", "TP-1"))
	require.NoError(t, e.UpdateField(SectionDocSettings, "type", "DEVIS"))
	require.NoError(t, e.UpdateField(SectionRoot, "totalInWords", "zéro dirham"))

	s := e.State()
	assert.Equal(t, "Moi", s.MyInfo.Name)
	assert.Equal(t, "TP-1", s.ClientInfo.TaxePro)
	assert.Equal(t, "DEVIS", s.DocSettings.Type)
	assert.Equal(t, "zéro dirham", s.TotalInWords)

	assert.Error(t, e.UpdateField(SectionMyInfo, "nope", "x"))
	assert.Error(t, e.UpdateField(Section("weird"), "name", "x"))
}

func TestTotalInWordsStaysStale(t *testing.T) {
	e := NewEditor(nil)
	require.NoError(t, e.UpdateField(SectionRoot, "totalInWords", "cent dirhams"))
	require.NoError(t, e.UpdateItem(0, "quantity", "2"))
	require.NoError(t, e.UpdateItem(0, "price", "100"))
	s := e.State()
	assert.Equal(t, 200.0, s.Total)
	assert.Equal(t, "cent dirhams", s.TotalInWords, "amount in words is never derived")
}

func TestSelectClientOverwritesAllSixFields(t *testing.T) {
	e := NewEditor(nil)
	require.NoError(t, e.UpdateField(SectionClientInfo, "name", "Old Co"))
	require.NoError(t, e.UpdateField(SectionClientInfo, "address", "Old Street"))
	require.NoError(t, e.UpdateField(SectionClientInfo, "phone", "0000"))

	e.SelectClient(models.Client{
		Name:    "Acme SARL",
		Address: "Casablanca",
		ICE:     "000123",
		IFID:    "456",
		TaxePro: "789",
		Phone:   "0600000000",
	})

	assert.Equal(t, ClientInfo{
		Name:    "Acme SARL",
		Address: "Casablanca",
		ICE:     "000123",
		IF:      "456",
		TaxePro: "789",
		Phone:   "0600000000",
	}, e.State().ClientInfo)
}

func TestResetReloadsTemplateAndDetachesSession(t *testing.T) {
	api, _ := startAPI(t)
	e := NewEditor(api)
	require.NoError(t, e.UpdateItem(0, "quantity", "1"))
	require.NoError(t, e.UpdateItem(0, "price", "10"))
	_, err := e.Save(context.Background())
	require.NoError(t, err)
	require.NotZero(t, e.DocumentID())

	e.Reset()
	s := e.State()
	assert.Zero(t, e.DocumentID(), "reset must detach the server id")
	assert.Equal(t, time.Now().Format("2006-01-02"), s.DocSettings.Date)
	assert.Equal(t, 0.0, s.Total)
}

func TestStateSnapshotDoesNotAliasItems(t *testing.T) {
	e := NewEditor(nil)
	snap := e.State()
	snap.Items[0].Price = 999
	assert.Equal(t, 0.0, e.State().Items[0].Price, "snapshot mutation must not leak back")
}

func TestSaveCreatesThenUpdatesSameID(t *testing.T) {
	api, db := startAPI(t)
	e := NewEditor(api)
	require.NoError(t, e.UpdateField(SectionClientInfo, "name", "Acme SARL"))
	require.NoError(t, e.UpdateItem(0, "description", "Service"))
	require.NoError(t, e.UpdateItem(0, "quantity", "3"))
	require.NoError(t, e.UpdateItem(0, "price", "50"))

	ctx := context.Background()
	id, err := e.Save(ctx)
	require.NoError(t, err)
	require.NotZero(t, id)

	// second save must update in place, not create
	require.NoError(t, e.UpdateItem(0, "price", "60"))
	id2, err := e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	var count int64
	db.Model(&models.Document{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var stored models.Document
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, 180.0, stored.Total)
	assert.Equal(t, "Acme SARL", stored.ClientName)
}

func TestSaveLoadRoundTripIsLossless(t *testing.T) {
	api, _ := startAPI(t)
	e := NewEditor(api)
	require.NoError(t, e.UpdateField(SectionMyInfo, "name", "Émetteur"))
	require.NoError(t, e.UpdateField(SectionClientInfo, "name", "Acme SARL"))
	require.NoError(t, e.UpdateField(SectionRoot, "totalInWords", "cent cinquante dirhams"))
	require.NoError(t, e.UpdateItem(0, "description", "Prestation août"))
	require.NoError(t, e.UpdateItem(0, "quantity", "3"))
	require.NoError(t, e.UpdateItem(0, "price", "50"))
	saved := e.State()

	ctx := context.Background()
	id, err := e.Save(ctx)
	require.NoError(t, err)

	doc, err := api.GetDocument(ctx, id)
	require.NoError(t, err)

	loaded := NewEditor(api)
	require.NoError(t, loaded.Load(doc))
	assert.Equal(t, saved, loaded.State(), "serialize→deserialize must be lossless")
	assert.Equal(t, id, loaded.DocumentID())

	// a loaded session saves back as an update
	id2, err := loaded.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
}
