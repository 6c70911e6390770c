package editor

import (
	"context"
	"strings"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/apiclient"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
)

// Directory is the fetched client list backing the selector: loaded once,
// searched locally, and extended inline when a new client is created mid-edit.
type Directory struct {
	api     *apiclient.Client
	clients []models.ClientSummary
}

func NewDirectory(api *apiclient.Client) *Directory {
	return &Directory{api: api}
}

// Refresh fetches the full client list from the API.
func (d *Directory) Refresh(ctx context.Context) error {
	clients, err := d.api.ListClients(ctx)
	if err != nil {
		return err
	}
	d.clients = clients
	return nil
}

// Clients returns the cached list.
func (d *Directory) Clients() []models.ClientSummary {
	out := make([]models.ClientSummary, len(d.clients))
	copy(out, d.clients)
	return out
}

// Search filters the cached list by case-insensitive substring match on the
// client name. An empty term returns everything.
func (d *Directory) Search(term string) []models.ClientSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return d.Clients()
	}
	var out []models.ClientSummary
	for _, c := range d.clients {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

// CreateAndSelect creates a client through the API, adds it to the cached
// list and immediately selects it into the editor's client-info block.
func (d *Directory) CreateAndSelect(ctx context.Context, e *Editor, payload apiclient.ClientPayload) (models.Client, error) {
	created, err := d.api.CreateClient(ctx, payload)
	if err != nil {
		return models.Client{}, err
	}
	d.clients = append(d.clients, models.ClientSummary{
		ID:        created.ID,
		Name:      created.Name,
		Address:   created.Address,
		ICE:       created.ICE,
		IFID:      created.IFID,
		TaxePro:   created.TaxePro,
		Phone:     created.Phone,
		CreatedAt: created.CreatedAt,
	})
	e.SelectClient(created)
	return created, nil
}

// Select copies the summary row's identity fields into the editor.
func (d *Directory) Select(e *Editor, c models.ClientSummary) {
	e.SelectClient(models.Client{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		ICE:     c.ICE,
		IFID:    c.IFID,
		TaxePro: c.TaxePro,
		Phone:   c.Phone,
	})
}
