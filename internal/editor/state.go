// Package editor holds the in-memory working state of the document being
// composed: issuer and client info, document settings, line items and the
// derived total. It is the Go counterpart of what the browser UI keeps in
// its form state, and drives create-vs-update persistence against the API.
package editor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/apiclient"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
)

// Item is one line of the document.
type Item struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// LineTotal is the item's quantity × unit price.
func (it Item) LineTotal() float64 {
	return it.Quantity * it.Price
}

// IssuerInfo is the auto-entrepreneur's own identity block.
type IssuerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	ICE     string `json:"ice"`
	IF      string `json:"if"`
	AeID    string `json:"aeId"`
}

// ClientInfo is the client identity block carried on the document.
type ClientInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ICE     string `json:"ice"`
	IF      string `json:"if"`
	TaxePro string `json:"taxePro"`
	Phone   string `json:"phone"`
}

// DocSettings holds the document header fields.
type DocSettings struct {
	Type   string `json:"type"` // FACTURE or DEVIS
	Number string `json:"number"`
	Date   string `json:"date"` // ISO date
}

// WorkingState is the complete editable document. Total is derived from
// Items and recomputed on every mutation; it is never set directly.
// TotalInWords is free text with no automatic tie to Total — it can go
// stale, and that is accepted behavior.
type WorkingState struct {
	MyInfo       IssuerInfo  `json:"myInfo"`
	ClientInfo   ClientInfo  `json:"clientInfo"`
	DocSettings  DocSettings `json:"docSettings"`
	Items        []Item      `json:"items"`
	Total        float64     `json:"total"`
	TotalInWords string      `json:"totalInWords"`
}

// ComputeTotal sums quantity × price over all items.
func ComputeTotal(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

// Clone returns a deep copy; the items slice is never shared.
func (s WorkingState) Clone() WorkingState {
	out := s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// Section addresses a field group for UpdateField.
type Section string

const (
	SectionMyInfo      Section = "myInfo"
	SectionClientInfo  Section = "clientInfo"
	SectionDocSettings Section = "docSettings"
	SectionRoot        Section = "root"
)

// Editor owns a working state plus the server id of the document this
// editing session maps to (zero until the first successful save or a load).
// All mutations are synchronous; State always reflects the latest total.
type Editor struct {
	state WorkingState
	docID uint
	api   *apiclient.Client
}

// NewEditor seeds the editor from the bundled default profile with today's
// date stamped into the document settings.
func NewEditor(api *apiclient.Client) *Editor {
	e := &Editor{api: api}
	e.Reset()
	return e
}

// State returns a snapshot of the working state.
func (e *Editor) State() WorkingState {
	return e.state.Clone()
}

// DocumentID returns the server id bound to this session, zero if the
// document has never been saved.
func (e *Editor) DocumentID() uint {
	return e.docID
}

// Reset reloads the default profile and stamps today's date; the session is
// detached from any server id, so the next save creates a new document.
func (e *Editor) Reset() {
	e.state = DefaultTemplate()
	e.docID = 0
	e.state.Total = ComputeTotal(e.state.Items)
}

// UpdateField sets a single field in the given section. Assignments are
// explicit per field rather than reflective so a schema change cannot
// silently start carrying unintended values.
func (e *Editor) UpdateField(section Section, field, value string) error {
	switch section {
	case SectionMyInfo:
		switch field {
		case "name":
			e.state.MyInfo.Name = value
		case "address":
			e.state.MyInfo.Address = value
		case "phone":
			e.state.MyInfo.Phone = value
		case "ice":
			e.state.MyInfo.ICE = value
		case "if":
			e.state.MyInfo.IF = value
		case "aeId":
			e.state.MyInfo.AeID = value
		default:
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
	case SectionClientInfo:
		switch field {
		case "name":
			e.state.ClientInfo.Name = value
		case "address":
			e.state.ClientInfo.Address = value
		case "ice":
			e.state.ClientInfo.ICE = value
		case "if":
			e.state.ClientInfo.IF = value
		case "taxePro":
			e.state.ClientInfo.TaxePro = value
		case "phone":
			e.state.ClientInfo.Phone = value
		default:
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
	case SectionDocSettings:
		switch field {
		case "type":
			e.state.DocSettings.Type = value
		case "number":
			e.state.DocSettings.Number = value
		case "date":
			e.state.DocSettings.Date = value
		default:
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
	case SectionRoot:
		switch field {
		case "totalInWords":
			e.state.TotalInWords = value
		default:
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return nil
}

// AddItem appends a blank zero-quantity, zero-price row.
func (e *Editor) AddItem() {
	e.state.Items = append(e.state.Items, Item{})
	e.state.Total = ComputeTotal(e.state.Items)
}

// RemoveItem deletes the row at index.
func (e *Editor) RemoveItem(index int) error {
	if index < 0 || index >= len(e.state.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	e.state.Items = append(e.state.Items[:index], e.state.Items[index+1:]...)
	e.state.Total = ComputeTotal(e.state.Items)
	return nil
}

// UpdateItem sets one field of the row at index. Quantity and price parse as
// decimals and must not be negative.
func (e *Editor) UpdateItem(index int, field, value string) error {
	if index < 0 || index >= len(e.state.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	switch field {
	case "description":
		e.state.Items[index].Description = value
	case "quantity":
		n, err := parseNonNegative(value)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		e.state.Items[index].Quantity = n
	case "price":
		n, err := parseNonNegative(value)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		e.state.Items[index].Price = n
	default:
		return fmt.Errorf("unknown item field %q", field)
	}
	e.state.Total = ComputeTotal(e.state.Items)
	return nil
}

func parseNonNegative(value string) (float64, error) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %v", n)
	}
	return n, nil
}

// SelectClient copies a client record into the client-info block. This is a
// destructive merge: all six fields are overwritten, prior values discarded.
func (e *Editor) SelectClient(c models.Client) {
	e.state.ClientInfo = ClientInfo{
		Name:    c.Name,
		Address: c.Address,
		ICE:     c.ICE,
		IF:      c.IFID,
		TaxePro: c.TaxePro,
		Phone:   c.Phone,
	}
}

// Load replaces the entire working state with a saved document's content and
// binds the session to its id, so subsequent saves update in place.
func (e *Editor) Load(doc apiclient.Document) error {
	var state WorkingState
	if err := doc.DecodeContent(&state); err != nil {
		return fmt.Errorf("decode document %d content: %w", doc.ID, err)
	}
	e.state = state
	e.docID = doc.ID
	return nil
}

// Save serializes the working state and creates or updates the server
// document: the first save of a fresh session POSTs, and once an id is known
// every later save PUTs the same id. Last write wins; there is no conflict
// detection.
func (e *Editor) Save(ctx context.Context) (uint, error) {
	payload := apiclient.DocumentPayload{
		Type:       e.state.DocSettings.Type,
		ClientName: e.state.ClientInfo.Name,
		Date:       e.state.DocSettings.Date,
		Total:      e.state.Total,
		Content:    e.state,
	}
	if e.docID != 0 {
		if err := e.api.UpdateDocument(ctx, e.docID, payload); err != nil {
			return 0, err
		}
		return e.docID, nil
	}
	id, err := e.api.CreateDocument(ctx, payload)
	if err != nil {
		return 0, err
	}
	e.docID = id
	return id, nil
}
