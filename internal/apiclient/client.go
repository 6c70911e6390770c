// Package apiclient is a typed client for the documents/clients REST API.
// Failures — transport errors and non-2xx responses alike — surface
// immediately as errors; there are no retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
)

// Client talks to one API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL (e.g. "http://localhost:3001").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// DocumentPayload is the body of document create/update calls. Content is
// serialized as-is into the request.
type DocumentPayload struct {
	Type       string  `json:"type"`
	ClientName string  `json:"clientName"`
	Date       string  `json:"date"`
	Total      float64 `json:"total"`
	Content    any     `json:"content"`
}

// Document is a full saved record as returned by a get-by-id call.
type Document struct {
	ID         uint            `json:"id"`
	Type       string          `json:"type"`
	ClientName string          `json:"clientName"`
	Date       string          `json:"date"`
	Total      float64         `json:"total"`
	Content    json.RawMessage `json:"content"`
	CreatedAt  string          `json:"created_at"`
}

// DecodeContent unmarshals the content blob into v. Rows written by older
// versions may hold the blob double-encoded as a JSON string; both shapes
// decode.
func (d Document) DecodeContent(v any) error {
	raw := d.Content
	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		raw = []byte(nested)
	}
	return json.Unmarshal(raw, v)
}

// DocumentSummary is a list-view row (no content).
type DocumentSummary struct {
	ID         uint    `json:"id"`
	Type       string  `json:"type"`
	ClientName string  `json:"clientName"`
	Date       string  `json:"date"`
	Total      float64 `json:"total"`
	CreatedAt  string  `json:"created_at"`
}

// ClientPayload is the body of client create/update calls.
type ClientPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ICE     string `json:"ice"`
	IFID    string `json:"if_id"`
	TaxePro string `json:"taxe_pro"`
	Phone   string `json:"phone"`
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do issues the request and decodes the response envelope, returning the
// raw data payload.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, decErr)
	}
	if resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return env.Data, nil
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 API response.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// ListDocuments fetches all document summaries, newest first.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/documents", nil)
	if err != nil {
		return nil, err
	}
	var docs []DocumentSummary
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}

// GetDocument fetches a full record including its content blob.
func (c *Client) GetDocument(ctx context.Context, id uint) (Document, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/documents/%d", id), nil)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// CreateDocument saves a new document and returns its assigned id.
func (c *Client) CreateDocument(ctx context.Context, payload DocumentPayload) (uint, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/documents", payload)
	if err != nil {
		return 0, err
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return 0, fmt.Errorf("decode create response: %w", err)
	}
	return created.ID, nil
}

// UpdateDocument replaces the document with the given id.
func (c *Client) UpdateDocument(ctx context.Context, id uint, payload DocumentPayload) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/documents/%d", id), payload)
	return err
}

// DeleteDocument removes the document with the given id.
func (c *Client) DeleteDocument(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/documents/%d", id), nil)
	return err
}

// ListClients fetches all clients with their per-type document counts.
func (c *Client) ListClients(ctx context.Context) ([]models.ClientSummary, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/clients", nil)
	if err != nil {
		return nil, err
	}
	var clients []models.ClientSummary
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

// CreateClient creates a client and returns the stored record.
func (c *Client) CreateClient(ctx context.Context, payload ClientPayload) (models.Client, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/clients", payload)
	if err != nil {
		return models.Client{}, err
	}
	var client models.Client
	if err := json.Unmarshal(data, &client); err != nil {
		return models.Client{}, fmt.Errorf("decode client: %w", err)
	}
	return client, nil
}

// UpdateClient replaces the client with the given id and returns the
// updated record.
func (c *Client) UpdateClient(ctx context.Context, id uint, payload ClientPayload) (models.Client, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), payload)
	if err != nil {
		return models.Client{}, err
	}
	var client models.Client
	if err := json.Unmarshal(data, &client); err != nil {
		return models.Client{}, fmt.Errorf("decode client: %w", err)
	}
	return client, nil
}

// DeleteClient removes the client with the given id. Documents referencing
// it by name are untouched.
func (c *Client) DeleteClient(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil)
	return err
}
