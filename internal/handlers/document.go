package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/httpx"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"gorm.io/gorm"
)

// DocumentHandler serves the /api/documents endpoints.
type DocumentHandler struct {
	db *gorm.DB
}

func NewDocumentHandler(db *gorm.DB) *DocumentHandler {
	return &DocumentHandler{db: db}
}

// documentRequest is the body of POST and PUT. Content arrives as an
// arbitrary JSON value and is stored serialized in the text column.
type documentRequest struct {
	Type       models.DocumentType `json:"type"`
	ClientName string              `json:"clientName"`
	Date       string              `json:"date"`
	Total      float64             `json:"total"`
	Content    json.RawMessage     `json:"content"`
}

// documentResponse is the full record returned by Get, with the content
// blob decoded back into a JSON value.
type documentResponse struct {
	ID         uint                `json:"id"`
	Type       models.DocumentType `json:"type"`
	ClientName string              `json:"clientName"`
	Date       string              `json:"date"`
	Total      float64             `json:"total"`
	Content    json.RawMessage     `json:"content"`
	CreatedAt  string              `json:"created_at"`
}

// List: GET /api/documents – summaries only, newest first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	var docs []models.DocumentSummary
	err := h.db.Model(&models.Document{}).
		Select("id, type, client_name, date, total, created_at").
		Order("created_at DESC").
		Scan(&docs).Error
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if docs == nil {
		docs = []models.DocumentSummary{}
	}
	httpx.Success(w, docs)
}

// Get: GET /api/documents/{id} – full record including content.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var doc models.Document
	if err := h.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Document not found")
			return
		}
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	content := json.RawMessage(doc.Content)
	if !json.Valid(content) {
		// old rows may hold content that was double-encoded; pass it through
		// as a JSON string rather than failing the read
		quoted, _ := json.Marshal(doc.Content)
		content = quoted
	}
	httpx.Success(w, documentResponse{
		ID:         doc.ID,
		Type:       doc.Type,
		ClientName: doc.ClientName,
		Date:       doc.Date,
		Total:      doc.Total,
		Content:    content,
		CreatedAt:  doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Create: POST /api/documents – returns the assigned id.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	doc := models.Document{
		Type:       req.Type,
		ClientName: req.ClientName,
		Date:       req.Date,
		Total:      req.Total,
		Content:    string(req.Content),
	}
	if err := h.db.Create(&doc).Error; err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.Success(w, map[string]uint{"id": doc.ID})
}

// Update: PUT /api/documents/{id} – full replace of the mutable fields.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res := h.db.Model(&models.Document{}).Where("id = ?", id).Updates(map[string]any{
		"type":        req.Type,
		"client_name": req.ClientName,
		"date":        req.Date,
		"total":       req.Total,
		"content":     string(req.Content),
	})
	if res.Error != nil {
		httpx.Error(w, http.StatusBadRequest, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "Document not found")
		return
	}
	httpx.Changed(w, "updated", res.RowsAffected)
}

// Delete: DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.Delete(&models.Document{}, id)
	if res.Error != nil {
		httpx.Error(w, http.StatusBadRequest, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "Document not found")
		return
	}
	httpx.Changed(w, "deleted", res.RowsAffected)
}

// pathID parses the {id} path segment, writing a 400 on garbage input.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
