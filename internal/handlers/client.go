package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/httpx"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"gorm.io/gorm"
)

// ClientHandler serves the /api/clients endpoints.
type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type clientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ICE     string `json:"ice"`
	IFID    string `json:"if_id"`
	TaxePro string `json:"taxe_pro"`
	Phone   string `json:"phone"`
}

// List: GET /api/clients – alphabetical, each row carrying how many invoices
// and quotes reference it. The join is on the client name, not an id, so the
// counts follow whatever documents currently carry that exact name.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clients []models.ClientSummary
	err := h.db.Model(&models.Client{}).
		Select("clients.id, clients.name, clients.address, clients.ice, clients.if_id, clients.taxe_pro, clients.phone, clients.created_at, " +
			"COUNT(CASE WHEN documents.type = 'FACTURE' THEN 1 END) AS invoices_count, " +
			"COUNT(CASE WHEN documents.type = 'DEVIS' THEN 1 END) AS quotes_count").
		Joins("LEFT JOIN documents ON documents.client_name = clients.name").
		Group("clients.id, clients.name, clients.address, clients.ice, clients.if_id, clients.taxe_pro, clients.phone, clients.created_at").
		Order("clients.name ASC").
		Scan(&clients).Error
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if clients == nil {
		clients = []models.ClientSummary{}
	}
	httpx.Success(w, clients)
}

// Create: POST /api/clients – name is the only required field; returns the
// created record including its assigned id.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	client := models.Client{
		Name:    req.Name,
		Address: req.Address,
		ICE:     req.ICE,
		IFID:    req.IFID,
		TaxePro: req.TaxePro,
		Phone:   req.Phone,
	}
	if err := h.db.Create(&client).Error; err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.Success(w, client)
}

// Update: PUT /api/clients/{id} – full replace; returns the updated record.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	res := h.db.Model(&models.Client{}).Where("id = ?", id).Updates(map[string]any{
		"name":     req.Name,
		"address":  req.Address,
		"ice":      req.ICE,
		"if_id":    req.IFID,
		"taxe_pro": req.TaxePro,
		"phone":    req.Phone,
	})
	if res.Error != nil {
		httpx.Error(w, http.StatusBadRequest, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "Client not found")
		return
	}
	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.Success(w, client)
}

// Delete: DELETE /api/clients/{id} – does not check or cascade document
// references; documents keep their denormalized client name.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.Delete(&models.Client{}, id)
	if res.Error != nil {
		httpx.Error(w, http.StatusBadRequest, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "Client not found")
		return
	}
	httpx.Changed(w, "deleted", res.RowsAffected)
}
