package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/httpx"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the document list as CSV or XLSX attachments.
type ExportHandler struct {
	db *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

var exportHeader = []string{"ID", "Type", "Client", "Date", "Total (DH)", "Créé le"}

func (h *ExportHandler) summaries() ([]models.DocumentSummary, error) {
	var docs []models.DocumentSummary
	err := h.db.Model(&models.Document{}).
		Select("id, type, client_name, date, total, created_at").
		Order("created_at DESC").
		Scan(&docs).Error
	return docs, err
}

// CSV: GET /api/documents/export/csv
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	docs, err := h.summaries()
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"documents_%s.csv\"", time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps pick up accented client names
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(w)
	defer writer.Flush()

	_ = writer.Write(exportHeader)
	for _, d := range docs {
		_ = writer.Write([]string{
			strconv.FormatUint(uint64(d.ID), 10),
			string(d.Type),
			d.ClientName,
			d.Date,
			strconv.FormatFloat(d.Total, 'f', 2, 64),
			d.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
}

// XLSX: GET /api/documents/export/xlsx
func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	docs, err := h.summaries()
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := "Documents"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	header := make([]any, len(exportHeader))
	for i, v := range exportHeader {
		header[i] = v
	}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, d := range docs {
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(sheet, cell, &[]any{
			d.ID, string(d.Type), d.ClientName, d.Date, d.Total,
			d.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"documents_%s.xlsx\"", time.Now().Format("20060102")))
	_, _ = w.Write(buf.Bytes())
}
