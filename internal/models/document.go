package models

import "time"

// DocumentType distinguishes invoices from quotes.
type DocumentType string

const (
	DocumentTypeFacture DocumentType = "FACTURE"
	DocumentTypeDevis   DocumentType = "DEVIS"
)

// Document is a saved invoice or quote. Content holds the full serialized
// working state as an opaque JSON blob; Total is whatever the client computed
// at save time and is stored as-is, never recomputed server-side.
type Document struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Type       DocumentType `gorm:"size:20" json:"type"`
	ClientName string       `gorm:"size:255" json:"clientName"`
	Date       string       `gorm:"size:20" json:"date"`
	Total      float64      `json:"total"`
	Content    string       `gorm:"type:text" json:"-"`
	CreatedAt  time.Time    `json:"created_at"`
}

// DocumentSummary is the list-view projection: everything except Content,
// which is excluded for payload size.
type DocumentSummary struct {
	ID         uint         `json:"id"`
	Type       DocumentType `json:"type"`
	ClientName string       `json:"clientName"`
	Date       string       `json:"date"`
	Total      float64      `json:"total"`
	CreatedAt  time.Time    `json:"created_at"`
}
