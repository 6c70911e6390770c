package models

import "time"

// Client is a customer record with the Moroccan fiscal identifiers that
// appear on invoices (ICE, IF, taxe professionnelle).
//
// Documents reference clients by name, not by id: the join key is
// documents.client_name = clients.name. Renaming a client therefore orphans
// the historical document counts for the old name. This mirrors the stored
// data of existing deployments and is kept deliberately.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"size:500" json:"address"`
	ICE       string    `gorm:"column:ice;size:50" json:"ice"`
	IFID      string    `gorm:"column:if_id;size:50" json:"if_id"`
	TaxePro   string    `gorm:"size:50" json:"taxe_pro"`
	Phone     string    `gorm:"size:50" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientSummary is a client row plus per-type document counts, as returned
// by the list endpoint.
type ClientSummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	ICE           string    `gorm:"column:ice" json:"ice"`
	IFID          string    `gorm:"column:if_id" json:"if_id"`
	TaxePro       string    `json:"taxe_pro"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
	InvoicesCount int64     `json:"invoices_count"`
	QuotesCount   int64     `json:"quotes_count"`
}
