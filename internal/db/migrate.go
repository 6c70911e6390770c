package db

import (
	"fmt"
	"log"
	"time"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/config"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database. A PostgreSQL URL takes precedence;
// without one a local SQLite file is used. Postgres connections are retried a
// few times to let the database come up alongside the server.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.URL == "" {
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	}

	var conn *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		conn, err = gorm.Open(postgres.Open(cfg.URL), &gorm.Config{})
		if err == nil {
			return conn, nil
		}
		log.Printf("database connection attempt %d/5 failed, retrying...", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("database connection failed: %w", err)
}

// Migrate creates the documents and clients tables if they are missing.
// Schema management stays additive; existing rows, including old content
// blobs, are left untouched.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Document{},
		&models.Client{},
	)
}
