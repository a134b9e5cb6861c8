package ingest

import (
	"testing"

	"pinball-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Show{},
		&models.Contract{},
		&models.BankTransaction{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.Handshake{},
		&models.OutgoingPayment{},
		&models.Settlement{},
		&models.ImportBatch{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
