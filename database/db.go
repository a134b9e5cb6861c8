package database

import (
	"fmt"
	"os"

	"pinball-backend/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file loaded, relying on environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/London",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}

	log.Info().Str("host", host).Str("db", os.Getenv("DB_NAME")).Msg("database connected")
}

// AutoMigrate creates/updates all tables. Non-destructive; the stricter
// constraints live in Migrate.
func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Show{},
		&models.Contract{},
		&models.BankTransaction{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.OutgoingPayment{},
		&models.Handshake{},
		&models.Settlement{},
		&models.ImportBatch{},
		&models.IdempotencyKey{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}
}
