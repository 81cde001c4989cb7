package database

import (
	"cinema_booking/config"
	"cinema_booking/model"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDB opens the postgres connection, migrates the schema and seeds
// reference data.
func ConnectDB() error {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Get("DB_HOST", "localhost"),
		config.Int("DB_PORT", 5432),
		config.Config("DB_USER"),
		config.Config("DB_PASSWORD"),
		config.Config("DB_NAME"))

	gormLogger := logger.Default.LogMode(logger.Warn)
	if config.Config("APP_ENV") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	log.Info().Msg("connection opened to database")

	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info().Msg("database migrated")

	SeedData(DB)
	return nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Rank{},
		&model.Account{},
		&model.Member{},
		&model.PointHistory{},
		&model.Movie{},
		&model.Showtime{},
		&model.SeatType{},
		&model.Seat{},
		&model.Food{},
		&model.Promotion{},
		&model.PromotionCondition{},
		&model.Voucher{},
		&model.Invoice{},
		&model.InvoiceSeat{},
		&model.InvoiceFood{},
		&model.Payment{},
	)
	return errors.Wrap(err, "auto migrate")
}
