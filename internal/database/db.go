package database

import (
	"officebot/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the postgres pool and migrates the tables this service owns.
func NewConnection(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.TaxYear{},
		&model.CalculationLog{},
	); err != nil {
		log.Warn("auto-migrate failed", zap.Error(err))
	}

	return db, nil
}
