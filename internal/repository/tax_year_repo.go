package repository

import (
	"context"

	"officebot/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaxYearRepository interface {
	Upsert(ctx context.Context, year *model.TaxYear) error
	FindByYear(ctx context.Context, year int) (*model.TaxYear, error)
	List(ctx context.Context) ([]model.TaxYear, error)
}

type taxYearRepository struct {
	db *gorm.DB
}

func NewTaxYearRepository(db *gorm.DB) TaxYearRepository {
	return &taxYearRepository{db: db}
}

// Upsert replaces the stored document for the same year.
func (r *taxYearRepository) Upsert(ctx context.Context, year *model.TaxYear) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "ppn_rate", "note", "published_at", "updated_at"}),
	}).Create(year).Error
}

func (r *taxYearRepository) FindByYear(ctx context.Context, year int) (*model.TaxYear, error) {
	var row model.TaxYear
	if err := GetDB(ctx, r.db).First(&row, "year = ?", year).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxYearRepository) List(ctx context.Context) ([]model.TaxYear, error) {
	var rows []model.TaxYear
	if err := GetDB(ctx, r.db).Order("year asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
