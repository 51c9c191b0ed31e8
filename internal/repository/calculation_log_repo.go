package repository

import (
	"context"

	"officebot/internal/model"

	"gorm.io/gorm"
)

type CalculationLogRepository interface {
	Log(ctx context.Context, entry *model.CalculationLog) error
	List(ctx context.Context, page, limit int) ([]model.CalculationLog, int64, error)
}

type calculationLogRepository struct {
	db *gorm.DB
}

func NewCalculationLogRepository(db *gorm.DB) CalculationLogRepository {
	return &calculationLogRepository{db: db}
}

func (r *calculationLogRepository) Log(ctx context.Context, entry *model.CalculationLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *calculationLogRepository) List(ctx context.Context, page, limit int) ([]model.CalculationLog, int64, error) {
	var logs []model.CalculationLog
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.CalculationLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
