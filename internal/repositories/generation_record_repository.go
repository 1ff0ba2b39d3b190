package repositories

import (
	"context"
	"fmt"

	"autocorrect/internal/models"

	"gorm.io/gorm"
)

type GenerationRecordRepository interface {
	Create(ctx context.Context, rec *models.GenerationRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	DeleteAll(ctx context.Context) error
}

type generationRecordRepository struct {
	db *gorm.DB
}

func NewGenerationRecordRepository(db *gorm.DB) GenerationRecordRepository {
	return &generationRecordRepository{db: db}
}

func (r *generationRecordRepository) Create(ctx context.Context, rec *models.GenerationRecord) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	if rec.ModeID == "" {
		return fmt.Errorf("mode is required")
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *generationRecordRepository) ListRecent(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	var records []models.GenerationRecord
	res := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Limit(limit).Find(&records)
	if res.Error != nil {
		return nil, res.Error
	}
	return records, nil
}

func (r *generationRecordRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.GenerationRecord{}).Error
}
