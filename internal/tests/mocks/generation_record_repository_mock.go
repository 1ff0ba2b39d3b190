package mocks

import (
	"context"

	"autocorrect/internal/models"
)

type GenerationRecordRepositoryMock struct {
	CreateFunc     func(ctx context.Context, rec *models.GenerationRecord) error
	ListRecentFunc func(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	DeleteAllFunc  func(ctx context.Context) error
}

func (m *GenerationRecordRepositoryMock) Create(ctx context.Context, rec *models.GenerationRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *GenerationRecordRepositoryMock) ListRecent(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []models.GenerationRecord{}, nil
}

func (m *GenerationRecordRepositoryMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}
