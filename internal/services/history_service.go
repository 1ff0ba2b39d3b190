package services

import (
	"context"
	"log/slog"

	"autocorrect/internal/models"
	"autocorrect/internal/repositories"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

type HistoryService interface {
	// Record stores a finished generation. Failures are logged only.
	Record(ctx context.Context, rec *models.GenerationRecord)
	Recent(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	Clear(ctx context.Context) error
}

type historyService struct {
	repo   repositories.GenerationRecordRepository
	logger *slog.Logger
}

// NewHistoryService returns a history backed by repo, or a no-op history when
// repo is nil.
func NewHistoryService(repo repositories.GenerationRecordRepository, logger *slog.Logger) HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &historyService{repo: repo, logger: logger}
}

func (s *historyService) Record(ctx context.Context, rec *models.GenerationRecord) {
	if s.repo == nil || rec == nil {
		return
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Warn("record generation", "request_id", rec.RequestID, "error", err)
	}
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	if s.repo == nil {
		return []models.GenerationRecord{}, nil
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *historyService) Clear(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.DeleteAll(ctx)
}
