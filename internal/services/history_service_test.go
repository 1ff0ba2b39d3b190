package services_test

import (
	"context"
	"errors"
	"testing"

	"autocorrect/internal/models"
	"autocorrect/internal/services"
	"autocorrect/internal/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_RecentClampsLimit(t *testing.T) {
	var limits []int
	repo := &mocks.GenerationRecordRepositoryMock{
		ListRecentFunc: func(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
			limits = append(limits, limit)
			return []models.GenerationRecord{{ModeID: "corriger"}}, nil
		},
	}
	svc := services.NewHistoryService(repo, quietLogger())

	for _, limit := range []int{0, -3, 5, 1000} {
		records, err := svc.Recent(context.Background(), limit)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}
	assert.Equal(t, []int{services.DefaultHistoryLimit, services.DefaultHistoryLimit, 5, services.MaxHistoryLimit}, limits)
}

func TestHistoryService_RecordFailureIsSwallowed(t *testing.T) {
	called := false
	repo := &mocks.GenerationRecordRepositoryMock{
		CreateFunc: func(ctx context.Context, rec *models.GenerationRecord) error {
			called = true
			return errors.New("database is locked")
		},
	}
	svc := services.NewHistoryService(repo, quietLogger())

	svc.Record(context.Background(), &models.GenerationRecord{ModeID: "corriger"})
	assert.True(t, called)
}

func TestHistoryService_Disabled(t *testing.T) {
	svc := services.NewHistoryService(nil, quietLogger())

	svc.Record(context.Background(), &models.GenerationRecord{ModeID: "corriger"})
	records, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, svc.Clear(context.Background()))
}

func TestHistoryService_ClearPropagatesErrors(t *testing.T) {
	repo := &mocks.GenerationRecordRepositoryMock{
		DeleteAllFunc: func(ctx context.Context) error { return errors.New("disk I/O error") },
	}
	svc := services.NewHistoryService(repo, quietLogger())

	assert.EqualError(t, svc.Clear(context.Background()), "disk I/O error")
}
