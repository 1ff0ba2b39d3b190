package services

import (
	"log/slog"

	"autocorrect/internal/llm/client"
	"autocorrect/internal/repositories"
)

// Services aggregates the application services wired to one config store.
type Services struct {
	Catalog    ModelCatalog
	Config     ConfigService
	Modes      ModeService
	History    HistoryService
	Generation GenerationService
}

// NewServices constructs the service container. history may be nil when the
// generation history is disabled.
func NewServices(
	catalog ModelCatalog,
	configRepo repositories.ConfigRepository,
	history repositories.GenerationRecordRepository,
	adapters client.Registry,
	logger *slog.Logger,
) *Services {
	modes := NewModeService(configRepo, catalog, logger)
	historySvc := NewHistoryService(history, logger)
	return &Services{
		Catalog:    catalog,
		Config:     NewConfigService(configRepo, catalog, historySvc),
		Modes:      modes,
		History:    historySvc,
		Generation: NewGenerationService(configRepo, modes, catalog, adapters, historySvc, logger),
	}
}
