package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"autocorrect/internal/models"
	"autocorrect/internal/utils"
)

const configFileMode = 0o600

// ConfigRepository owns the JSON config file. Every Load reads the file again;
// callers get a private copy and persist changes through Save.
type ConfigRepository interface {
	Load() *models.AppConfig
	Save(patch models.ConfigPatch) error
	Delete() error
	Path() string
}

type configRepository struct {
	path   string
	logger *slog.Logger
}

func NewConfigRepository(path string, logger *slog.Logger) ConfigRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &configRepository{path: path, logger: logger.With("component", "config")}
}

func (r *configRepository) Path() string {
	return r.path
}

// Load decodes the file over the defaults, so any key missing from the file
// keeps its default value and any key present wins. Read or parse failures
// are logged and yield a fresh default config.
func (r *configRepository) Load() *models.AppConfig {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Error("failed to read configuration", "path", r.path, "error", err)
		}
		return models.DefaultAppConfig()
	}

	cfg := models.DefaultAppConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		r.logger.Error("failed to parse configuration", "path", r.path, "error", err)
		return models.DefaultAppConfig()
	}

	// An explicit null must not leave the dispatcher without an endpoint.
	if cfg.CustomEndpoint == nil {
		cfg.CustomEndpoint = &models.CustomEndpoint{Style: models.StyleOpenAI}
	}
	return cfg
}

// Save overlays patch on the current config and rewrites the whole file.
func (r *configRepository) Save(patch models.ConfigPatch) error {
	cfg := r.Load()
	patch.Apply(cfg)
	if cfg.CustomEndpoint == nil {
		cfg.CustomEndpoint = &models.CustomEndpoint{}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		r.logger.Error("failed to encode configuration", "error", err)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := utils.WriteFileAtomic(r.path, data, configFileMode); err != nil {
		r.logger.Error("failed to save configuration", "path", r.path, "error", err)
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Delete removes the config file; the next Load returns defaults.
func (r *configRepository) Delete() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Error("failed to delete configuration", "path", r.path, "error", err)
		return fmt.Errorf("delete config: %w", err)
	}
	return nil
}
