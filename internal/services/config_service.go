package services

import (
	"context"
	"fmt"
	"strings"

	"autocorrect/internal/models"
	"autocorrect/internal/repositories"
)

// Settings is the config surface read by the UI.
type Settings struct {
	HasKey         bool                  `json:"has_key"`
	APIKey         *string               `json:"api_key"`
	Model          string                `json:"model"`
	Theme          string                `json:"theme"`
	Shortcut       string                `json:"shortcut"`
	CustomEndpoint models.CustomEndpoint `json:"custom_endpoint"`
}

// SettingsUpdate is the config surface written by the UI. An empty APIKey
// erases the whole configuration along with the generation history.
type SettingsUpdate struct {
	APIKey         string                 `json:"api_key"`
	Model          string                 `json:"model"`
	Theme          string                 `json:"theme"`
	Shortcut       string                 `json:"shortcut"`
	CustomEndpoint *models.CustomEndpoint `json:"custom_endpoint,omitempty"`
}

type ConfigService interface {
	Settings() Settings
	// UpdateSettings reports whether the global shortcut changed so the
	// hotkey listener can be restarted.
	UpdateSettings(update SettingsUpdate) (bool, error)
	CustomEndpoint() models.CustomEndpoint
	SaveCustomEndpoint(url, modelName string, style models.EndpointStyle) (models.CustomEndpoint, error)
	CheckWhatsNew() (bool, int, error)
	ResetShortcut() error
	Snapshot() *models.AppConfig
}

type configService struct {
	repo    repositories.ConfigRepository
	catalog ModelCatalog
	history HistoryService
}

// NewConfigService returns the settings service. history may be nil; when set
// it is cleared together with the configuration file.
func NewConfigService(repo repositories.ConfigRepository, catalog ModelCatalog, history HistoryService) ConfigService {
	return &configService{repo: repo, catalog: catalog, history: history}
}

func (s *configService) Snapshot() *models.AppConfig {
	return s.repo.Load()
}

func (s *configService) Settings() Settings {
	cfg := s.repo.Load()
	out := Settings{
		HasKey:   cfg.Key() != "",
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Theme:    cfg.Theme,
		Shortcut: cfg.Shortcut,
	}
	if out.Theme == "" {
		out.Theme = models.DefaultTheme
	}
	if out.Shortcut == "" {
		out.Shortcut = models.DefaultShortcut
	}
	if cfg.CustomEndpoint != nil {
		out.CustomEndpoint = *cfg.CustomEndpoint
	}
	return out
}

func (s *configService) UpdateSettings(update SettingsUpdate) (bool, error) {
	apiKey := strings.TrimSpace(update.APIKey)
	if apiKey == "" {
		if err := s.repo.Delete(); err != nil {
			return false, fmt.Errorf("erase configuration: %w", err)
		}
		if s.history != nil {
			if err := s.history.Clear(context.Background()); err != nil {
				return false, fmt.Errorf("erase history: %w", err)
			}
		}
		return false, nil
	}

	modelID := strings.TrimSpace(update.Model)
	if modelID == "" {
		return false, fmt.Errorf("%w: model is required", ErrIncompleteConfig)
	}
	if s.catalog != nil {
		if _, ok := s.catalog.GetModel(modelID); !ok {
			return false, fmt.Errorf("%w: unknown model %s", ErrValidation, modelID)
		}
	}

	theme := strings.TrimSpace(update.Theme)
	if theme == "" {
		theme = models.DefaultTheme
	}
	if theme != "light" && theme != "dark" {
		return false, fmt.Errorf("%w: theme must be 'light' or 'dark'", ErrValidation)
	}

	shortcut := strings.TrimSpace(update.Shortcut)
	if shortcut == "" {
		shortcut = models.DefaultShortcut
	}

	patch := models.ConfigPatch{
		APIKey:      &apiKey,
		Model:       &modelID,
		Theme:       &theme,
		LastVersion: intPtr(models.CurrentVersion),
		Shortcut:    &shortcut,
	}
	if update.CustomEndpoint != nil {
		endpoint, err := normalizeEndpoint(update.CustomEndpoint.URL, update.CustomEndpoint.ModelName, update.CustomEndpoint.Style)
		if err != nil {
			return false, err
		}
		patch.CustomEndpoint = &endpoint
	}

	previous := s.Settings().Shortcut
	if err := s.repo.Save(patch); err != nil {
		return false, err
	}
	return previous != shortcut, nil
}

func (s *configService) CustomEndpoint() models.CustomEndpoint {
	cfg := s.repo.Load()
	if cfg.CustomEndpoint == nil {
		return models.CustomEndpoint{Style: models.StyleOpenAI}
	}
	out := *cfg.CustomEndpoint
	if out.Style == "" {
		out.Style = models.StyleOpenAI
	}
	return out
}

func (s *configService) SaveCustomEndpoint(url, modelName string, style models.EndpointStyle) (models.CustomEndpoint, error) {
	endpoint, err := normalizeEndpoint(url, modelName, style)
	if err != nil {
		return models.CustomEndpoint{}, err
	}
	if err := s.repo.Save(models.ConfigPatch{CustomEndpoint: &endpoint}); err != nil {
		return models.CustomEndpoint{}, err
	}
	return endpoint, nil
}

// CheckWhatsNew reports, once per release, that the what's new notice
// should be shown.
func (s *configService) CheckWhatsNew() (bool, int, error) {
	cfg := s.repo.Load()
	if cfg.LastVersion >= models.CurrentVersion {
		return false, models.CurrentVersion, nil
	}
	if err := s.repo.Save(models.ConfigPatch{LastVersion: intPtr(models.CurrentVersion)}); err != nil {
		return false, models.CurrentVersion, err
	}
	return true, models.CurrentVersion, nil
}

func (s *configService) ResetShortcut() error {
	shortcut := models.DefaultShortcut
	return s.repo.Save(models.ConfigPatch{Shortcut: &shortcut})
}

func normalizeEndpoint(url, modelName string, style models.EndpointStyle) (models.CustomEndpoint, error) {
	endpoint := models.CustomEndpoint{
		URL:       strings.TrimSpace(url),
		ModelName: strings.TrimSpace(modelName),
		Style:     models.EndpointStyle(strings.TrimSpace(string(style))),
	}
	switch endpoint.Style {
	case "":
		endpoint.Style = models.StyleOpenAI
	case models.StyleOpenAI, models.StyleAnthropic:
	default:
		return models.CustomEndpoint{}, fmt.Errorf("%w: endpoint style must be 'openai' or 'anthropic'", ErrValidation)
	}
	return endpoint, nil
}

func intPtr(v int) *int { return &v }
