package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"autocorrect/internal/assets"
	"autocorrect/internal/models"
)

// ModelCatalog exposes the built-in model descriptors and system modes.
// Both are parsed once and never mutated; callers receive copies.
type ModelCatalog interface {
	ListModels() []models.ModelDescriptor
	GetModel(id string) (models.ModelDescriptor, bool)
	SystemModes() []models.Mode
}

type modelCatalog struct {
	models   []models.ModelDescriptor
	byID     map[string]int
	modes    []models.Mode
	modeByID map[string]int
}

type rawModelFile struct {
	Models []models.ModelDescriptor `json:"models"`
}

type rawModeFile struct {
	Modes []models.Mode `json:"modes"`
}

// NewModelCatalog parses the embedded catalog assets.
func NewModelCatalog() (ModelCatalog, error) {
	return NewModelCatalogFromData(assets.ModelsData, assets.ModesData)
}

func NewModelCatalogFromData(modelsData, modesData []byte) (ModelCatalog, error) {
	var parsedModels rawModelFile
	if err := json.Unmarshal(modelsData, &parsedModels); err != nil {
		return nil, fmt.Errorf("parse models asset: %w", err)
	}
	var parsedModes rawModeFile
	if err := json.Unmarshal(modesData, &parsedModes); err != nil {
		return nil, fmt.Errorf("parse modes asset: %w", err)
	}

	c := &modelCatalog{
		byID:     make(map[string]int, len(parsedModels.Models)),
		modeByID: make(map[string]int, len(parsedModes.Modes)),
	}
	for _, mdl := range parsedModels.Models {
		mdl.ID = strings.TrimSpace(mdl.ID)
		if mdl.ID == "" {
			return nil, fmt.Errorf("models asset: model without id")
		}
		if _, dup := c.byID[mdl.ID]; dup {
			return nil, fmt.Errorf("models asset: duplicate model %s", mdl.ID)
		}
		switch mdl.Provider {
		case models.ProviderGoogle, models.ProviderOpenAI, models.ProviderAnthropic, models.ProviderCustom:
		default:
			return nil, fmt.Errorf("models asset: model %s has unknown provider %q", mdl.ID, mdl.Provider)
		}
		mdl.Configurable = mdl.Provider == models.ProviderCustom
		c.byID[mdl.ID] = len(c.models)
		c.models = append(c.models, mdl)
	}
	for _, mode := range parsedModes.Modes {
		mode.ID = strings.TrimSpace(mode.ID)
		if mode.ID == "" {
			return nil, fmt.Errorf("modes asset: mode without id")
		}
		if _, dup := c.modeByID[mode.ID]; dup {
			return nil, fmt.Errorf("modes asset: duplicate mode %s", mode.ID)
		}
		if strings.TrimSpace(mode.Prompt) == "" {
			return nil, fmt.Errorf("modes asset: mode %s has no prompt", mode.ID)
		}
		mode.System = true
		c.modeByID[mode.ID] = len(c.modes)
		c.modes = append(c.modes, mode)
	}
	return c, nil
}

func (c *modelCatalog) ListModels() []models.ModelDescriptor {
	out := make([]models.ModelDescriptor, len(c.models))
	copy(out, c.models)
	return out
}

func (c *modelCatalog) GetModel(id string) (models.ModelDescriptor, bool) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return models.ModelDescriptor{}, false
	}
	return c.models[idx], true
}

// SystemModes returns the seed modes in catalog order.
func (c *modelCatalog) SystemModes() []models.Mode {
	out := make([]models.Mode, len(c.modes))
	copy(out, c.modes)
	return out
}
