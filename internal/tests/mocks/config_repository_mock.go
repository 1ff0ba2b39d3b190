package mocks

import (
	"autocorrect/internal/models"
)

type ConfigRepositoryMock struct {
	LoadFunc   func() *models.AppConfig
	SaveFunc   func(patch models.ConfigPatch) error
	DeleteFunc func() error
	PathFunc   func() string
}

func (m *ConfigRepositoryMock) Load() *models.AppConfig {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return models.DefaultAppConfig()
}

func (m *ConfigRepositoryMock) Save(patch models.ConfigPatch) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(patch)
	}
	return nil
}

func (m *ConfigRepositoryMock) Delete() error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc()
	}
	return nil
}

func (m *ConfigRepositoryMock) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return "gemini.json"
}
