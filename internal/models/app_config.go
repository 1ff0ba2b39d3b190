package models

const (
	CurrentVersion  = 6
	DefaultShortcut = "Ctrl+Space"
	DefaultModelID  = "gemini-1.5-flash"
	DefaultTheme    = "light"
)

// CustomEndpoint describes a user supplied backend that mimics a vendor API.
type CustomEndpoint struct {
	URL       string        `json:"url"`
	ModelName string        `json:"model_name"`
	Style     EndpointStyle `json:"style"`
}

// Complete reports whether both the URL and the model name are set.
func (c *CustomEndpoint) Complete() bool {
	return c != nil && c.URL != "" && c.ModelName != ""
}

// AppConfig mirrors the JSON document persisted in the user's config directory.
type AppConfig struct {
	APIKey         *string         `json:"api_key"`
	Model          string          `json:"model"`
	Theme          string          `json:"theme"`
	LastVersion    int             `json:"last_version"`
	Shortcut       string          `json:"shortcut"`
	CustomEndpoint *CustomEndpoint `json:"custom_endpoint"`
	Modes          *ModeRegistry   `json:"modes,omitempty"`
}

// Key returns the configured API key or an empty string.
func (c *AppConfig) Key() string {
	if c == nil || c.APIKey == nil {
		return ""
	}
	return *c.APIKey
}

// DefaultAppConfig returns a fresh config holding the first-run defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Model:       DefaultModelID,
		Theme:       DefaultTheme,
		LastVersion: 1,
		Shortcut:    DefaultShortcut,
		CustomEndpoint: &CustomEndpoint{
			Style: StyleOpenAI,
		},
	}
}

// ConfigPatch lists the fields a save overlays on the stored config.
// Nil fields are left untouched.
type ConfigPatch struct {
	APIKey         *string
	Model          *string
	Theme          *string
	LastVersion    *int
	Shortcut       *string
	Modes          *ModeRegistry
	CustomEndpoint *CustomEndpoint
}

// Apply overlays the non-nil fields of p onto cfg.
func (p ConfigPatch) Apply(cfg *AppConfig) {
	if p.APIKey != nil {
		key := *p.APIKey
		cfg.APIKey = &key
	}
	if p.Model != nil {
		cfg.Model = *p.Model
	}
	if p.Theme != nil {
		cfg.Theme = *p.Theme
	}
	if p.LastVersion != nil {
		cfg.LastVersion = *p.LastVersion
	}
	if p.Shortcut != nil {
		cfg.Shortcut = *p.Shortcut
	}
	if p.Modes != nil {
		cfg.Modes = p.Modes.Clone()
	}
	if p.CustomEndpoint != nil {
		ep := *p.CustomEndpoint
		cfg.CustomEndpoint = &ep
	}
}
