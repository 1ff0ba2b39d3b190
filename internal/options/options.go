package options

import (
	"fmt"
	"path/filepath"
	"strings"

	"autocorrect/internal/database"
	"autocorrect/internal/llm/client"
	"autocorrect/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "AUTOCORRECT"
	ConfigFileName = "gemini.json"
)

// Options are the process level settings read once at start from the
// environment (AUTOCORRECT_*) and an optional .env file.
type Options struct {
	ConfigDir      string `mapstructure:"config_dir" validate:"required"`
	HistoryPath    string `mapstructure:"history_path"`
	HistoryEnabled bool   `mapstructure:"history_enabled"`
	LogLevel       string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Vendor API base URL overrides, mostly for corporate proxies.
	GoogleEndpoint    string `mapstructure:"google_endpoint" validate:"omitempty,url"`
	OpenAIEndpoint    string `mapstructure:"openai_endpoint" validate:"omitempty,url"`
	AnthropicEndpoint string `mapstructure:"anthropic_endpoint" validate:"omitempty,url"`
}

var validate = validator.New()

func Load() (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaultDir, err := utils.DefaultConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v.SetDefault("config_dir", defaultDir)
	v.SetDefault("history_path", "")
	v.SetDefault("history_enabled", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("google_endpoint", "")
	v.SetDefault("openai_endpoint", "")
	v.SetDefault("anthropic_endpoint", "")

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	opts.ConfigDir = strings.TrimSpace(opts.ConfigDir)
	opts.HistoryPath = strings.TrimSpace(opts.HistoryPath)
	opts.LogLevel = strings.ToLower(strings.TrimSpace(opts.LogLevel))
	opts.GoogleEndpoint = strings.TrimSpace(opts.GoogleEndpoint)
	opts.OpenAIEndpoint = strings.TrimSpace(opts.OpenAIEndpoint)
	opts.AnthropicEndpoint = strings.TrimSpace(opts.AnthropicEndpoint)

	if err := validate.Struct(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &opts, nil
}

// ConfigFile is the path of the user's JSON configuration.
func (o *Options) ConfigFile() string {
	return filepath.Join(o.ConfigDir, ConfigFileName)
}

// Endpoints returns the vendor base URL overrides for the adapter registry.
func (o *Options) Endpoints() client.Endpoints {
	return client.Endpoints{
		Google:    o.GoogleEndpoint,
		OpenAI:    o.OpenAIEndpoint,
		Anthropic: o.AnthropicEndpoint,
	}
}

// HistoryFile is the SQLite database holding the generation history.
func (o *Options) HistoryFile() string {
	if o.HistoryPath != "" {
		return o.HistoryPath
	}
	return database.DefaultPath(o.ConfigDir)
}
