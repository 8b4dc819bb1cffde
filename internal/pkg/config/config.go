// Package config provides configuration management for commit-crafter.
package config

// Config represents the complete commit-crafter configuration.
// It is loaded once per invocation and treated as read-only afterwards.
type Config struct {
	OpenAIAPIKey string `mapstructure:"openai_api_key" toml:"openai_api_key"`
	OpenAIURL    string `mapstructure:"openai_url" toml:"openai_url"`
	OpenAIModel  string `mapstructure:"openai_model" toml:"openai_model"`
	UserLanguage string `mapstructure:"user_language" toml:"user_language"`

	Verbose      bool `mapstructure:"verbose" toml:"verbose,omitempty"`
	ColorEnabled bool `mapstructure:"color_enabled" toml:"color_enabled,omitempty"`
}

// Manager defines the interface for configuration loading.
type Manager interface {
	Load() (*Config, error)
	GetConfigPath() string
	ConfigExists() bool
}
