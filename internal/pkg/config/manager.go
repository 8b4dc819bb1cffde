package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

const (
	// AppDirName is the name of the per-user configuration directory.
	AppDirName = "commit_crafter"
	// DefaultConfigFileName is the configuration file name inside AppDirName.
	DefaultConfigFileName = "config.toml"
	// DefaultConfigFileType is the format viper decodes the file with.
	DefaultConfigFileType = "toml"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "COMMIT_CRAFTER"
)

const (
	DefaultOpenAIURL    = "https://api.openai.com"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultUserLanguage = "en"
)

// Replaced in tests.
var (
	userHomeDir   = os.UserHomeDir
	userConfigDir = os.UserConfigDir
	goos          = runtime.GOOS
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configDir  string
	configPath string
}

// NewManager creates a new configuration manager.
// If configDir is empty, the per-user default directory is resolved.
// The directory is created when missing; the file itself never is.
func NewManager(configDir string) (*ViperManager, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrConfigDirUnresolvable, "unable to determine config directory").
				WithSuggestion(configLocationHint())
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigDirUnresolvable, "failed to create config directory").
			WithSuggestion(configLocationHint())
	}

	configPath := filepath.Join(configDir, DefaultConfigFileName)

	v := viper.New()
	v.SetConfigType(DefaultConfigFileType)
	v.SetConfigFile(configPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configDir:  configDir,
		configPath: configPath,
	}, nil
}

// DefaultConfigDir returns the per-user configuration directory.
// Windows uses %APPDATA%, every other platform uses ~/.config.
func DefaultConfigDir() (string, error) {
	if goos == "windows" {
		dir, err := userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppDirName), nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("home directory is empty")
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

func bindEnvVars(v *viper.Viper) {
	for _, key := range []string{
		"openai_api_key",
		"openai_url",
		"openai_model",
		"user_language",
		"verbose",
		"color_enabled",
	} {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_url", DefaultOpenAIURL)
	v.SetDefault("openai_model", DefaultOpenAIModel)
	v.SetDefault("user_language", DefaultUserLanguage)
	v.SetDefault("verbose", false)
	v.SetDefault("color_enabled", true)
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	info, err := os.Stat(m.configPath)
	return err == nil && !info.IsDir()
}

// Load loads the configuration from file, environment, and defaults.
// Priority: env > file > defaults. The file must exist.
func (m *ViperManager) Load() (*Config, error) {
	info, err := os.Stat(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrConfigNotFound,
				fmt.Sprintf("config file not found: %s", m.configPath)).
				WithSuggestion("Create the file with the following content:\n\n" + ExampleConfig())
		}
		return nil, apperrors.Wrap(err, apperrors.ErrConfigUnreadable, "failed to read config file")
	}
	if info.IsDir() {
		return nil, apperrors.New(apperrors.ErrConfigUnreadable,
			fmt.Sprintf("failed to read config file: %s is a directory", m.configPath))
	}

	if err := m.v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, apperrors.Wrap(err, apperrors.ErrConfigMalformed, "failed to parse config file").
				WithSuggestion("Fix the TOML syntax in " + m.configPath)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrConfigUnreadable, "failed to read config file")
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigMalformed, "failed to decode config file")
	}

	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	if cfg.OpenAIAPIKey == "" {
		return nil, apperrors.New(apperrors.ErrMissingAPIKey, "openai_api_key is not set").
			WithSuggestion(fmt.Sprintf("Set openai_api_key in %s or the %s_OPENAI_API_KEY environment variable", m.configPath, EnvPrefix))
	}

	cfg.OpenAIURL = strings.TrimRight(strings.TrimSpace(cfg.OpenAIURL), "/")
	if cfg.OpenAIURL == "" {
		cfg.OpenAIURL = DefaultOpenAIURL
	}
	if strings.TrimSpace(cfg.OpenAIModel) == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}

	return &cfg, nil
}

// ExampleConfig renders the content of a minimal configuration file.
func ExampleConfig() string {
	example := Config{
		OpenAIAPIKey: "your-api-key",
		OpenAIURL:    DefaultOpenAIURL,
		OpenAIModel:  DefaultOpenAIModel,
		UserLanguage: "zh",
	}
	out, err := toml.Marshal(example)
	if err != nil {
		return ""
	}
	return string(out)
}

// configLocationHint tells the user where the config file is expected.
func configLocationHint() string {
	if goos == "windows" {
		return `The config file should be at %APPDATA%\` + AppDirName + `\` + DefaultConfigFileName
	}
	return "The config file should be at ~/.config/" + AppDirName + "/" + DefaultConfigFileName
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	return apperrors.MaskAPIKey(key)
}
