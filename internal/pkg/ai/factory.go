package ai

import (
	"fmt"

	"github.com/commitcrafter/commitcrafter/internal/pkg/config"
)

// NewProvider creates the AI provider described by the loaded configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	return NewOpenAIProvider(ProviderConfig{
		APIKey:   cfg.OpenAIAPIKey,
		Model:    cfg.OpenAIModel,
		Endpoint: cfg.OpenAIURL,
		Language: cfg.UserLanguage,
	})
}
