// Package ai generates commit messages through an OpenAI-compatible chat API.
package ai

import (
	"context"
)

// GenerateRequest contains the data needed to generate a commit message.
type GenerateRequest struct {
	Diff        string
	ExtraPrompt string
}

// GenerateResponse contains the generated commit message.
type GenerateResponse struct {
	Message      string
	Model        string
	UsedFallback bool
}

// ProviderConfig contains configuration for an AI provider.
type ProviderConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Language string
}

// Provider defines the interface for AI providers.
type Provider interface {
	GenerateCommitMessage(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Name() string
}
