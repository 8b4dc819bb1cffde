package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	apperrors "github.com/commitcrafter/commitcrafter/internal/pkg/errors"
)

const (
	// DefaultOpenAIModel is the default model for OpenAI.
	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultEndpoint is the API root; "/v1" is appended to it.
	DefaultEndpoint = "https://api.openai.com"

	// DefaultTemperature is the sampling temperature for every request.
	DefaultTemperature = 0.7

	apiVersionPath = "/v1"
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible APIs.
type OpenAIProvider struct {
	client *openai.Client
	doer   *recordingDoer
	config ProviderConfig
}

// NewOpenAIProvider creates a new OpenAI provider.
// The HTTP client carries no timeout and requests are never retried.
func NewOpenAIProvider(config ProviderConfig) (*OpenAIProvider, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("API key is required for OpenAI provider")
	}

	if config.Model == "" {
		config.Model = DefaultOpenAIModel
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	config.Language = NormalizeLanguage(config.Language)

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = BaseURL(config.Endpoint)

	doer := newRecordingDoer(nil)
	clientConfig.HTTPClient = doer

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		doer:   doer,
		config: config,
	}, nil
}

// BaseURL returns the client base URL for a configured endpoint.
func BaseURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + apiVersionPath
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the model identifier sent with each request.
func (p *OpenAIProvider) Model() string {
	return p.config.Model
}

// GenerateCommitMessage sends the diff and optional extra instruction to the
// chat completion endpoint and returns the first choice's content.
func (p *OpenAIProvider) GenerateCommitMessage(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	userPrompt := UserPrompt(p.config.Language, req.Diff, req.ExtraPrompt)

	chatReq := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt(p.config.Language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: DefaultTemperature,
	}

	requestID := uuid.NewString()
	ctx = withRequestID(ctx, requestID)

	apperrors.LogAPIRequest(requestID, p.config.Endpoint, p.config.Model, len(userPrompt))
	startTime := time.Now()

	p.doer.reset()
	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	ex := p.doer.last()
	if err != nil {
		apperrors.LogAPIResponse(requestID, ex.status, len(ex.body), time.Since(startTime))
		return nil, p.wrapAPIError(err, ex)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	apperrors.LogAPIResponse(requestID, ex.status, len(content), time.Since(startTime))

	if content == "" {
		apperrors.Debug("response %s carried no message content, using fallback", requestID)
		return &GenerateResponse{
			Message:      FallbackMessage,
			Model:        p.config.Model,
			UsedFallback: true,
		}, nil
	}

	return &GenerateResponse{
		Message: content,
		Model:   p.config.Model,
	}, nil
}

// wrapAPIError classifies a client error by what happened on the wire.
func (p *OpenAIProvider) wrapAPIError(err error, ex exchange) error {
	switch {
	case !ex.sent:
		return apperrors.NewAIProviderError(p.Name(), err)
	case ex.transportErr != nil:
		return apperrors.NewNetworkError(ex.transportErr)
	case isFailureStatus(ex.status):
		return apperrors.NewHTTPStatusError(ex.status, string(ex.body))
	default:
		return apperrors.NewBadResponseError(err)
	}
}
