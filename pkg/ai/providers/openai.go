package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folio_chat/pkg/ai"
	"folio_chat/pkg/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
)

const openAICompatibleDefaultTimeout = 30

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderGroq,
		Name:        "Groq",
		Description: "Groq inference through its OpenAI-compatible endpoint",
		EnvKey:      config.EnvGroqAPIKey,
	}, NewGroqProvider)

	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderOpenAI,
		Name:        "OpenAI",
		Description: "Direct OpenAI API access",
		EnvKey:      config.EnvOpenAIAPIKey,
	}, NewOpenAIProvider)
}

// OpenAICompatibleProvider implements ai.Provider for any /chat/completions
// endpoint that speaks the OpenAI wire format.
type OpenAICompatibleProvider struct {
	name               string
	client             openai.Client
	defaultModel       string
	defaultTemperature float64
	defaultMaxTokens   int
}

// NewGroqProvider creates the Groq provider from config.
func NewGroqProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	return newOpenAICompatibleProvider("groq", cfg.Settings(), config.DefaultGroqURL, nil)
}

// NewOpenAIProvider creates the OpenAI provider from config.
func NewOpenAIProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	return newOpenAICompatibleProvider("openai", cfg.Settings(), config.DefaultOpenAIURL, nil)
}

func newOpenAICompatibleProvider(name string, providerCfg config.ProviderConfig, defaultURL string, httpClient *http.Client) (*OpenAICompatibleProvider, error) {
	apiKey := strings.TrimSpace(providerCfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s api_key is required", name)
	}

	model := strings.TrimSpace(providerCfg.Model)
	if model == "" {
		return nil, fmt.Errorf("%s model is required", name)
	}

	apiURL := strings.TrimSpace(providerCfg.APIURL)
	if apiURL == "" {
		apiURL = defaultURL
	}

	timeout := providerCfg.APITimeoutSeconds
	if timeout <= 0 {
		timeout = openAICompatibleDefaultTimeout
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}

	// A failed send is terminal for that question, so the SDK must not retry.
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(apiURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}

	slog.Debug("openai_compatible_provider_ready",
		"provider", name,
		"api_url", apiURL,
		"model", model,
		"timeout_seconds", timeout,
	)

	return &OpenAICompatibleProvider{
		name:               name,
		client:             openai.NewClient(opts...),
		defaultModel:       model,
		defaultTemperature: providerCfg.Temperature,
		defaultMaxTokens:   providerCfg.MaxTokens,
	}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (p *OpenAICompatibleProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	params, err := p.buildChatParams(req)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ai.ChatResponse{}, describeAPIError(err)
	}

	raw := resp.RawJSON()
	if apiErr := bodyError(raw); apiErr != nil {
		return ai.ChatResponse{}, apiErr
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	if content == "" && raw != "" {
		// Legacy completion shape.
		content = gjson.Get(raw, "choices.0.text").String()
	}

	return ai.ChatResponse{
		Content: content,
		Model:   resp.Model,
	}, nil
}

func (p *OpenAICompatibleProvider) buildChatParams(req ai.ChatRequest) (openai.ChatCompletionNewParams, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = p.defaultModel
	}
	if model == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("messages are required")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}

	temperature := p.defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	params.Temperature = openai.Float(temperature)

	maxTokens := p.defaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	return params, nil
}

func toChatMessageParam(msg ai.Message) (openai.ChatCompletionMessageParamUnion, error) {
	role := strings.ToLower(strings.TrimSpace(msg.Role))
	switch role {
	case "system":
		return openai.SystemMessage(msg.Content), nil
	case "user":
		return openai.UserMessage(msg.Content), nil
	case "assistant":
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}

// bodyError reports an error object embedded in a 2xx body.
func bodyError(raw string) error {
	if raw == "" {
		return nil
	}
	errField := gjson.Get(raw, "error")
	if !errField.Exists() || errField.Type == gjson.Null {
		return nil
	}
	message := errField.Get("message").String()
	if message == "" {
		message = errField.String()
	}
	return &ai.APIError{StatusCode: http.StatusOK, Message: message}
}

// describeAPIError keeps the status and the API's own message, which is all
// the logs need.
func describeAPIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("%w: %w", &ai.APIError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}, err)
}

// Ensure interface compliance
var _ ai.Provider = (*OpenAICompatibleProvider)(nil)
