package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tudman/internal/config"
	"tudman/internal/domain"
	"tudman/internal/logger"
	"tudman/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// DeepSeekClient implements domain.ChatClient against the OpenAI-compatible
// DeepSeek chat completions API.
type DeepSeekClient struct {
	llm         llms.Model
	model       string
	temperature float64
}

// Option customizes a DeepSeekClient
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient replaces the HTTP client used for chat completion calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewDeepSeekClient creates the chat client. It fails when no API key is configured.
func NewDeepSeekClient(cfg config.LLMConfig, opts ...Option) (*DeepSeekClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing DEEPSEEK_API_KEY")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultLLMBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultLLMModel
	}
	temperature := config.DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	openaiOpts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	}
	if o.httpClient != nil {
		openaiOpts = append(openaiOpts, openai.WithHTTPClient(o.httpClient))
	}

	client, err := openai.New(openaiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}

	return &DeepSeekClient{
		llm:         client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Chat sends one chat completion request and returns the first choice's text.
// Non-success HTTP responses surface as errors carrying the status and body.
func (c *DeepSeekClient) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llms.TextParts(chatMessageType(m.Role), m.Content))
	}

	callOpts := []llms.CallOption{
		llms.WithModel(model),
		llms.WithTemperature(temperature),
	}
	if req.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	l := logger.Get()
	l.Debug("Sending chat completion request",
		zap.String("model", model),
		zap.Int("messages", len(messages)),
		zap.Bool("json_mode", req.JSONMode))

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, messages, callOpts...)
	elapsed := time.Since(start)
	metrics.ObserveLLMCall(model, elapsed, err)
	if err != nil {
		l.Error("Chat completion failed", zap.String("model", model), zap.Duration("duration", elapsed), zap.Error(err))
		return "", fmt.Errorf("DeepSeek chat completion failed: %w", err)
	}

	l.Debug("Chat completion finished", zap.String("model", model), zap.Duration("duration", elapsed))
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

func chatMessageType(role domain.ChatRole) llms.ChatMessageType {
	if role == domain.ChatRoleSystem {
		return llms.ChatMessageTypeSystem
	}
	return llms.ChatMessageTypeHuman
}

var _ domain.ChatClient = (*DeepSeekClient)(nil)
