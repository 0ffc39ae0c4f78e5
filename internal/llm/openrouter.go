package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultAppTitle          = "Virtual Interview"
)

// OpenRouterClient talks to any OpenAI-compatible chat completions endpoint,
// OpenRouter by default.
type OpenRouterClient struct {
	client *openai.Client
}

type OpenRouterConfig struct {
	BaseURL string
	APIKey  string
	// AppURL and AppTitle are sent as OpenRouter attribution headers.
	AppURL     string
	AppTitle   string
	HTTPClient *http.Client
}

func NewOpenRouterClient(cfg OpenRouterConfig) (*OpenRouterClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http:// or https:// scheme")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: API key must not be empty")
	}

	title := cfg.AppTitle
	if title == "" {
		title = DefaultAppTitle
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	withHeaders := *httpClient
	withHeaders.Transport = &headerTransport{
		base: base,
		headers: map[string]string{
			"HTTP-Referer": cfg.AppURL,
			"X-Title":      title,
		},
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL
	clientConfig.HTTPClient = &withHeaders

	return &OpenRouterClient{client: openai.NewClientWithConfig(clientConfig)}, nil
}

// Complete implements Completer.
func (c *OpenRouterClient) Complete(ctx context.Context, model string, messages []ChatMessage, temperature float32) (string, error) {
	if model == "" {
		return "", errors.New("llm: model must not be empty")
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion with %s failed: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned by %s", model)
	}

	return resp.Choices[0].Message.Content, nil
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
