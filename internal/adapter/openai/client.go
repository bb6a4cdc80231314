package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	openaiapi "github.com/sashabaranov/go-openai"

	"student-relief/internal/usecase/comfort"
)

// Options points the client at an OpenAI-compatible provider such as
// OpenRouter. Referer and Title are sent as attribution headers.
type Options struct {
	BaseURL string
	Referer string
	Title   string
	Timeout time.Duration
}

type Client struct {
	api *openaiapi.Client
}

func NewClient(token string, opts Options) *Client {
	cfg := openaiapi.DefaultConfig(token)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	headers := make(http.Header)
	if opts.Referer != "" {
		headers.Set("HTTP-Referer", opts.Referer)
	}
	if opts.Title != "" {
		headers.Set("X-Title", opts.Title)
	}
	cfg.HTTPClient = &http.Client{
		Timeout:   opts.Timeout,
		Transport: &headerTransport{base: http.DefaultTransport, headers: headers},
	}

	return &Client{
		api: openaiapi.NewClientWithConfig(cfg),
	}
}

func (c *Client) Complete(ctx context.Context, req comfort.CompletionRequest) (string, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
		Messages:    toAPIMessages(req.Messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

func toAPIMessages(msgs []comfort.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	return res
}

type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			clone.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(clone)
}
