package comfort

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"student-relief/internal/config"
	"student-relief/internal/domain"
)

var (
	ErrEmptyMessage    = errors.New("message is required")
	ErrNotConfigured   = errors.New("api key not configured")
	ErrEmptyCompletion = errors.New("provider returned no completion text")
)

type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

type Message struct {
	Role string
	Text string
}

// Service turns one user message into one comfort message. It holds no
// state between calls.
type Service struct {
	client Client
	cfg    config.Config
}

func NewService(client Client, cfg config.Config) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
	}
}

// Comfort makes a single completion attempt. Only presence of the message is
// checked here; whitespace handling belongs to the submitting client.
func (s *Service) Comfort(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !s.cfg.Configured() || s.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := s.client.Complete(ctx, CompletionRequest{
		Model: s.cfg.Model,
		Messages: []Message{
			{Role: domain.RoleSystem, Text: s.cfg.SystemPrompt},
			{Role: domain.RoleUser, Text: message},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("provider completion: %w", err)
	}

	resp = strings.TrimSpace(resp)
	if resp == "" {
		return "", ErrEmptyCompletion
	}
	return resp, nil
}
