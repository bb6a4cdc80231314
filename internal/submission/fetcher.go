package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"student-relief/internal/domain"
)

var ErrMalformedReply = errors.New("comfort reply has no message")

const maxReplyBytes = 1 << 20

// HTTPFetcher calls the comfort endpoint of a running server.
type HTTPFetcher struct {
	baseURL string
	http    *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(domain.SubmissionRequest{Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/comfort", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxReplyBytes))
		return "", fmt.Errorf("comfort request failed: status %d", resp.StatusCode)
	}

	var reply domain.ComfortReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&reply); err != nil {
		return "", fmt.Errorf("decode comfort reply: %w", err)
	}
	if strings.TrimSpace(reply.ComfortMessage) == "" {
		return "", ErrMalformedReply
	}
	return reply.ComfortMessage, nil
}
