// Package backend is the typed client for the quotation persistence API.
// The API owns all documents and the parts catalog; this process never
// persists anything itself.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// APIError is a non-2xx backend response. Message carries either the
// structured error payload or the raw body, depending on content type.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d: %s", e.Status, e.Message)
}

// Client talks to the quotation backend. A Client is cheap to copy; use
// WithToken to bind the caller's access token for forwarding.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a backend client. timeout guards every request; zero means the
// http.Client default.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// WithToken returns a copy of the client that sends the given access token
// on every request.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// do executes one backend request. body is JSON-encoded when non-nil,
// result is JSON-decoded when non-nil and the response is 2xx.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: extractMessage(resp.Header.Get("Content-Type"), raw)}
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls a human-readable error out of a failure body: the
// structured payload's message/detail field for JSON responses, the raw text
// otherwise.
func extractMessage(contentType string, raw []byte) string {
	if strings.Contains(contentType, "application/json") {
		var payload struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil {
			switch {
			case payload.Message != "":
				return payload.Message
			case payload.Detail != "":
				return payload.Detail
			case payload.Error != "":
				return payload.Error
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
