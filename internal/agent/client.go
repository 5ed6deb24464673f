// Package agent talks to the assistant brain: a remote agent endpoint, or a
// locally hosted model when no endpoint is configured.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Responder answers a single user message. The orchestrator depends on this
// interface only, so transports and fakes are interchangeable.
type Responder interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Client is the HTTP responder for the remote agent endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient targets the agent at baseURL. The zero http.Client is used when
// none is supplied; no request timeout is imposed beyond the caller's
// context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type askRequest struct {
	Message string `json:"message"`
}

type askResponse struct {
	Response string `json:"response"`
}

// Ask posts the message to /agent/ask and returns the response text.
// Transport failures and non-2xx statuses surface as errors; the caller
// decides how the transcript degrades. There is no retry.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(askRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal ask request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/agent/ask", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build ask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	var decoded askResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode agent response: %w", err)
	}

	return decoded.Response, nil
}
