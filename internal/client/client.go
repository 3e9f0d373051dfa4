// Package client implements the HTTP client for the contest platform
// API: contest fetch, submission create, status query and leaderboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appErr "shodhacli/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// Client wraps HTTP requests against the platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetBaseURL replaces the API base URL.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// do sends one JSON request and decodes the JSON response into out.
// Failures are coded so callers can tell "request could not be made or
// interpreted" (RequestFailed, BadResponse) from "the server returned
// an error status" (APIError).
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, payload, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return appErr.Wrapf(err, appErr.RequestFailed, "encode request body failed")
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", c.baseURL, path), reader)
	if err != nil {
		return appErr.Wrapf(err, appErr.RequestFailed, "build request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErr.Wrapf(err, appErr.RequestFailed, "request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErr.Wrapf(err, appErr.BadResponse, "read response body failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appErr.Newf(appErr.APIError, "%s %s returned HTTP %d", method, path, resp.StatusCode).
			WithDetail("status_code", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return appErr.Wrapf(err, appErr.BadResponse, "decode response failed")
	}
	return nil
}
