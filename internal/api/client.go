// Package api is the typed client for the TaskFlow REST service. Every
// operation returns either its result or an *Error classified per the
// failure taxonomy; an authentication rejection additionally clears the
// session store so callers can route the user back to login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/taskflow/internal/logger"
	"github.com/existflow/taskflow/internal/session"
)

// Client wraps the remote API with the current session attached
type Client struct {
	baseURL    string
	session    *session.Store
	httpClient *http.Client
}

// NewClient creates a gateway against baseURL using the given session store
func NewClient(baseURL string, store *session.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    store,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes a JSON response into out (when out is
// non-nil). A 401 clears the session exactly once before the error is
// returned; the caller handles navigation.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetworkFailure, Message: "failed to encode request", cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &Error{Kind: KindNetworkFailure, Message: "failed to build request", cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug("HTTP request", logger.F("method", method), logger.F("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request failed", logger.F("method", method), logger.F("url", url), logger.F("error", err))
		return &Error{Kind: KindNetworkFailure, Message: "request failed", cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("HTTP response", logger.F("url", url), logger.F("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := classifyResponse(resp.StatusCode, respBody)
		if apiErr.Kind == KindUnauthorized {
			logger.Warn("Session rejected by server, clearing")
			if clearErr := c.session.Clear(); clearErr != nil {
				logger.Error("Failed to clear session", logger.F("error", clearErr))
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServerFailure, Status: resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response from %s", path), cause: err}
	}
	return nil
}

// Session returns the session store this gateway attaches to requests
func (c *Client) Session() *session.Store {
	return c.session
}
