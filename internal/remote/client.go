package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slok/cpm/internal/log"
)

const (
	// DefaultBaseURL is the API host used when none is configured.
	DefaultBaseURL = "http://localhost:3001/api"

	defaultTimeout      = 10 * time.Second
	defaultRetries      = 2
	defaultRetryBackoff = 250 * time.Millisecond
	maxErrorBodyBytes   = 1 << 20

	// RequestIDHeader is set on every request to correlate client and server logs.
	RequestIDHeader = "X-Request-Id"
)

// ClientConfig is the configuration of the HTTP API client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. http://localhost:3001/api.
	BaseURL string
	// HTTPClient is used for the requests, when set Timeout is ignored.
	HTTPClient *http.Client
	// Timeout of each HTTP attempt.
	Timeout time.Duration
	// Retries is the number of extra attempts on idempotent reads that failed at transport level.
	Retries int
	// DisableRetries disables the retries on reads.
	DisableRetries bool
	// RetryBackoff is the wait between attempts, it grows linearly.
	RetryBackoff time.Duration
	Logger       log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q is missing the host", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}

	if c.Retries <= 0 {
		c.Retries = defaultRetries
	}
	if c.DisableRetries {
		c.Retries = 0
	}

	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "remote.Client"})

	return nil
}

// Client is the generic JSON request wrapper used by the per entity clients.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	retries      int
	retryBackoff time.Duration
	logger       log.Logger
}

// NewClient returns a new API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   cfg.HTTPClient,
		retries:      cfg.Retries,
		retryBackoff: cfg.RetryBackoff,
		logger:       cfg.Logger,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends a request with an optional JSON body and decodes the JSON response into out
// (when out is not nil). Any failure is returned as *Error, except context cancellation.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return validationError(fmt.Errorf("could not encode request body: %w", err))
		}
	}

	requestID := uuid.NewString()
	logger := c.logger.WithValues(log.Kv{"method": method, "path": path, "request-id": requestID})

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * c.retryBackoff
			logger.Debugf("retrying request in %s (attempt %d/%d): %v", wait, attempt, attempts, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		retry, err := c.do(ctx, method, path, requestID, payload, out)
		if err == nil {
			logger.Debugf("request succeeded")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
		if !retry {
			break
		}
	}

	logger.Debugf("request failed: %v", lastErr)
	return lastErr
}

// do executes a single attempt. The returned bool tells if the failure is retryable.
func (c *Client) do(ctx context.Context, method, path, requestID string, payload []byte, out any) (bool, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, &Error{Kind: KindUnknown, Message: fmt.Sprintf("could not create request: %s", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, &Error{Kind: KindNetwork, Message: fmt.Sprintf("could not reach the API: %s", unwrapURLError(err)), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return isRetryableStatus(resp.StatusCode), statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &Error{Kind: KindUnknown, StatusCode: resp.StatusCode, Message: fmt.Sprintf("invalid response from the API: %s", err), Err: err}
	}

	return false, nil
}

func statusError(resp *http.Response) *Error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	msg := errorMessage(data)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	kind := KindUnknown
	switch resp.StatusCode {
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = KindValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		kind = KindNetwork
	}

	return &Error{Kind: kind, StatusCode: resp.StatusCode, Message: msg}
}

// errorMessage extracts the message from the usual JSON error bodies or falls back to the raw text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

func isRetryableStatus(code int) bool {
	return code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func entityPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}
