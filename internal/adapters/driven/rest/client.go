package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for 5xx responses.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// requestsPerSecond and burstSize bound the request rate against
	// the backend. Conservative; the server also rate limits.
	requestsPerSecond = 10.0
	burstSize         = 20
)

// Client is the authenticated HTTP client for the Studia API. All
// endpoint groups share it so the token and base URL live in one place.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given base URL, e.g.
// "https://studia.example.com/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// SetToken installs the bearer token used on subsequent requests.
// An empty token clears authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL replaces the API base URL. Used for the --api-url
// override, which is parsed after the client is constructed.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// do performs one JSON request. When out is non-nil the response body
// is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	resp, err := c.roundTrip(ctx, method, path, payload, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// doBytes performs one request and returns the raw response body.
// Used for document byte streams, which must be fetched through the
// authenticated client because the Authorization header is required.
func (c *Client) doBytes(ctx context.Context, method, path string) ([]byte, error) {
	resp, err := c.roundTrip(ctx, method, path, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return data, nil
}

// roundTrip waits for the rate limiter, attaches the bearer token and
// retries transient 5xx responses with linear backoff.
func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var buffered []byte
	if body != nil {
		var err error
		buffered, err = io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("buffering request: %w", err)
		}
	}

	url := c.BaseURL() + path
	var resp *http.Response
	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if buffered != nil {
			reader = bytes.NewReader(buffered)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err = c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrLoadFailed, method, path, err)
		}

		if resp.StatusCode < 500 || attempt >= MaxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		logger.Debug("retrying %s %s after %d (attempt %d)", method, path, resp.StatusCode, attempt+1)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(RetryDelay * time.Duration(attempt+1)):
		}
	}
}

// decodeJSON decodes a response body into out.
func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// apiError is the backend's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

// checkStatus maps HTTP failures onto domain sentinels, preserving the
// server's detail message.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var detail string
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var e apiError
		if json.Unmarshal(data, &e) == nil && e.Detail != "" {
			detail = e.Detail
		} else {
			detail = strings.TrimSpace(string(data))
		}
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = domain.ErrAuthInvalid
	case resp.StatusCode == http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		sentinel = domain.ErrRateLimited
	case resp.StatusCode == http.StatusConflict:
		sentinel = domain.ErrAlreadyExists
	case resp.StatusCode >= 500:
		sentinel = domain.ErrServerError
	default:
		sentinel = domain.ErrInvalidInput
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
