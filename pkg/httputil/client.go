package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wonny/c360/pkg/logger"
)

// DefaultTimeout bounds a single request attempt
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps downloaded datasets (256 MiB)
const maxBodyBytes = 256 << 20

// ErrBodyTooLarge is returned by Fetch when the body exceeds the size cap
var ErrBodyTooLarge = errors.New("response body too large")

// Client is an HTTP client wrapper with retry and logging, used to fetch
// remote datasets.
// ⭐ SSOT: 외부 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	httpClient  *http.Client
	logger      *logger.Logger
	retryConfig RetryConfig
	maxBody     int64
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Enabled      bool
}

// StatusError is returned by Fetch for a non-2xx final response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// New creates a client with the given per-attempt timeout (0 = DefaultTimeout)
// ⭐ SSOT: http.Client 인스턴스는 여기서만 생성
func New(log *logger.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		retryConfig: RetryConfig{
			MaxRetries:   3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     10 * time.Second,
			Enabled:      true,
		},
		maxBody: maxBodyBytes,
	}
}

// WithRetry configures retry behavior
func (c *Client) WithRetry(maxRetries int, initialDelay time.Duration) *Client {
	c.retryConfig.MaxRetries = maxRetries
	c.retryConfig.InitialDelay = initialDelay
	c.retryConfig.Enabled = true
	return c
}

// DisableRetry disables automatic retry
func (c *Client) DisableRetry() *Client {
	c.retryConfig.Enabled = false
	return c
}

// Get performs a GET request. The caller closes the body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	start := time.Now()

	c.logger.WithFields(map[string]interface{}{
		"method": http.MethodGet,
		"url":    url,
	}).Debug("HTTP request started")

	var resp *http.Response
	var err error
	if c.retryConfig.Enabled {
		resp, err = c.doWithRetry(ctx, url)
	} else {
		resp, err = c.doOnce(ctx, url)
	}

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"url":      url,
			"duration": time.Since(start).String(),
		}).WithError(err).Error("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start).String(),
	}).Debug("HTTP request completed")

	return resp, nil
}

// Fetch downloads url and returns the body. Non-2xx responses return
// *StatusError; a body over the size cap returns ErrBodyTooLarge.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	// one byte past the cap tells a full body from a cut one
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("GET %s: %w (limit %d bytes)", url, ErrBodyTooLarge, c.maxBody)
	}
	return body, nil
}

func (c *Client) doOnce(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}
	return c.httpClient.Do(req)
}

// doWithRetry retries network errors and retryable statuses with exponential backoff
func (c *Client) doWithRetry(ctx context.Context, url string) (*http.Response, error) {
	delay := c.retryConfig.InitialDelay

	for attempt := 0; ; attempt++ {
		resp, err := c.doOnce(ctx, url)
		if err == nil && !IsRetryableError(resp.StatusCode) {
			return resp, nil
		}
		if attempt == c.retryConfig.MaxRetries || ctx.Err() != nil {
			return resp, err
		}

		// 재시도 전 이전 응답 정리
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		c.logger.WithFields(map[string]interface{}{
			"attempt": attempt + 1,
			"delay":   delay.String(),
			"url":     url,
		}).Warn("Retrying HTTP request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > c.retryConfig.MaxDelay {
			delay = c.retryConfig.MaxDelay
		}
	}
}

// IsRetryableError checks if a status should be retried
func IsRetryableError(statusCode int) bool {
	// Retry on 5xx server errors and 429 Too Many Requests
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
