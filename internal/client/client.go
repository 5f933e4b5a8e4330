package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public Meraki Dashboard API endpoint.
const DefaultBaseURL = "https://api.meraki.com/api/v1"

const (
	defaultTimeout    = 15 * time.Second
	defaultRetryCount = 5
	defaultRetryWait  = 1 * time.Second
	maxRetryWait      = 30 * time.Second
)

type DashboardClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	// download fetches pre-signed snapshot URLs. It must not carry the
	// Authorization header: S3 rejects requests with two auth mechanisms.
	download *resty.Client
}

type ClientConfig struct {
	BaseURL string
	APIKey  string

	// Timeout bounds each individual HTTP call.
	Timeout time.Duration
	// RetryCount bounds attempts after the first for 429s and transport errors.
	RetryCount int
	// RetryWait is the initial back-off; resty doubles it per attempt.
	RetryWait time.Duration

	// ImageReadyWait is the initial poll interval while a snapshot URL
	// still returns 404; ImageReadyAttempts bounds the polling.
	ImageReadyWait     time.Duration
	ImageReadyAttempts int
}

// New builds an authenticated Dashboard API client with rate-limit-aware
// retry. Zero config fields get production defaults.
func New(cfg ClientConfig) *DashboardClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryCount == 0 {
		cfg.RetryCount = defaultRetryCount
	}
	if cfg.RetryWait == 0 {
		cfg.RetryWait = defaultRetryWait
	}
	if cfg.ImageReadyWait == 0 {
		cfg.ImageReadyWait = 3 * time.Second
	}
	if cfg.ImageReadyAttempts == 0 {
		cfg.ImageReadyAttempts = 6
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetAuthToken(cfg.APIKey)
	r.SetHeader("Accept", "application/json")
	r.SetHeader("User-Agent", "MVSnapshotCollector CiscoGVEDevNet")
	r.SetTimeout(cfg.Timeout)

	// Retry only what the dashboard tells us is transient: 429s and
	// transport-level failures. Other 4xx are permanent for that call.
	r.SetRetryCount(cfg.RetryCount)
	r.SetRetryWaitTime(cfg.RetryWait)
	r.SetRetryMaxWaitTime(maxRetryWait)
	r.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return resp.StatusCode() == http.StatusTooManyRequests
	})
	r.SetRetryAfter(retryAfter)

	dl := resty.New()
	dl.SetTimeout(cfg.Timeout)
	dl.SetRetryCount(cfg.RetryCount)
	dl.SetRetryWaitTime(cfg.RetryWait)
	dl.SetRetryMaxWaitTime(maxRetryWait)

	return &DashboardClient{
		HTTP:     r,
		Config:   cfg,
		download: dl,
	}
}

// retryAfter honors the Retry-After header the dashboard sends with 429s,
// falling back to resty's exponential back-off when absent.
func retryAfter(c *resty.Client, resp *resty.Response) (time.Duration, error) {
	if resp == nil {
		return 0, nil
	}
	if v := resp.Header().Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second, nil
		}
	}
	return 0, nil
}

// APIError is a non-2xx dashboard response after retries are exhausted.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("dashboard API error %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("dashboard API error %d", e.StatusCode)
}

// Temporary reports whether the failure was transient (rate limit or
// server side) rather than permanent for this call.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Unauthorized reports an invalid or insufficient API key.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newAPIError extracts the dashboard's error body, which looks like
// {"errors": ["..."]} on most endpoints.
func newAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Messages = body.Errors
	}
	if len(apiErr.Messages) == 0 {
		if s := strings.TrimSpace(resp.String()); s != "" {
			apiErr.Messages = []string{s}
		}
	}
	return apiErr
}
