// Package connector speaks the provider-specific acquisition protocols and
// returns raw payload bytes for the parsers.
package connector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
)

// Connector fetches one day's raw payload for a zone.
// Implementations perform a single logical acquisition per call; retry is
// bounded and applies to transport failures only.
type Connector interface {
	Fetch(ctx context.Context, day time.Time, zone string) ([]byte, error)
}

// ConnectivityError reports a transport or HTTP-status failure while talking
// to a provider. Status is 0 when the request never reached the server.
type ConnectivityError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ConnectivityError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// settings holds per-client transport configuration shared by both
// provider variants.
type settings struct {
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
}

func defaultSettings() settings {
	return settings{
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
}

// Option configures a provider client.
type Option func(*settings)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) Option {
	return func(s *settings) {
		s.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) Option {
	return func(s *settings) {
		s.retryDelay = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.client = client
	}
}

// do issues the request built by build, retrying transport failures and
// retriable statuses (429, 5xx) with exponential backoff. Other non-2xx
// statuses are not retried: they signal a stable provider-side rejection.
func (s *settings) do(ctx context.Context, provider string, build func() (*http.Request, error)) ([]byte, error) {
	delay := s.retryDelay
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &ConnectivityError{Provider: provider, Err: ctx.Err()}
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * s.backoffMult)
			if delay > s.maxDelay {
				delay = s.maxDelay
			}
		}

		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &ConnectivityError{
				Provider: provider,
				Status:   resp.StatusCode,
				Err:      fmt.Errorf("retriable status"),
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &ConnectivityError{
				Provider: provider,
				Status:   resp.StatusCode,
				Err:      fmt.Errorf("%s", truncate(body, 256)),
			}
		}

		return body, nil
	}

	if ce, ok := lastErr.(*ConnectivityError); ok {
		return nil, ce
	}
	return nil, &ConnectivityError{Provider: provider, Err: lastErr}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
