// Package http implements the exponential-backoff retry policy the
// fetcher applies on transient failures, per spec.md §4.8.
package http

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// RetryConfig tunes the exponential backoff curve.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// DefaultRetryConfig matches spec.md §4.8's defaults: 3 retries, 1s
// initial backoff doubling up to 30s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		BackoffFactor:  2.0,
	}
}

// RetryHandler tracks per-host consecutive-failure state and decides
// whether and how long to back off before the next attempt.
type RetryHandler struct {
	config RetryConfig

	hostRetries sync.Map // map[string]*hostRetryState
}

type hostRetryState struct {
	mu               sync.Mutex
	consecutiveFails int
	backoffUntil     time.Time
}

// NewRetryHandler builds a RetryHandler from config.
func NewRetryHandler(config RetryConfig) *RetryHandler {
	return &RetryHandler{config: config}
}

// ShouldRetry reports whether a request should be retried: always on
// a network error, otherwise only on the classic transient status
// codes (429, 500, 502, 503, 504).
func (rh *RetryHandler) ShouldRetry(statusCode int, err error) bool {
	if err != nil {
		return true
	}

	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}

// GetBackoff returns the delay to wait before attempt for host: the
// host's own cooldown if one is active, otherwise the exponential
// curve for attempt, jittered by +-20% to avoid synchronized retries
// across workers hammering the same host.
func (rh *RetryHandler) GetBackoff(host string, attempt int) time.Duration {
	state := rh.getOrCreateState(host)
	state.mu.Lock()
	defer state.mu.Unlock()

	if time.Now().Before(state.backoffUntil) {
		return time.Until(state.backoffUntil)
	}

	backoff := rh.config.InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * rh.config.BackoffFactor)
		if backoff > rh.config.MaxBackoff {
			backoff = rh.config.MaxBackoff
			break
		}
	}

	jitter := time.Duration(float64(backoff) * 0.2 * (2.0*float64(time.Now().UnixNano()%100)/100.0 - 1.0))
	return backoff + jitter
}

// RecordFailure advances host's backoff window. A 429 doubles the
// computed backoff on top of the exponential curve, since a rate-limit
// response is a much harder signal to back off than a 5xx.
func (rh *RetryHandler) RecordFailure(host string, statusCode int) {
	state := rh.getOrCreateState(host)
	state.mu.Lock()
	state.consecutiveFails++
	fails := state.consecutiveFails
	state.mu.Unlock()

	// GetBackoff takes state.mu itself, so it runs without the lock held.
	backoff := rh.GetBackoff(host, fails)
	if statusCode == http.StatusTooManyRequests {
		backoff *= 2
	}

	state.mu.Lock()
	state.backoffUntil = time.Now().Add(backoff)
	state.mu.Unlock()
}

// RecordSuccess clears host's failure streak and any active backoff.
func (rh *RetryHandler) RecordSuccess(host string) {
	state := rh.getOrCreateState(host)
	state.mu.Lock()
	defer state.mu.Unlock()

	state.consecutiveFails = 0
	state.backoffUntil = time.Time{}
}

func (rh *RetryHandler) getOrCreateState(host string) *hostRetryState {
	if val, ok := rh.hostRetries.Load(host); ok {
		return val.(*hostRetryState)
	}
	actual, _ := rh.hostRetries.LoadOrStore(host, &hostRetryState{})
	return actual.(*hostRetryState)
}

// RetryableError is returned once a fetch exhausts its retry budget.
type RetryableError struct {
	Err        error
	StatusCode int
	Attempt    int
	MaxRetries int
}

func (e *RetryableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed (attempt %d/%d): %v", e.Attempt, e.MaxRetries, e.Err)
	}
	return fmt.Sprintf("request failed with status %d (attempt %d/%d)", e.StatusCode, e.Attempt, e.MaxRetries)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}
