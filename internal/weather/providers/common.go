package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/snow-report/internal/weather"
)

// BreakerConfig controls when a provider circuit opens.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before trial requests.
	OpenTimeout time.Duration
	// HalfOpenRequests is how many trial requests pass while half-open. It
	// should cover a whole batch so a recovered provider serves every resort.
	HalfOpenRequests uint32
}

// DefaultBreakerConfig is used when no BreakerConfig is given.
var DefaultBreakerConfig = BreakerConfig{
	MaxFailures:      5,
	OpenTimeout:      2 * time.Minute,
	HalfOpenRequests: 16,
}

var (
	errNoHTTPClient  = errors.New("http client not configured")
	errCircuitOpen   = errors.New("circuit breaker open")
	errUnexpectedRes = errors.New("unexpected result type from circuit breaker")
	errMalformed     = errors.New("malformed payload")
)

// payloadChecker is implemented by response types that can tell a decoded
// but unusable body from a valid one.
type payloadChecker interface {
	check() error
}

// statusError carries a non-2xx status through the circuit breaker.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig.MaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultBreakerConfig.OpenTimeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = DefaultBreakerConfig.HalfOpenRequests
	}
	maxFailures := cfg.MaxFailures

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    1 * time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: countsAsHealthy,
	})
}

// countsAsHealthy keeps client errors for a single request out of the
// breaker's failure counts. Rate limiting still counts against the provider.
func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 400 && se.code < 500 && se.code != http.StatusTooManyRequests
	}
	return false
}

// getJSON issues a single GET through the circuit breaker and decodes a 2xx
// body into target. Every failure is returned as *weather.ProviderError.
func getJSON(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	provider string,
	url string,
	target any,
) error {
	fail := func(status int, err error) error {
		return &weather.ProviderError{Provider: provider, StatusCode: status, Err: err}
	}

	if client == nil {
		return fail(0, errNoHTTPClient)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return nil, &statusError{code: resp.StatusCode}
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fail(0, fmt.Errorf("%w: %v", errCircuitOpen, err))
		}
		var se *statusError
		if errors.As(err, &se) {
			return fail(se.code, nil)
		}
		return fail(0, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fail(0, errUnexpectedRes)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode payload: %w", err))
	}
	if pc, ok := target.(payloadChecker); ok {
		if err := pc.check(); err != nil {
			return fail(resp.StatusCode, fmt.Errorf("%w: %v", errMalformed, err))
		}
	}
	return nil
}
