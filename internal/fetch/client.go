package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/store"
)

// ErrNotFound is returned for a 404. It does not count against the circuit breaker.
var ErrNotFound = errors.New("fetch: not found")

type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore // nil disables the cache
	BaseURL      string
	UserAgent    string
	Limiter      *rate.Limiter
	Breaker      *gobreaker.CircuitBreaker
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool
}

// NewClient returns a Sleeper API client. requestsPerSecond <= 0 disables rate limiting.
func NewClient(st *store.JSONStore, baseURL string, requestsPerSecond float64) *Client {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		HTTP:        &http.Client{Timeout: 20 * time.Second},
		Store:       st,
		BaseURL:     baseURL,
		UserAgent:   "leeger/1.0",
		Limiter:     rate.NewLimiter(limit, 1),
		Breaker:     newBreaker("sleeper", logger.GetLogger()),
		PrettyWrite: true,
		UseCache:    st != nil,
	}
}

func newBreaker(name string, log *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	})
}

// FetchRaw downloads urlPath (like "/league/123") and writes it to relPath.
// Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store != nil && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	get := func() (interface{}, error) { return c.get(ctx, urlPath) }
	var (
		out any
		err error
	)
	if c.Breaker != nil {
		out, err = c.Breaker.Execute(get)
	} else {
		out, err = get()
	}
	if err != nil {
		return nil, err
	}
	body := out.([]byte)

	if c.Store != nil && !c.DisableWrite {
		if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, urlPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: GET %s", ErrNotFound, urlPath)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}
	// Sleeper answers unknown ids with 200 and a literal null.
	if string(body) == "null" {
		return nil, fmt.Errorf("%w: GET %s", ErrNotFound, urlPath)
	}
	return body, nil
}
