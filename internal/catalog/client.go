// Package catalog provides a rate-limited client for the external book
// search API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bookbondapp/bookbond-server/internal/config"
)

const (
	defaultTimeout = 10 * time.Second
	defaultBurst   = 3

	// searchMaxAttempts bounds retries for transient failures.
	searchMaxAttempts = 3
	searchBackoffBase = 200 * time.Millisecond
)

// Sentinel errors for non-retryable API outcomes.
var (
	ErrBadRequest  = errors.New("catalog: bad request")
	ErrUnavailable = errors.New("catalog: service unavailable")
)

// Client is a rate-limited book search client.
type Client struct {
	http         *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
	baseURL      string
	clientID     string
	clientSecret string
}

// New creates a catalog client from config.
func New(cfg config.CatalogConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		http:         &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(rps), defaultBurst),
		logger:       logger,
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// Search queries the external book API. Transient failures (network errors,
// 5xx, 429) are retried with backoff; a 4xx fails immediately.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	if c.baseURL == "" {
		return nil, errors.New("catalog: no base URL configured")
	}

	var res *SearchResponse
	var err error
	for attempt := 1; attempt <= searchMaxAttempts; attempt++ {
		res, err = c.search(ctx, query)
		if err == nil || !errors.Is(err, ErrUnavailable) {
			return res, err
		}
		if attempt == searchMaxAttempts {
			break
		}

		backoff := searchBackoffBase * time.Duration(1<<(attempt-1))
		c.logger.Warn("book search failed, retrying",
			"query", query, "attempt", attempt, "backoff", backoff)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, err
}

func (c *Client) search(ctx context.Context, query string) (*SearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "/books/" + url.PathEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "BookBond/1.0")
	if c.clientID != "" {
		req.Header.Set("X-Client-Id", c.clientID)
		req.Header.Set("X-Client-Secret", c.clientSecret)
	}

	c.logger.Debug("book search request", "query", query)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network failure; worth retrying.
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrBadRequest, resp.StatusCode, string(body))
	}

	var out SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
