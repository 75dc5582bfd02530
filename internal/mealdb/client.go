package mealdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mealdb/internal/config"
	"mealdb/internal/metrics"

	"github.com/hashicorp/go-retryablehttp"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

// Client calls the four read-only MealDB endpoints.
// docs https://www.themealdb.com/api.php
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
	limiter    *rate.Limiter
	breakers   *breakers
}

// NewClient creates a MealDB client. Requests are throttled, retried on
// transient failures and guarded by circuit breakers kept per endpoint, and
// per letter for searches.
func NewClient(cfg config.MealDBConfig) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = config.DefaultAPIKey
	}
	if cfg.RetryMax < 0 {
		return nil, errors.New("retry max must not be negative")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = config.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = slog.Default()
	// hand the final response back so status handling stays in one place
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: rc,
		limiter:    rate.NewLimiter(limit, burst),
		breakers:   newBreakers(cfg.BreakerTimeout),
	}, nil
}

// SearchByFirstLetter returns every meal whose name starts with letter.
// example https://www.themealdb.com/api/json/v1/1/search.php?f=a
func (c *Client) SearchByFirstLetter(ctx context.Context, letter string) ([]Meal, error) {
	letter = strings.ToLower(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return nil, fmt.Errorf("search letter must be a single a-z character, got %q", letter)
	}
	params := url.Values{}
	params.Set("f", letter)

	raw, err := c.get(ctx, "search", "search:"+letter, "search.php", params)
	if err != nil {
		return nil, err
	}
	meals, err := ParseMeals(raw)
	if err != nil {
		countRequest("search", "decode_error")
		return nil, fmt.Errorf("parse search response for %q: %w", letter, err)
	}
	countRequest("search", "success")
	return meals, nil
}

// ListCategories returns category labels in API order.
// example https://www.themealdb.com/api/json/v1/1/list.php?c=list
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("c", "list")
	raw, err := c.get(ctx, "categories", "categories", "list.php", params)
	if err != nil {
		return nil, err
	}
	return decodeLabels("categories", raw, "strCategory")
}

// ListAreas returns area (cuisine) labels in API order.
// example https://www.themealdb.com/api/json/v1/1/list.php?a=list
func (c *Client) ListAreas(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("a", "list")
	raw, err := c.get(ctx, "areas", "areas", "list.php", params)
	if err != nil {
		return nil, err
	}
	return decodeLabels("areas", raw, "strArea")
}

// LookupByID returns the first meal matching id, or ErrNotFound.
// example https://www.themealdb.com/api/json/v1/1/lookup.php?i=52772
func (c *Client) LookupByID(ctx context.Context, id string) (*Meal, error) {
	id = strings.TrimSpace(id)
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	params := url.Values{}
	params.Set("i", id)

	raw, err := c.get(ctx, "lookup", "lookup", "lookup.php", params)
	if err != nil {
		return nil, err
	}
	meals, err := ParseMeals(raw)
	if err != nil {
		countRequest("lookup", "decode_error")
		return nil, fmt.Errorf("parse lookup response for %s: %w", id, err)
	}
	if len(meals) == 0 {
		countRequest("lookup", "not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	countRequest("lookup", "success")
	return &meals[0], nil
}

func decodeLabels(endpoint string, raw []byte, field string) ([]string, error) {
	labels, err := ParseLabels(raw, field)
	if err != nil {
		countRequest(endpoint, "decode_error")
		return nil, err
	}
	countRequest(endpoint, "success")
	return labels, nil
}

// Ready checks the API answers the cheapest endpoint.
func (c *Client) Ready(ctx context.Context) error {
	_, err := c.ListCategories(ctx)
	return err
}

// ValidID reports whether id looks like a MealDB identifier.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// get runs one request through the breaker for key. Only failures are
// counted here; callers count a response once they have decoded it.
func (c *Client) get(ctx context.Context, endpoint, key, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for %s rate limit: %w", endpoint, err)
	}

	start := time.Now()
	body, err := c.breakers.get(key).Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, path, params)
	})
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		countRequest(endpoint, outcome(err))
	}
	return body, err
}

func (c *Client) do(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(c.apiKey) + "/" + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	slog.DebugContext(ctx, "requesting MealDB", "endpoint", endpoint, "query", params.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Operation:  endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), 200),
		}
	}
	return body, nil
}

func countRequest(endpoint, outcome string) {
	metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.As(err, &statusErr):
		return "status_error"
	default:
		return "transport_error"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
