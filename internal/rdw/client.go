// Package rdw queries the RDW Socrata open-data datasets with a
// read-through TTL cache in front of every call.
package rdw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rdw-backend/internal/models"
	"rdw-backend/pkg/cache"
	"rdw-backend/pkg/logging"
	"rdw-backend/pkg/metrics"

	"github.com/rs/zerolog"
)

// RDW Socrata dataset identifiers.
const (
	DatasetVehicles      = "m9d7-ebf2"
	DatasetAxles         = "3huj-srit"
	DatasetFuel          = "8ys7-d773"
	DatasetBody          = "vezc-m2t6"
	DatasetBodySpecifics = "jhie-znh9"
	DatasetVehicleClass  = "kmfi-hrps"
)

const (
	// DefaultBaseURL is the RDW open-data host.
	DefaultBaseURL = "https://opendata.rdw.nl"

	// DefaultLimit bounds the row count of a dataset query.
	DefaultLimit = 100

	defaultTimeout = 10 * time.Second
)

// Config holds RDW client configuration.
type Config struct {
	// BaseURL overrides the RDW host, mainly for tests.
	BaseURL string

	// CacheTTL is how long fetched rows stay valid.
	CacheTTL time.Duration

	// Timeout bounds each upstream call so one slow dataset cannot
	// stall a lookup indefinitely.
	Timeout time.Duration
}

// Client fetches RDW datasets by kenteken. Every fetch is routed
// through the cache store; only misses reach the upstream API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      cache.Store
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewClient creates an RDW client backed by the given cache store.
func NewClient(cfg Config, store cache.Store) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = cache.DefaultCacheConfig().DefaultTTL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		ttl:        ttl,
		logger:     logging.NewLogger("rdw-client"),
	}
}

// FetchDataset returns the rows of one dataset for a kenteken. On a
// cache hit no network activity happens; on a miss exactly one
// upstream query is issued and the parsed rows are cached.
func (c *Client) FetchDataset(ctx context.Context, dataset, kenteken string, limit int) ([]models.Row, error) {
	cacheKey := fmt.Sprintf("%s|%s", dataset, kenteken)

	var cached []models.Row
	found, err := c.store.Get(cacheKey, &cached)
	if err != nil {
		// A broken cache read falls through to the upstream call.
		c.logger.Warn().Err(err).Str("dataset", dataset).Msg("cache read failed")
	}
	if found {
		metrics.CacheHits.WithLabelValues(dataset).Inc()
		c.logger.Debug().Str("dataset", dataset).Str("kenteken", kenteken).Msg("cache hit")
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(dataset).Inc()

	rows, err := c.queryDataset(ctx, dataset, kenteken, limit)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(cacheKey, rows, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("dataset", dataset).Msg("cache write failed")
	}

	return rows, nil
}

// FetchVehicle returns the primary vehicle record for a kenteken, or
// nil when no row matches. Absence is not an error.
func (c *Client) FetchVehicle(ctx context.Context, kenteken string) (models.Row, error) {
	rows, err := c.FetchDataset(ctx, DatasetVehicles, kenteken, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Ping issues a minimal one-row query against the vehicles dataset.
// It reports reachability and never returns an error.
func (c *Client) Ping(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/resource/%s.json?%s", c.baseURL, DatasetVehicles,
		url.Values{"$limit": {"1"}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("RDW ping failed")
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// queryDataset performs the actual Socrata query, filtered by
// kenteken equality and bounded by limit.
func (c *Client) queryDataset(ctx context.Context, dataset, kenteken string, limit int) ([]models.Row, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := url.Values{
		"$where": {fmt.Sprintf("kenteken='%s'", kenteken)},
		"$limit": {strconv.Itoa(limit)},
	}
	endpoint := fmt.Sprintf("%s/resource/%s.json?%s", c.baseURL, dataset, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues(dataset).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(dataset, "network_error").Inc()
		c.logger.Warn().Err(err).Str("dataset", dataset).Msg("RDW request failed")
		return nil, &UpstreamError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues(dataset, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status_code", resp.StatusCode).Str("dataset", dataset).
			Msg("RDW returned non-success status")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var rows []models.Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		c.logger.Warn().Err(err).Str("dataset", dataset).Msg("RDW returned malformed payload")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "malformed payload", Err: err}
	}
	if rows == nil {
		rows = []models.Row{}
	}

	c.logger.Debug().Str("dataset", dataset).Str("kenteken", kenteken).
		Int("rows", len(rows)).Dur("duration", time.Since(start)).Msg("fetched dataset")

	return rows, nil
}
