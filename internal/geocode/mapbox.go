// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/resilience"
)

// maxResponseBytes caps how much of a Mapbox reply is read.
const maxResponseBytes = 1 << 20

// MapboxClient implements Geocoder with the Mapbox Geocoding v5 API.
//
//	GET {base}/geocoding/v5/mapbox.places/{address}.json?access_token=...&limit=1
//
// The first feature's "center" is [longitude, latitude].
type MapboxClient struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker[*Coordinate]
	baseURL string
	token   string
	timeout time.Duration
}

// NewMapboxClient creates a Mapbox geocoder with a client-side rate limiter
// and circuit breaker.
func NewMapboxClient(cfg *config.GeocoderConfig) *MapboxClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &MapboxClient{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: resilience.NewCircuitBreaker[*Coordinate]("mapbox-geocoder", resilience.Settings{
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNoMatch) || errors.Is(err, context.Canceled)
			},
		}),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		timeout: timeout,
	}
}

// ForwardGeocode resolves address to a coordinate.
func (c *MapboxClient) ForwardGeocode(ctx context.Context, address string) (*Coordinate, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrNoMatch
	}

	start := time.Now()
	coord, err := c.breaker.Execute(func() (*Coordinate, error) {
		return c.lookup(ctx, address)
	})

	switch {
	case err == nil:
		metrics.RecordGeocode("match", time.Since(start))
	case errors.Is(err, ErrNoMatch):
		metrics.RecordGeocode("no_match", time.Since(start))
	default:
		metrics.RecordGeocode("error", time.Since(start))
		logging.Ctx(ctx).Warn().Err(err).Msg("Geocoding request failed")
	}
	return coord, err
}

func (c *MapboxClient) lookup(ctx context.Context, address string) (*Coordinate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocoder rate limit: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.placesURL(address), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Mapbox: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read Mapbox response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(body, "message").String(); msg != "" {
			return nil, fmt.Errorf("mapbox error (status %d): %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("mapbox returned status %d", resp.StatusCode)
	}

	return parseFeatureCenter(body)
}

// placesURL builds the forward geocoding URL. The address is a single
// escaped path segment.
func (c *MapboxClient) placesURL(address string) string {
	q := url.Values{}
	q.Set("access_token", c.token)
	q.Set("limit", "1")
	return fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		c.baseURL, url.PathEscape(address), q.Encode())
}

// parseFeatureCenter extracts features[0].center from a Mapbox reply.
func parseFeatureCenter(body []byte) (*Coordinate, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("mapbox returned invalid JSON")
	}

	center := gjson.GetBytes(body, "features.0.center")
	if !center.Exists() {
		return nil, ErrNoMatch
	}

	pair := center.Array()
	if len(pair) != 2 {
		return nil, fmt.Errorf("mapbox center has %d elements", len(pair))
	}

	coord := &Coordinate{Longitude: pair[0].Float(), Latitude: pair[1].Float()}
	if coord.Latitude < -90 || coord.Latitude > 90 || coord.Longitude < -180 || coord.Longitude > 180 {
		return nil, fmt.Errorf("mapbox center out of range: %v", center.Raw)
	}
	return coord, nil
}
