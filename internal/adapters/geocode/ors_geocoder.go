package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const maxAttempts = 4

// ErrNoResult is returned when the geocoding service finds no match for an address.
var ErrNoResult = errors.New("no geocode result")

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder implements ports.Geocoder using OpenRouteService (/geocode/search).
//
// Lookups go through an optional persistent cache. Remote calls are retried
// with backoff and guarded by a circuit breaker so a failing upstream does
// not stall week planning. The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	country      string
	retryBackoff time.Duration
	cache        ports.GeocodeCache
	breaker      *gobreaker.CircuitBreaker
}

type Option func(*ORSGeocoder)

func WithBaseURL(u string) Option { return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") } }

func WithHTTPClient(c *http.Client) Option { return func(o *ORSGeocoder) { o.session = c } }

// WithCountry restricts results to an ISO 3166 country code.
func WithCountry(code string) Option { return func(o *ORSGeocoder) { o.country = code } }

func NewORSGeocoder(apiKey string, cache ports.GeocodeCache, opts ...Option) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSGeocoder{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		retryBackoff: 200 * time.Millisecond,
		cache:        cache,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ors-geocode",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Unknown addresses and caller cancellation say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNoResult) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			obs.Logger(context.Background()).
				WithField("breaker", name).
				Warnf("circuit breaker state %s -> %s", from, to)
		},
	})

	return o, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves address to coordinates, consulting the cache first.
// Cache failures are logged and never fail the lookup.
func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Location{}, errors.New("geocode: address must be non-empty")
	}

	if o.cache != nil {
		hits, err := o.cache.GetMany(ctx, []string{norm})
		if err != nil {
			obs.Logger(ctx).WithError(err).Warn("geocode cache read failed")
		} else if loc, ok := hits[norm]; ok {
			return loc, nil
		}
	}

	res, err := o.breaker.Execute(func() (interface{}, error) {
		return o.search(ctx, norm)
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	loc := res.(domain.Location)

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, map[string]domain.Location{norm: loc}); err != nil {
			obs.Logger(ctx).WithError(err).Warn("geocode cache write failed")
		}
	}

	return loc, nil
}

// search issues a single /geocode/search call (with retries) for a normalized address.
func (o *ORSGeocoder) search(ctx context.Context, norm string) (domain.Location, error) {
	endpoint := o.baseURL + "/geocode/search"

	q := url.Values{}
	q.Set("text", norm)
	q.Set("size", "1")
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint, q)
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Location{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Location{}, ErrNoResult
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Location{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	return domain.Location{Lon: coords[0], Lat: coords[1]}, nil
}
