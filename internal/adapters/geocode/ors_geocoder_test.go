package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/ports"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	m map[string]domain.Location
}

func (c *memCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Location, error) {
	out := map[string]domain.Location{}
	for _, a := range addresses {
		if l, ok := c.m[a]; ok {
			out[a] = l
		}
	}
	return out, nil
}

func (c *memCache) PutMany(ctx context.Context, results map[string]domain.Location) error {
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

const oneFeature = `{"features":[{"geometry":{"coordinates":[4.8979,52.3745]}}]}`

func newTestGeocoder(t *testing.T, srv *httptest.Server, cache ports.GeocodeCache) *ORSGeocoder {
	t.Helper()

	g, err := NewORSGeocoder("test-key", cache, WithBaseURL(srv.URL), WithCountry("NL"))
	require.NoError(t, err)
	g.retryBackoff = time.Millisecond
	return g
}

func TestORSGeocoderResolvesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Damrak 5 Amsterdam", r.URL.Query().Get("text"))
		assert.Equal(t, "NL", r.URL.Query().Get("boundary.country"))
		_, _ = w.Write([]byte(oneFeature))
	}))
	defer srv.Close()

	cache := &memCache{m: map[string]domain.Location{}}
	g := newTestGeocoder(t, srv, cache)

	loc, err := g.Geocode(context.Background(), "  Damrak 5   Amsterdam ")
	require.NoError(t, err)
	assert.Equal(t, domain.Location{Lat: 52.3745, Lon: 4.8979}, loc)

	// Second lookup is served from cache.
	loc, err = g.Geocode(context.Background(), "Damrak 5 Amsterdam")
	require.NoError(t, err)
	assert.Equal(t, 52.3745, loc.Lat)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestORSGeocoderRetriesTransientFailures(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(oneFeature))
	}))
	defer srv.Close()

	g := newTestGeocoder(t, srv, nil)

	_, err := g.Geocode(context.Background(), "Damrak 5")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestORSGeocoderDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	g := newTestGeocoder(t, srv, nil)

	_, err := g.Geocode(context.Background(), "Damrak 5")
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestORSGeocoderNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	g := newTestGeocoder(t, srv, nil)

	_, err := g.Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestORSGeocoderBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	g := newTestGeocoder(t, srv, nil)

	for i := 0; i < 5; i++ {
		_, err := g.Geocode(context.Background(), "Damrak 5")
		require.Error(t, err)
	}

	_, err := g.Geocode(context.Background(), "Damrak 5")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder("", nil)
	assert.Error(t, err)
}
