package cache

import (
	"context"
	"errors"
	"fmt"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores address -> coordinates as "lon,lat" strings with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func encodeLocation(l domain.Location) string {
	return strconv.FormatFloat(l.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lat, 'f', -1, 64)
}

func decodeLocation(s string) (domain.Location, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Location{}, fmt.Errorf("malformed cached coordinates %q", s)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("malformed cached longitude %q: %w", lonStr, err)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("malformed cached latitude %q: %w", latStr, err)
	}
	return domain.Location{Lon: lon, Lat: lat}, nil
}

// Fetch cached coordinates for the given addresses. Malformed entries count as misses.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Location, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueAddresses(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Location{}, nil
	}

	keys := make([]string, 0, len(uniq))
	for _, a := range uniq {
		keys = append(keys, geocodeKeyPrefix+a)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Location, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		loc, err := decodeLocation(s)
		if err != nil {
			obs.Logger(ctx).WithError(err).WithField("address", uniq[i]).Warn("dropping bad geocode cache entry")
			continue
		}
		out[uniq[i]] = loc
	}

	return out, nil
}

// Store address -> coordinate mappings in a single pipeline.
func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Location) error {
	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, loc := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}
		pipe.Set(ctx, geocodeKeyPrefix+addr, encodeLocation(loc), c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}
	return nil
}
