package geoinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/schema"
)

const cacheKeyPrefix = "ncp:geocode:"

// Cache - storage of resolved coordinates keyed by address
type Cache interface {
	Get(ctx context.Context, address string) (schema.Coordinate, bool, error)
	Set(ctx context.Context, address string, c schema.Coordinate) error
}

// CachedGeocoder - Geocoder decorator serving repeated addresses from a
// cache
type CachedGeocoder struct {
	inner Geocoder
	cache Cache
}

func NewCachedGeocoder(inner Geocoder, cache Cache) *CachedGeocoder {
	return &CachedGeocoder{
		inner: inner,
		cache: cache,
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (schema.Coordinate, error) {
	coord, ok, err := c.cache.Get(ctx, address)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
			"error":   err,
		}).Warn("read geocode cache")
	} else if ok {
		return coord, nil
	}

	coord, err = c.inner.Geocode(ctx, address)
	if err != nil {
		return coord, err
	}

	// empty results are never cached
	if coord.Valid() {
		if err := c.cache.Set(ctx, address, coord); err != nil {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"address": address,
				"error":   err,
			}).Warn("write geocode cache")
		}
	}
	return coord, nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (r redisCache) Get(ctx context.Context, address string) (schema.Coordinate, bool, error) {
	v, err := r.client.Get(ctx, cacheKeyPrefix+address).Result()
	if err == redis.Nil {
		return schema.Coordinate{}, false, nil
	}
	if err != nil {
		return schema.Coordinate{}, false, err
	}

	c, err := decodeCoordinate(v)
	if err != nil {
		return schema.Coordinate{}, false, err
	}
	return c, true, nil
}

func (r redisCache) Set(ctx context.Context, address string, c schema.Coordinate) error {
	return r.client.Set(ctx, cacheKeyPrefix+address, encodeCoordinate(c), r.ttl).Err()
}

func encodeCoordinate(c schema.Coordinate) string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}

func decodeCoordinate(v string) (schema.Coordinate, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return schema.Coordinate{}, fmt.Errorf("malformed cached coordinate %q", v)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return schema.Coordinate{}, err
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return schema.Coordinate{}, err
	}
	return schema.Coordinate{Longitude: lon, Latitude: lat}, nil
}

// NewRedisCache - Cache stored in redis, entries expire after ttl
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}
