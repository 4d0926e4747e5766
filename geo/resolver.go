package geo

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/external/geoinfo"
	"github.com/bitmark-inc/ncp-map/schema"
)

const (
	logPrefix      = "geo"
	defaultTimeout = 5 * time.Second
)

// Level tells which query produced a coordinate
type Level string

const (
	LevelCity     Level = "city"
	LevelProvince Level = "province"
	LevelNone     Level = "none"
)

// CoordinateResolver - interface for resolving the coordinate of a city
type CoordinateResolver interface {
	// Coordinate looks up province+city once, ok is false when nothing
	// usable was found
	Coordinate(ctx context.Context, province, city string) (schema.Coordinate, bool)
	// Resolve looks up the city and falls back to the province
	Resolve(ctx context.Context, province, city string) (schema.Coordinate, Level)
}

type GeocodingResolver struct {
	geocoder geoinfo.Geocoder
	timeout  time.Duration
}

func NewGeocodingResolver(geocoder geoinfo.Geocoder, timeout time.Duration) *GeocodingResolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &GeocodingResolver{
		geocoder: geocoder,
		timeout:  timeout,
	}
}

// Coordinate queries the geocoder with the composed province and city name.
// Errors, timeouts, empty results and the zero sentinel all count as not
// found.
func (r *GeocodingResolver) Coordinate(ctx context.Context, province, city string) (schema.Coordinate, bool) {
	address := province + city

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c, err := r.geocoder.Geocode(ctx, address)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
			"error":   err,
		}).Warn("geocode address")
		return schema.Coordinate{}, false
	}

	if !c.Valid() {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
			"lon":     c.Longitude,
			"lat":     c.Latitude,
		}).Debug("no usable coordinate")
		return schema.Coordinate{}, false
	}

	return c, true
}

// Resolve falls back to the province centre when the city itself cannot be
// located
func (r *GeocodingResolver) Resolve(ctx context.Context, province, city string) (schema.Coordinate, Level) {
	if c, ok := r.Coordinate(ctx, province, city); ok {
		return c, LevelCity
	}

	if c, ok := r.Coordinate(ctx, province, province); ok {
		return c, LevelProvince
	}

	return schema.Coordinate{}, LevelNone
}
