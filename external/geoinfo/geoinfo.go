package geoinfo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/ncp-map/schema"
)

const (
	logPrefix      = "geoinfo"
	defaultTimeout = 5 * time.Second

	ProviderAMap   = "amap"
	ProviderGoogle = "google"
)

var (
	ErrEmptyKey        = fmt.Errorf("empty geocoder key")
	ErrUnknownProvider = fmt.Errorf("unknown geocoder provider")
)

// Geocoder - forward geocoding of an address. An address without result
// returns the zero coordinate and no error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (schema.Coordinate, error)
}

// New - new Geocoder of the named provider
func New(provider, apiKey, url string, timeout time.Duration) (Geocoder, error) {
	if apiKey == "" {
		return nil, ErrEmptyKey
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	switch provider {
	case ProviderAMap:
		return NewAMap(apiKey, url, &http.Client{Timeout: timeout}), nil
	case ProviderGoogle:
		client, err := maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"error":  err,
			}).Error("new map client")

			return nil, err
		}
		return NewGoogle(client), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}
