package geoinfo

import (
	"context"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/ncp-map/schema"
)

type googleGeocoder struct {
	client *maps.Client
}

func (g googleGeocoder) Geocode(ctx context.Context, address string) (schema.Coordinate, error) {
	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"address": address,
	}).Debug("query google geocode")

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Region:   "cn",
		Language: "zh-CN",
	})
	if nil != err {
		return schema.Coordinate{}, err
	}

	if len(geos) == 0 {
		return schema.Coordinate{}, nil
	}

	loc := geos[0].Geometry.Location
	return schema.Coordinate{Longitude: loc.Lng, Latitude: loc.Lat}, nil
}

// NewGoogle - geocoder backed by google maps
func NewGoogle(client *maps.Client) Geocoder {
	return &googleGeocoder{
		client: client,
	}
}
