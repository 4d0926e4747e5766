package geoinfo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ncp-map/external/geoinfo"
	"github.com/bitmark-inc/ncp-map/external/geoinfo/mocks"
	"github.com/bitmark-inc/ncp-map/schema"
)

var wuhan = schema.Coordinate{Longitude: 114.305393, Latitude: 30.593099}

func TestCachedGeocoderHit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	inner := mocks.NewMockGeocoder(ctl)
	cache := mocks.NewMockCache(ctl)

	cache.EXPECT().Get(gomock.Any(), "湖北武汉").Return(wuhan, true, nil).Times(1)
	inner.EXPECT().Geocode(gomock.Any(), gomock.Any()).Times(0)

	actual, err := geoinfo.NewCachedGeocoder(inner, cache).Geocode(context.Background(), "湖北武汉")
	assert.Nil(t, err)
	assert.Equal(t, wuhan, actual)
}

func TestCachedGeocoderMissStoresResult(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	inner := mocks.NewMockGeocoder(ctl)
	cache := mocks.NewMockCache(ctl)

	cache.EXPECT().Get(gomock.Any(), "湖北武汉").Return(schema.Coordinate{}, false, nil).Times(1)
	inner.EXPECT().Geocode(gomock.Any(), "湖北武汉").Return(wuhan, nil).Times(1)
	cache.EXPECT().Set(gomock.Any(), "湖北武汉", wuhan).Return(nil).Times(1)

	actual, err := geoinfo.NewCachedGeocoder(inner, cache).Geocode(context.Background(), "湖北武汉")
	assert.Nil(t, err)
	assert.Equal(t, wuhan, actual)
}

func TestCachedGeocoderSkipsEmptyResult(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	inner := mocks.NewMockGeocoder(ctl)
	cache := mocks.NewMockCache(ctl)

	cache.EXPECT().Get(gomock.Any(), "待明确地区").Return(schema.Coordinate{}, false, nil).Times(1)
	inner.EXPECT().Geocode(gomock.Any(), "待明确地区").Return(schema.Coordinate{}, nil).Times(1)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	actual, err := geoinfo.NewCachedGeocoder(inner, cache).Geocode(context.Background(), "待明确地区")
	assert.Nil(t, err)
	assert.False(t, actual.Valid())
}

func TestCachedGeocoderCacheErrorFallsThrough(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	inner := mocks.NewMockGeocoder(ctl)
	cache := mocks.NewMockCache(ctl)

	cache.EXPECT().Get(gomock.Any(), "湖北武汉").Return(schema.Coordinate{}, false, errors.New("connection refused")).Times(1)
	inner.EXPECT().Geocode(gomock.Any(), "湖北武汉").Return(wuhan, nil).Times(1)
	cache.EXPECT().Set(gomock.Any(), "湖北武汉", wuhan).Return(errors.New("connection refused")).Times(1)

	actual, err := geoinfo.NewCachedGeocoder(inner, cache).Geocode(context.Background(), "湖北武汉")
	assert.Nil(t, err)
	assert.Equal(t, wuhan, actual)
}
