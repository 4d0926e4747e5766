package geoinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/consts"
	"github.com/bitmark-inc/ncp-map/schema"
)

const amapStatusOK = "1"

var (
	ErrAMapStatus   = fmt.Errorf("amap response status not ok")
	ErrAMapLocation = fmt.Errorf("malformed amap location")
)

type amapGeocode struct {
	Location string `json:"location"`
}

type amapResponse struct {
	Status   string        `json:"status"`
	Info     string        `json:"info"`
	Count    string        `json:"count"`
	Geocodes []amapGeocode `json:"geocodes"`
}

type amap struct {
	key        string
	url        string
	httpClient *http.Client
}

func (a amap) Geocode(ctx context.Context, address string) (schema.Coordinate, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", a.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url+"?"+q.Encode(), nil)
	if nil != err {
		return schema.Coordinate{}, err
	}

	resp, err := a.httpClient.Do(req)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
			"error":   err,
		}).Warn("amap geocode request")
		return schema.Coordinate{}, err
	}
	defer resp.Body.Close()

	var r amapResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); nil != err {
		return schema.Coordinate{}, err
	}

	if r.Status != "" && r.Status != amapStatusOK {
		return schema.Coordinate{}, fmt.Errorf("%w: %s", ErrAMapStatus, r.Info)
	}

	if r.Count == "0" || len(r.Geocodes) == 0 {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
		}).Debug("no geocode result")
		return schema.Coordinate{}, nil
	}

	return parseLocation(r.Geocodes[0].Location)
}

// parseLocation parses the "lon,lat" form of amap locations
func parseLocation(location string) (schema.Coordinate, error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return schema.Coordinate{}, fmt.Errorf("%w: %q", ErrAMapLocation, location)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if nil != err {
		return schema.Coordinate{}, fmt.Errorf("%w: %q", ErrAMapLocation, location)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if nil != err {
		return schema.Coordinate{}, fmt.Errorf("%w: %q", ErrAMapLocation, location)
	}

	return schema.Coordinate{Longitude: lon, Latitude: lat}, nil
}

// NewAMap - geocoder backed by the amap web service
func NewAMap(key, u string, httpClient *http.Client) Geocoder {
	if u == "" {
		u = consts.DefaultAMapURL
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &amap{
		key:        key,
		url:        u,
		httpClient: httpClient,
	}
}
