package ncp

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	logPrefix      = "ncp"
	defaultTimeout = 15 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/79.0.3945.130 Safari/537.36"
)

var (
	ErrSnapshotFetch  = fmt.Errorf("fetch snapshot fail")
	ErrSnapshotDecode = fmt.Errorf("decode snapshot fail")
)

// Source - interface to fetch the daily case snapshot
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func (c client) Fetch(ctx context.Context) (*Snapshot, error) {
	data, err := c.get(ctx)
	if nil != err {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("decode envelope")
		return nil, fmt.Errorf("%w: %s", ErrSnapshotDecode, err)
	}

	s, err := DecodeSnapshot(env)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("decode snapshot")
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"countries": len(s.AreaTree),
		"days":      len(s.ChinaDayList),
	}).Debug("snapshot fetched")

	return s, nil
}

func (c client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if nil != err {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    c.url,
			"error":  err,
		}).Error("get snapshot")
		return nil, fmt.Errorf("%w: %s", ErrSnapshotFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSnapshotFetch, resp.StatusCode)
	}

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("read snapshot response")
		return nil, fmt.Errorf("%w: %s", ErrSnapshotFetch, err)
	}
	return data, nil
}

// New - new snapshot source reading from url
func New(url string, timeout time.Duration) Source {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
