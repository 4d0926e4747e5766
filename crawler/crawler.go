package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/collector"
	"github.com/bitmark-inc/ncp-map/render"
	"github.com/bitmark-inc/ncp-map/schema"
)

type ncpCrawler struct {
	collector *collector.Collector
	indexer   *schema.MongoDBIndexer

	// aggregator and renderer are nil unless the page is rendered after
	// collecting
	aggregator *aggregator.Aggregator
	renderer   *render.Renderer
	pageFile   string

	timeout time.Duration
}

func (c ncpCrawler) Run() {
	if err := c.run(); nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("crawler run")
		sentry.CaptureException(err)
	}
}

func (c ncpCrawler) run() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	result, err := c.collector.Run(ctx)
	if nil != err {
		return err
	}

	if result.Existing {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"day":    result.Day,
		}).Infof("already collected %d records", result.Count)
	} else {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"day":     result.Day,
			"skipped": result.Skipped,
		}).Infof("collected %d cities", result.Count)

		if err := c.indexer.IndexDayCollection(result.Day); nil != err {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"day":    result.Day,
				"error":  err,
			}).Warn("index day collection")
		}
	}

	if c.renderer == nil {
		return nil
	}

	summary, err := c.aggregator.Run(ctx)
	if nil != err {
		return err
	}

	return c.renderer.RenderFile(c.pageFile, summary)
}

// newCrawler - new cron job for the daily collect
func newCrawler(c *collector.Collector, indexer *schema.MongoDBIndexer, timeout time.Duration) *ncpCrawler {
	return &ncpCrawler{
		collector: c,
		indexer:   indexer,
		timeout:   timeout,
	}
}

// withPage renders the chart page after every collect
func (c *ncpCrawler) withPage(agg *aggregator.Aggregator, renderer *render.Renderer, pageFile string) *ncpCrawler {
	c.aggregator = agg
	c.renderer = renderer
	c.pageFile = pageFile
	return c
}
