package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/config"
	"github.com/bitmark-inc/ncp-map/render"
	"github.com/bitmark-inc/ncp-map/store"
)

const (
	logPrefix      = "render-page"
	defaultTimeout = time.Minute
)

func main() {
	var configFile string
	var day string
	var output string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.StringVar(&day, "day", "", "[optional] day to render, today when empty")
	flag.StringVar(&output, "o", "", "[optional] output file, output.page when empty")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if nil != err {
		log.Panic(err)
	}

	config.InitLog(cfg.LogLevel)

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		AttachStacktrace: true,
		Environment:      cfg.Sentry.Environment,
		Dist:             cfg.Sentry.Dist,
	}); err != nil {
		log.Error(err)
	}
	defer sentry.Flush(2 * time.Second)

	if output == "" {
		output = cfg.Output.PageFile
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	mongoClient, err := store.NewMongoClient(ctx, cfg.Mongo.Conn, cfg.Mongo.Pool)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mongoStore := store.NewMongoStore(mongoClient, cfg.Mongo.Database)
	defer mongoStore.Close()

	normalizer, err := aggregator.LoadNormalizer(cfg.Region.AliasFile)
	if nil != err {
		log.Panic(err)
	}

	agg := aggregator.New(mongoStore, normalizer, clockwork.NewRealClock(), aggregator.Options{
		Region:       cfg.Region.Designated,
		Timezone:     cfg.Region.Timezone,
		PositionFile: cfg.Output.PositionFile,
		DedupSeries:  cfg.DayListDedup,
	})

	renderer, err := render.New(render.Options{Lang: cfg.Output.Lang})
	if nil != err {
		log.Panic(err)
	}

	if err := renderPage(ctx, agg, renderer, day, cfg.Output.PositionFile, output); nil != err {
		sentry.CaptureException(err)
		log.WithField("prefix", logPrefix).Error(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"file":   output,
	}).Info("map page generated")
}

// renderPage aggregates a day, today when day is empty, and writes the
// coordinate file and the chart page
func renderPage(ctx context.Context, agg *aggregator.Aggregator, renderer *render.Renderer, day, positionFile, output string) error {
	var summary aggregator.Summary
	var err error
	if day == "" {
		summary, err = agg.Run(ctx)
	} else {
		summary, err = agg.Summarize(ctx, day)
		if nil == err && positionFile != "" {
			err = aggregator.WriteRegionIndex(positionFile, summary.Partition.Index)
		}
	}
	if nil != err {
		return err
	}

	return renderer.RenderFile(output, summary)
}
