package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/collector"
	"github.com/bitmark-inc/ncp-map/config"
	"github.com/bitmark-inc/ncp-map/consts"
	"github.com/bitmark-inc/ncp-map/external/geoinfo"
	"github.com/bitmark-inc/ncp-map/external/ncp"
	"github.com/bitmark-inc/ncp-map/geo"
	"github.com/bitmark-inc/ncp-map/render"
	"github.com/bitmark-inc/ncp-map/schema"
	"github.com/bitmark-inc/ncp-map/store"
	"github.com/bitmark-inc/ncp-map/utils"
)

const (
	logPrefix      = "cron"
	defaultTimeout = 15 * time.Second
	runTimeout     = 30 * time.Minute
	reportInterval = 10 * time.Second
)

type Cron interface {
	Run()
}

func newGeocoder(cfg config.Geocoder) (geoinfo.Geocoder, error) {
	g, err := geoinfo.New(cfg.Provider, cfg.Key, cfg.URL, cfg.Timeout)
	if nil != err {
		return nil, err
	}

	if cfg.CacheRedis == "" {
		return g, nil
	}

	opts, err := redis.ParseURL(cfg.CacheRedis)
	if nil != err {
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"addr":   opts.Addr,
	}).Info("geocode cache enabled")
	return geoinfo.NewCachedGeocoder(g, geoinfo.NewRedisCache(redis.NewClient(opts), cfg.CacheTTL)), nil
}

func main() {
	var configFile string
	var daemon bool
	var page bool

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.BoolVar(&daemon, "daemon", false, "[optional] keep running and collect on crawler.schedule")
	flag.BoolVar(&page, "page", false, "[optional] render the chart page after collecting")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if nil != err {
		log.Panic(err)
	}

	config.InitLog(cfg.LogLevel)

	if err := cfg.ValidateGeocoder(); nil != err {
		log.Panic(err)
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		AttachStacktrace: true,
		Environment:      cfg.Sentry.Environment,
		Dist:             cfg.Sentry.Dist,
	}); err != nil {
		log.Error(err)
	}
	defer sentry.Flush(2 * time.Second)

	initialCtx, cancelInitialization := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancelInitialization()

	// initialise mongodb connections
	mongoClient, err := store.NewMongoClient(initialCtx, cfg.Mongo.Conn, cfg.Mongo.Pool)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mStore := store.NewMongoStore(mongoClient, cfg.Mongo.Database)
	defer mStore.Close()

	geocoder, err := newGeocoder(cfg.Geocoder)
	if nil != err {
		log.Panic(err)
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "ncp",
		Reporter: utils.NewLogReporter(),
	}, reportInterval)
	defer closer.Close()

	clock := clockwork.NewRealClock()

	c := collector.New(
		ncp.New(cfg.Source.URL, cfg.Source.Timeout),
		geo.NewGeocodingResolver(geocoder, cfg.Geocoder.Timeout),
		mStore,
		clock,
		scope,
		collector.Options{
			Country:      consts.DefaultCountry,
			Timezone:     cfg.Region.Timezone,
			Concurrency:  cfg.Geocoder.Concurrency,
			DedupDayList: cfg.DayListDedup,
		})

	job := newCrawler(c, schema.NewMongoDBIndexerFromClient(mongoClient, cfg.Mongo.Database), runTimeout)

	if page {
		normalizer, err := aggregator.LoadNormalizer(cfg.Region.AliasFile)
		if nil != err {
			log.Panic(err)
		}

		renderer, err := render.New(render.Options{Lang: cfg.Output.Lang})
		if nil != err {
			log.Panic(err)
		}

		agg := aggregator.New(mStore, normalizer, clock, aggregator.Options{
			Region:       cfg.Region.Designated,
			Timezone:     cfg.Region.Timezone,
			PositionFile: cfg.Output.PositionFile,
			DedupSeries:  cfg.DayListDedup,
		})
		job.withPage(agg, renderer, cfg.Output.PageFile)
	}

	if !daemon {
		if err := job.run(); nil != err {
			sentry.CaptureException(err)
			log.WithField("prefix", logPrefix).Error(err)
			sentry.Flush(2 * time.Second)
			os.Exit(1)
		}
		return
	}

	runSchedule(cfg, job)
}

// runSchedule runs the job on the configured schedule until a signal arrives
func runSchedule(cfg *config.Config, job Cron) {
	loc := utils.GetLocation(cfg.Region.Timezone)
	if loc == nil {
		loc = time.UTC
	}

	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddJob(cfg.CrawlerSchedule, job); nil != err {
		log.Panicf("schedule %q with error: %s", cfg.CrawlerSchedule, err)
	}

	log.WithFields(log.Fields{
		"prefix":   logPrefix,
		"schedule": cfg.CrawlerSchedule,
		"timezone": loc.String(),
	}).Info("crawler scheduled")
	scheduler.Start()

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.WithField("prefix", logPrefix).Info("crawler is preparing to shutdown")
	<-scheduler.Stop().Done()
}
