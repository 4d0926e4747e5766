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
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/aggregator"
	"github.com/bitmark-inc/ncp-map/api"
	"github.com/bitmark-inc/ncp-map/config"
	"github.com/bitmark-inc/ncp-map/render"
	"github.com/bitmark-inc/ncp-map/store"
)

var (
	server     *api.Server
	mongoStore store.MongoStore
)

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if mongoStore != nil {
			log.Info("Shutting down db store")
			mongoStore.Close()
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Panic(err)
	}

	config.InitLog(cfg.LogLevel)

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		AttachStacktrace: true,
		Environment:      cfg.Sentry.Environment,
		Dist:             cfg.Sentry.Dist,
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// initialise mongodb connections
	mongoClient, err := store.NewMongoClient(initialCtx, cfg.Mongo.Conn, cfg.Mongo.Pool)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mongoStore = store.NewMongoStore(mongoClient, cfg.Mongo.Database)

	normalizer, err := aggregator.LoadNormalizer(cfg.Region.AliasFile)
	if err != nil {
		log.Panic(err)
	}

	renderer, err := render.New(render.Options{Lang: cfg.Output.Lang})
	if err != nil {
		log.Panic(err)
	}

	agg := aggregator.New(mongoStore, normalizer, clockwork.NewRealClock(), aggregator.Options{
		Region:      cfg.Region.Designated,
		Timezone:    cfg.Region.Timezone,
		DedupSeries: cfg.DayListDedup,
	})

	// Init http server
	server = api.NewServer(mongoStore, agg, renderer, cfg.ServerVersion)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + cfg.ServerPort))
}
