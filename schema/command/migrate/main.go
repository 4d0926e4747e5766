package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/config"
	"github.com/bitmark-inc/ncp-map/schema"
)

func main() {
	var configFile string
	var day string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.StringVar(&day, "day", "", "[optional] also index the city records of a day")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	config.InitLog(cfg.LogLevel)

	indexer := schema.NewMongoDBIndexer(cfg.Mongo.Conn, cfg.Mongo.Database)
	defer indexer.Close()

	indexer.IndexAll()

	if day != "" {
		if err := indexer.IndexDayCollection(day); err != nil {
			panic(err)
		}
	}

	log.WithField("prefix", "migrate").Info("indexes created")
}
