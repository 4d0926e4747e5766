package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/ncp-map/consts"
)

const envPrefix = "ncp"

var (
	ErrMissingMongo       = errors.New("mongo.conn and mongo.database are required")
	ErrMissingGeocoderKey = errors.New("geocoder.key is required")
	ErrUnknownProvider    = errors.New("unknown geocoder provider")
)

type Mongo struct {
	Conn     string
	Database string
	Pool     uint64
}

type Source struct {
	URL     string
	Timeout time.Duration
}

type Geocoder struct {
	Provider    string
	Key         string
	URL         string
	Timeout     time.Duration
	Concurrency int
	CacheRedis  string
	CacheTTL    time.Duration
}

type Region struct {
	Designated string
	AliasFile  string
	Timezone   string
}

type Output struct {
	PositionFile string
	PageFile     string
	Lang         string
}

type Sentry struct {
	DSN         string
	Environment string
	Dist        string
}

// Config - settings of one pipeline run
type Config struct {
	LogLevel string

	Mongo    Mongo
	Source   Source
	Geocoder Geocoder
	Region   Region
	Output   Output
	Sentry   Sentry

	DayListDedup    bool
	CrawlerSchedule string

	ServerPort    string
	ServerVersion string
}

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("mongo.pool", 10)
	viper.SetDefault("mongo.database", "NCP")
	viper.SetDefault("source.url", consts.DefaultSnapshotURL)
	viper.SetDefault("source.timeout", 15*time.Second)
	viper.SetDefault("geocoder.provider", "amap")
	viper.SetDefault("geocoder.url", consts.DefaultAMapURL)
	viper.SetDefault("geocoder.timeout", 5*time.Second)
	viper.SetDefault("geocoder.concurrency", 4)
	viper.SetDefault("geocoder.cache.ttl", 30*24*time.Hour)
	viper.SetDefault("region.designated", consts.DefaultDesignatedRegion)
	viper.SetDefault("region.timezone", consts.DefaultTimezone)
	viper.SetDefault("output.position", consts.DefaultPositionFile)
	viper.SetDefault("output.page", consts.DefaultPageFile)
	viper.SetDefault("output.lang", "zh")
	viper.SetDefault("daylist.dedup", false)
	viper.SetDefault("crawler.schedule", "0 10 * * *")
	viper.SetDefault("server.port", "8080")
}

// LoadConfig reads a yaml config file when present, then environment
// variables prefixed with NCP_ (and a .env file) override file values
func LoadConfig(file string) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env file.")
	}

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// FromViper copies the current viper settings into a Config
func FromViper() *Config {
	return &Config{
		LogLevel: viper.GetString("log.level"),
		Mongo: Mongo{
			Conn:     viper.GetString("mongo.conn"),
			Database: viper.GetString("mongo.database"),
			Pool:     viper.GetUint64("mongo.pool"),
		},
		Source: Source{
			URL:     viper.GetString("source.url"),
			Timeout: viper.GetDuration("source.timeout"),
		},
		Geocoder: Geocoder{
			Provider:    strings.ToLower(viper.GetString("geocoder.provider")),
			Key:         viper.GetString("geocoder.key"),
			URL:         viper.GetString("geocoder.url"),
			Timeout:     viper.GetDuration("geocoder.timeout"),
			Concurrency: viper.GetInt("geocoder.concurrency"),
			CacheRedis:  viper.GetString("geocoder.cache.redis"),
			CacheTTL:    viper.GetDuration("geocoder.cache.ttl"),
		},
		Region: Region{
			Designated: viper.GetString("region.designated"),
			AliasFile:  viper.GetString("region.aliases"),
			Timezone:   viper.GetString("region.timezone"),
		},
		Output: Output{
			PositionFile: viper.GetString("output.position"),
			PageFile:     viper.GetString("output.page"),
			Lang:         viper.GetString("output.lang"),
		},
		Sentry: Sentry{
			DSN:         viper.GetString("sentry.dsn"),
			Environment: viper.GetString("sentry.environment"),
			Dist:        viper.GetString("sentry.dist"),
		},
		DayListDedup:    viper.GetBool("daylist.dedup"),
		CrawlerSchedule: viper.GetString("crawler.schedule"),
		ServerPort:      viper.GetString("server.port"),
		ServerVersion:   viper.GetString("server.version"),
	}
}

// Load - LoadConfig followed by FromViper and validation
func Load(file string) (*Config, error) {
	LoadConfig(file)
	c := FromViper()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.Mongo.Conn == "" || c.Mongo.Database == "" {
		return ErrMissingMongo
	}

	switch c.Geocoder.Provider {
	case "amap", "google":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProvider, c.Geocoder.Provider)
	}

	if c.Geocoder.Concurrency <= 0 {
		c.Geocoder.Concurrency = 1
	}

	return nil
}

// ValidateGeocoder is only needed by commands that query the geocoder
func (c *Config) ValidateGeocoder() error {
	if c.Geocoder.Key == "" {
		return ErrMissingGeocoderKey
	}
	return nil
}

// InitLog sets up logrus with the prefixed text formatter
func InitLog(level string) {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}
