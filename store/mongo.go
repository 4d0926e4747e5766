package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// MongoStore - interface for mongodb operations
type MongoStore interface {
	DayCollection
	DayListStore
	Closer
	Pinger
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// Ping - ping mongo db
func (m mongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

// Close - close mongo db connections
func (m mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

func (m mongoDB) db() *mongo.Database {
	return m.client.Database(m.database)
}

// NewMongoStore - return mongo db operations
func NewMongoStore(client *mongo.Client, database string) MongoStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// NewMongoClient - create a client and connect it to the mongo server
func NewMongoClient(ctx context.Context, conn string, pool uint64) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(conn)
	opts.SetMaxPoolSize(pool)
	client, err := mongo.NewClient(opts)
	if nil != err {
		return nil, err
	}

	if err := client.Connect(ctx); nil != err {
		return nil, err
	}
	return client, nil
}
