package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

// NewMongoDBIndexerFromClient shares a connected client, Close must not be
// called on the returned indexer
func NewMongoDBIndexerFromClient(client *mongo.Client, dbName string) *MongoDBIndexer {
	return &MongoDBIndexer{
		ctx:      context.Background(),
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexDayStatusCollection())
	panicIfError(m.IndexDayListCollection())
}

func (m *MongoDBIndexer) IndexDayStatusCollection() error {
	return m.createIndex(DayStatusCollection, mongo.IndexModel{
		Keys: bson.M{
			"day": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}

// IndexDayListCollection indexes the date without uniqueness, since runs
// without dedup append a copy of the list every time
func (m *MongoDBIndexer) IndexDayListCollection() error {
	return m.createIndex(DayListCollection, mongo.IndexModel{
		Keys: bson.M{
			"date": 1,
		},
	})
}

// IndexDayCollection indexes a single day collection of city records
func (m *MongoDBIndexer) IndexDayCollection(day string) error {
	return m.createIndex(day, dayCollectionIndex())
}

func dayCollectionIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "province", Value: 1},
			{Key: "city", Value: 1},
		},
	}
}

func (m *MongoDBIndexer) Close() error {
	return m.Client.Disconnect(m.ctx)
}
