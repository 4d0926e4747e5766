package store

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/ncp-map/schema"
)

// DayListStore - national daily summaries
type DayListStore interface {
	// AppendDayList inserts every record, a rerun on the same day appends
	// another copy of the list
	AppendDayList(ctx context.Context, records []schema.DayListRecord) error
	// UpsertDayList keeps a single record per date
	UpsertDayList(ctx context.Context, records []schema.DayListRecord) error
	DayList(ctx context.Context) ([]schema.DayListRecord, error)
}

func (m mongoDB) AppendDayList(ctx context.Context, records []schema.DayListRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, r)
	}

	_, err := m.db().Collection(schema.DayListCollection).InsertMany(ctx, docs)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"count":  len(records),
			"error":  err,
		}).Error("append day list")
	}
	return err
}

func (m mongoDB) UpsertDayList(ctx context.Context, records []schema.DayListRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.db().Collection(schema.DayListCollection)
	opts := options.Replace().SetUpsert(true)
	for _, r := range records {
		if _, err := c.ReplaceOne(ctx, bson.M{"date": r.Date}, r, opts); nil != err {
			log.WithFields(log.Fields{
				"prefix": mongoLogPrefix,
				"date":   r.Date,
				"error":  err,
			}).Error("upsert day list")
			return err
		}
	}
	return nil
}

// DayList returns the stored summaries in insertion order
func (m mongoDB) DayList(ctx context.Context) ([]schema.DayListRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"_id": 1}).SetProjection(bson.M{"_id": 0})
	cur, err := m.db().Collection(schema.DayListCollection).Find(ctx, bson.M{}, opts)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("find day list")
		return nil, err
	}

	records := make([]schema.DayListRecord, 0)
	if err := cur.All(ctx, &records); nil != err {
		return nil, err
	}
	return records, nil
}
