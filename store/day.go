package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/ncp-map/schema"
	"github.com/bitmark-inc/ncp-map/utils"
)

var (
	ErrDayNotStarted = fmt.Errorf("day collect not started")
	ErrEmptyDay      = fmt.Errorf("empty day key")
)

// DayCollection - city records of a day live in a collection named after
// the day, their completeness is tracked in the day status collection
type DayCollection interface {
	DayStatus(ctx context.Context, day string) (*schema.DayStatus, error)
	BeginDay(ctx context.Context, status schema.DayStatus) error
	CompleteDay(ctx context.Context, day string, count int64, completedAt int64) error
	ResetDay(ctx context.Context, day string) error

	InsertCityRecords(ctx context.Context, day string, records []schema.CityRecord) error
	CityRecords(ctx context.Context, day string) ([]schema.CityRecord, error)
	CountCityRecords(ctx context.Context, day string) (int64, error)
	CollectedDays(ctx context.Context) ([]string, error)
}

// DayStatus returns nil without error for a day never collected
func (m mongoDB) DayStatus(ctx context.Context, day string) (*schema.DayStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var status schema.DayStatus
	err := m.db().Collection(schema.DayStatusCollection).FindOne(ctx, bson.M{"day": day}).Decode(&status)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"day":    day,
			"error":  err,
		}).Error("get day status")
		return nil, err
	}

	return &status, nil
}

// BeginDay marks a day as collecting, replacing whatever status it had
func (m mongoDB) BeginDay(ctx context.Context, status schema.DayStatus) error {
	if status.Day == "" {
		return ErrEmptyDay
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	status.Status = schema.StatusCollecting
	status.Count = 0
	status.CompletedAt = 0

	opts := options.Replace().SetUpsert(true)
	_, err := m.db().Collection(schema.DayStatusCollection).ReplaceOne(ctx, bson.M{"day": status.Day}, status, opts)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"day":    status.Day,
			"error":  err,
		}).Error("begin day")
	}
	return err
}

func (m mongoDB) CompleteDay(ctx context.Context, day string, count int64, completedAt int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := m.db().Collection(schema.DayStatusCollection).UpdateOne(ctx, bson.M{
		"day":    day,
		"status": schema.StatusCollecting,
	}, bson.M{
		"$set": bson.M{
			"status":       schema.StatusComplete,
			"count":        count,
			"completed_at": completedAt,
		},
	})
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"day":    day,
			"error":  err,
		}).Error("complete day")
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrDayNotStarted, day)
	}
	return nil
}

// ResetDay drops city records of a day left over by an unfinished run
func (m mongoDB) ResetDay(ctx context.Context, day string) error {
	if day == "" {
		return ErrEmptyDay
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"prefix": mongoLogPrefix,
		"day":    day,
	}).Warn("drop partial day collection")

	return m.db().Collection(day).Drop(ctx)
}

func (m mongoDB) InsertCityRecords(ctx context.Context, day string, records []schema.CityRecord) error {
	if day == "" {
		return ErrEmptyDay
	}

	if len(records) == 0 {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "day": day}).Debug("no record to insert")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, r)
	}

	_, err := m.db().Collection(day).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"day":    day,
			"count":  len(records),
			"error":  err,
		}).Error("insert city records")
	}
	return err
}

// CityRecords returns city records of a day in insertion order
func (m mongoDB) CityRecords(ctx context.Context, day string) ([]schema.CityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"_id": 1}).SetProjection(bson.M{"_id": 0})
	cur, err := m.db().Collection(day).Find(ctx, bson.M{}, opts)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"day":    day,
			"error":  err,
		}).Error("find city records")
		return nil, err
	}

	records := make([]schema.CityRecord, 0)
	if err := cur.All(ctx, &records); nil != err {
		return nil, err
	}
	return records, nil
}

func (m mongoDB) CountCityRecords(ctx context.Context, day string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return m.db().Collection(day).CountDocuments(ctx, bson.M{})
}

// CollectedDays lists the day collections in the database, sorted by name
func (m mongoDB) CollectedDays(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	names, err := m.db().ListCollectionNames(ctx, bson.M{})
	if nil != err {
		return nil, err
	}

	days := make([]string, 0, len(names))
	for _, name := range names {
		if _, err := time.Parse(utils.DayLayout, name); err == nil {
			days = append(days, name)
		}
	}
	sort.Strings(days)
	return days, nil
}
