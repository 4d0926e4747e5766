package collector

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/ncp-map/external/ncp"
	"github.com/bitmark-inc/ncp-map/geo"
	"github.com/bitmark-inc/ncp-map/schema"
	"github.com/bitmark-inc/ncp-map/store"
	"github.com/bitmark-inc/ncp-map/utils"
)

const logPrefix = "collector"

// Store - the part of the mongo store the collector writes to
type Store interface {
	store.DayCollection
	store.DayListStore
}

// Options - run settings of a Collector
type Options struct {
	// Country picks the country node of the area tree, empty means the
	// first one
	Country      string
	Timezone     string
	Concurrency  int
	DedupDayList bool
}

// DayResult - outcome of collecting one day
type DayResult struct {
	Day   string
	Count int64
	// Existing is set when the day had already been collected and nothing
	// was written
	Existing bool
	Records  []schema.CityRecord
	// Skipped counts cities without any usable coordinate
	Skipped int
}

type Collector struct {
	source   ncp.Source
	resolver geo.CoordinateResolver
	store    Store
	clock    clockwork.Clock
	scope    tally.Scope
	opts     Options
}

func New(source ncp.Source, resolver geo.CoordinateResolver, s Store, clock clockwork.Clock, scope tally.Scope, opts Options) *Collector {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if scope == nil {
		scope = tally.NoopScope
	}

	return &Collector{
		source:   source,
		resolver: resolver,
		store:    s,
		clock:    clock,
		scope:    scope.SubScope(logPrefix),
		opts:     opts,
	}
}

// Day - key of the day being collected
func (c *Collector) Day() string {
	return utils.DayKey(c.clock.Now(), c.opts.Timezone)
}

// Run fetches one snapshot, collects the city records of today and appends
// the national day list. A failed fetch aborts the run.
func (c *Collector) Run(ctx context.Context) (DayResult, error) {
	snapshot, err := c.source.Fetch(ctx)
	if nil != err {
		return DayResult{}, err
	}

	result, err := c.CollectDay(ctx, snapshot)
	if nil != err {
		return result, err
	}

	if err := c.SaveDayList(ctx, CollectDayList(snapshot)); nil != err {
		return result, err
	}

	return result, nil
}

// CollectDay writes one record per located city of the snapshot into
// today's collection. A day already complete is left untouched and only
// its record count is reported.
func (c *Collector) CollectDay(ctx context.Context, snapshot *ncp.Snapshot) (DayResult, error) {
	day := c.Day()
	result := DayResult{Day: day}

	status, err := c.store.DayStatus(ctx, day)
	if nil != err {
		return result, err
	}

	if status.Complete() {
		count, err := c.store.CountCityRecords(ctx, day)
		if nil != err {
			return result, err
		}

		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"day":    day,
			"count":  count,
		}).Info("day already collected, skip")

		result.Count = count
		result.Existing = true
		return result, nil
	}

	if status != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"day":    day,
			"run_id": status.RunID,
		}).Warn("previous run did not finish, collect again")

		if err := c.store.ResetDay(ctx, day); nil != err {
			return result, err
		}
	}

	country, err := snapshot.Country(c.opts.Country)
	if nil != err {
		return result, err
	}

	runID := uuid.New().String()
	if err := c.store.BeginDay(ctx, schema.DayStatus{
		Day:       day,
		RunID:     runID,
		StartedAt: c.clock.Now().Unix(),
	}); nil != err {
		return result, err
	}

	timer := c.scope.Timer("geocode_duration").Start()
	records, skipped := c.BuildRecords(ctx, country)
	timer.Stop()

	// an interrupted run must not be mistaken for a complete day
	if err := ctx.Err(); nil != err {
		return result, err
	}

	if err := c.store.InsertCityRecords(ctx, day, records); nil != err {
		return result, fmt.Errorf("insert city records of %s: %w", day, err)
	}

	if err := c.store.CompleteDay(ctx, day, int64(len(records)), c.clock.Now().Unix()); nil != err {
		return result, err
	}

	c.scope.Counter("records_inserted").Inc(int64(len(records)))

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"day":     day,
		"run_id":  runID,
		"count":   len(records),
		"skipped": skipped,
	}).Info("day collected")

	result.Count = int64(len(records))
	result.Records = records
	result.Skipped = skipped
	return result, nil
}

type job struct {
	index    int
	country  string
	province string
	city     ncp.Area
}

type located struct {
	record schema.CityRecord
	ok     bool
}

// BuildRecords resolves every city of a country node. Lookups run on a
// bounded pool of workers; output keeps province then city order of the
// snapshot and leaves out cities that could not be located.
func (c *Collector) BuildRecords(ctx context.Context, country ncp.Area) ([]schema.CityRecord, int) {
	jobs := make([]job, 0)
	for _, province := range country.Children {
		for _, city := range province.Children {
			jobs = append(jobs, job{
				index:    len(jobs),
				country:  country.Name,
				province: province.Name,
				city:     city,
			})
		}
	}

	results := make([]located, len(jobs))
	queue := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < c.opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results[j.index] = c.locate(ctx, j)
			}
		}()
	}

	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		queue <- j
	}
	close(queue)
	wg.Wait()

	records := make([]schema.CityRecord, 0, len(jobs))
	skipped := 0
	for _, r := range results {
		if !r.ok {
			skipped++
			continue
		}
		records = append(records, r.record)
	}

	return records, skipped
}

func (c *Collector) locate(ctx context.Context, j job) located {
	coord, level := c.resolver.Resolve(ctx, j.province, j.city.Name)
	c.scope.Tagged(map[string]string{"level": string(level)}).Counter("geocode").Inc(1)

	if level == geo.LevelNone {
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"province": j.province,
			"city":     j.city.Name,
		}).Info("no coordinate, city skipped")
		return located{}
	}

	return located{
		record: schema.CityRecord{
			Country:      j.country,
			Province:     j.province,
			City:         j.city.Name,
			IsUpdated:    j.city.Today.IsUpdated,
			TodayConfirm: j.city.Today.Confirm,
			TotalConfirm: j.city.Total.Confirm,
			TotalHeal:    j.city.Total.Heal,
			TotalDead:    j.city.Total.Dead,
			Longitude:    coord.Longitude,
			Latitude:     coord.Latitude,
		},
		ok: true,
	}
}
