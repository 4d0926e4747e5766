package aggregator

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/schema"
	"github.com/bitmark-inc/ncp-map/utils"
)

const logPrefix = "aggregator"

var (
	ErrDayNotCollected = fmt.Errorf("day not collected")
)

// Reader - the part of the mongo store the aggregator reads from
type Reader interface {
	DayStatus(ctx context.Context, day string) (*schema.DayStatus, error)
	CityRecords(ctx context.Context, day string) ([]schema.CityRecord, error)
	DayList(ctx context.Context) ([]schema.DayListRecord, error)
}

type Options struct {
	Region       string
	Timezone     string
	PositionFile string
	DedupSeries  bool
}

// Summary - everything the chart page needs for one day
type Summary struct {
	Day       string    `json:"day"`
	Region    string    `json:"region"`
	Partition Partition `json:"partition"`
	// RegionMap - region counts labelled with the names of the region map
	RegionMap []NameValue `json:"region_map"`
	Series    DaySeries   `json:"series"`
}

// Cities - number of mainland cities outside the designated region
func (s Summary) Cities() int {
	return len(s.Partition.MainlandConfirm)
}

type Aggregator struct {
	store      Reader
	normalizer *Normalizer
	clock      clockwork.Clock
	opts       Options
}

func New(s Reader, normalizer *Normalizer, clock clockwork.Clock, opts Options) *Aggregator {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Aggregator{
		store:      s,
		normalizer: normalizer,
		clock:      clock,
		opts:       opts,
	}
}

// Today - key of the current day in the configured timezone
func (a *Aggregator) Today() string {
	return utils.DayKey(a.clock.Now(), a.opts.Timezone)
}

// Run aggregates today and writes the coordinate index file when one is
// configured
func (a *Aggregator) Run(ctx context.Context) (Summary, error) {
	summary, err := a.Summarize(ctx, a.Today())
	if nil != err {
		return summary, err
	}

	if a.opts.PositionFile != "" {
		if err := WriteRegionIndex(a.opts.PositionFile, summary.Partition.Index); nil != err {
			return summary, err
		}

		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"file":   a.opts.PositionFile,
			"count":  len(summary.Partition.Index),
		}).Info("coordinate index written")
	}

	return summary, nil
}

// Summarize reads the records of a complete day. A day still being
// collected is reported as not collected.
func (a *Aggregator) Summarize(ctx context.Context, day string) (Summary, error) {
	summary := Summary{Day: day, Region: a.opts.Region}

	status, err := a.store.DayStatus(ctx, day)
	if nil != err {
		return summary, err
	}

	if !status.Complete() {
		return summary, fmt.Errorf("%w: %s", ErrDayNotCollected, day)
	}

	records, err := a.store.CityRecords(ctx, day)
	if nil != err {
		return summary, err
	}

	dayList, err := a.store.DayList(ctx)
	if nil != err {
		return summary, err
	}

	summary.Partition = PartitionAndSum(records, a.opts.Region)
	summary.RegionMap = a.normalizer.NormalizeAll(summary.Partition.RegionConfirm, a.opts.Region)
	summary.Series = NewDaySeries(dayList, a.opts.DedupSeries)

	log.WithFields(log.Fields{
		"prefix":   logPrefix,
		"day":      day,
		"region":   a.opts.Region,
		"cities":   summary.Cities(),
		"mainland": summary.Partition.Totals.Mainland,
		"regional": summary.Partition.Totals.Region,
	}).Info("day aggregated")

	return summary, nil
}
