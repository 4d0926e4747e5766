package collector

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/external/ncp"
	"github.com/bitmark-inc/ncp-map/schema"
)

// CollectDayList maps the national day list of a snapshot one to one
func CollectDayList(snapshot *ncp.Snapshot) []schema.DayListRecord {
	records := make([]schema.DayListRecord, 0, len(snapshot.ChinaDayList))
	for _, d := range snapshot.ChinaDayList {
		records = append(records, schema.DayListRecord{
			Confirm:  d.Confirm,
			Suspect:  d.Suspect,
			Dead:     d.Dead,
			Heal:     d.Heal,
			DeadRate: string(d.DeadRate),
			HealRate: string(d.HealRate),
			Date:     d.Date,
		})
	}
	return records
}

// SaveDayList appends the day list, or keeps one record per date when dedup
// is enabled
func (c *Collector) SaveDayList(ctx context.Context, records []schema.DayListRecord) error {
	var err error
	if c.opts.DedupDayList {
		err = c.store.UpsertDayList(ctx, records)
	} else {
		err = c.store.AppendDayList(ctx, records)
	}

	if nil != err {
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"count":  len(records),
		"dedup":  c.opts.DedupDayList,
	}).Info("day list saved")
	return nil
}
