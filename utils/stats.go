package utils

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const statsLogPrefix = "stats"

type logCapabilities struct{}

func (logCapabilities) Reporting() bool { return true }
func (logCapabilities) Tagging() bool   { return true }

// LogReporter - tally reporter printing flushed metrics through logrus
type LogReporter struct{}

func NewLogReporter() tally.StatsReporter {
	return LogReporter{}
}

func (LogReporter) ReportCounter(name string, tags map[string]string, value int64) {
	log.WithFields(log.Fields{"prefix": statsLogPrefix, "counter": name, "tags": tags, "value": value}).Info("metric")
}

func (LogReporter) ReportGauge(name string, tags map[string]string, value float64) {
	log.WithFields(log.Fields{"prefix": statsLogPrefix, "gauge": name, "tags": tags, "value": value}).Info("metric")
}

func (LogReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	log.WithFields(log.Fields{"prefix": statsLogPrefix, "timer": name, "tags": tags, "interval": interval}).Info("metric")
}

func (LogReporter) ReportHistogramValueSamples(name string, tags map[string]string, _ tally.Buckets, lower, upper float64, samples int64) {
	log.WithFields(log.Fields{"prefix": statsLogPrefix, "histogram": name, "tags": tags, "lower": lower, "upper": upper, "samples": samples}).Debug("metric")
}

func (LogReporter) ReportHistogramDurationSamples(name string, tags map[string]string, _ tally.Buckets, lower, upper time.Duration, samples int64) {
	log.WithFields(log.Fields{"prefix": statsLogPrefix, "histogram": name, "tags": tags, "lower": lower, "upper": upper, "samples": samples}).Debug("metric")
}

func (LogReporter) Capabilities() tally.Capabilities {
	return logCapabilities{}
}

func (LogReporter) Flush() {}
