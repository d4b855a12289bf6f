// Package metrics defines the sink interface report runs record into.
// Implementations live in infra/metrics.
package metrics

import (
	"time"

	"chargestat/core/charging"
)

// Sink receives observations from report runs.
type Sink interface {
	// RecordFetch records one window fetch with its outcome and duration.
	RecordFetch(window string, ok bool, d time.Duration)
	// RecordMonthly records the final monthly aggregates of a run.
	RecordMonthly(rows []charging.MonthlyRow) error
}

// NopSink discards all observations.
type NopSink struct{}

func (NopSink) RecordFetch(string, bool, time.Duration) {}

func (NopSink) RecordMonthly([]charging.MonthlyRow) error { return nil }
