package metrics

import (
	"time"

	"chargestat/core/charging"
	coremetrics "chargestat/core/metrics"
)

// MultiSink fans observations out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFetch forwards the fetch observation to all sinks.
func (m *MultiSink) RecordFetch(window string, ok bool, d time.Duration) {
	for _, s := range m.Sinks {
		s.RecordFetch(window, ok, d)
	}
}

// RecordMonthly forwards the rows to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordMonthly(rows []charging.MonthlyRow) error {
	for _, s := range m.Sinks {
		if err := s.RecordMonthly(rows); err != nil {
			return err
		}
	}
	return nil
}
