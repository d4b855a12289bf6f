// Package report orchestrates a full aggregation run: partition the date
// range, fetch each window, normalize, aggregate and join year-over-year
// figures. The runner owns the partial-failure policy: a window that fails
// to fetch or normalize is dropped with a warning, never aborting the run.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chargestat/core/charging"
	"chargestat/core/logger"
	"chargestat/core/metrics"
)

// Fetcher retrieves raw charging history for one window. Implemented by
// the electrafi client.
type Fetcher interface {
	Charges(ctx context.Context, window charging.DateWindow) (charging.RawHistory, error)
}

// Report is the outcome of a multi-window run.
type Report struct {
	RunID    string                `json:"run_id"`
	Rows     []charging.TrendRow   `json:"rows"`
	Trend    charging.TrendSummary `json:"trend"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Runner drives report generation against a Fetcher.
type Runner struct {
	fetcher Fetcher
	log     logger.Logger
	sink    metrics.Sink
}

// New creates a Runner. A nil logger or sink is replaced with a no-op.
func New(fetcher Fetcher, log logger.Logger, sink metrics.Sink) *Runner {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Runner{fetcher: fetcher, log: log, sink: sink}
}

// Monthly runs the trailing-n-months report anchored to today.
func (r *Runner) Monthly(ctx context.Context, today time.Time, n int) (Report, error) {
	return r.Run(ctx, charging.TrailingMonths(today, n))
}

// Run fetches and aggregates every window, then annotates the monthly rows
// with year-over-year comparisons and the overall trend. Windows are
// fetched sequentially; each failure is recorded as a warning and skipped,
// so the year-over-year join simply finds no entry for that month.
func (r *Runner) Run(ctx context.Context, windows []charging.MonthWindow) (Report, error) {
	rep := Report{RunID: uuid.NewString()}
	rows := make([]charging.MonthlyRow, 0, len(windows))

	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		row, ok, err := r.window(ctx, w)
		if err != nil {
			r.log.Warnf("run %s: window %s: %v", rep.RunID, w.Label, err)
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("window %s: %v", w.Label, err))
			continue
		}
		if ok {
			rows = append(rows, row)
		}
	}

	rep.Rows = charging.WithYearOverYear(rows)
	rep.Trend = charging.Trend(rows)
	if err := r.sink.RecordMonthly(rows); err != nil {
		r.log.Errorf("run %s: record monthly metrics: %v", rep.RunID, err)
	}
	r.log.Debugw("report complete", map[string]any{
		"run_id":   rep.RunID,
		"windows":  len(windows),
		"months":   len(rows),
		"warnings": len(rep.Warnings),
	})
	return rep, nil
}

func (r *Runner) window(ctx context.Context, w charging.MonthWindow) (charging.MonthlyRow, bool, error) {
	start := time.Now()
	raw, err := r.fetcher.Charges(ctx, w.DateWindow)
	r.sink.RecordFetch(w.Label, err == nil, time.Since(start))
	if err != nil {
		return charging.MonthlyRow{}, false, fmt.Errorf("fetch: %w", err)
	}
	sessions, err := charging.NormalizeAll(raw.Results)
	if err != nil {
		return charging.MonthlyRow{}, false, err
	}
	row, ok := charging.MonthlyAggregate(sessions, w.Label)
	return row, ok, nil
}
