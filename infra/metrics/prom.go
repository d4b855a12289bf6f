package metrics

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chargestat/core/charging"
)

// PromSink records report-run observations in Prometheus metrics.
type PromSink struct {
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	kwh      *prometheus.GaugeVec
	cost     *prometheus.GaugeVec
}

// NewPromSink registers the collectors on the provided registerer. If reg
// is nil, the default registerer is used. Already-registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chargestat_fetches_total",
		Help: "Total number of history window fetches",
	}, []string{"ok"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chargestat_fetch_duration_seconds",
		Help:    "Duration of history window fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"ok"})
	kwh := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chargestat_month_kwh",
		Help: "Home charging energy per month",
	}, []string{"month"})
	cost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chargestat_month_cost",
		Help: "Home charging cost per month",
	}, []string{"month"})

	if err := reg.Register(fetches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fetches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(kwh); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			kwh = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{fetches: fetches, duration: duration, kwh: kwh, cost: cost}, nil
}

// RecordFetch counts one window fetch by outcome.
func (s *PromSink) RecordFetch(_ string, ok bool, d time.Duration) {
	label := strconv.FormatBool(ok)
	s.fetches.WithLabelValues(label).Inc()
	s.duration.WithLabelValues(label).Observe(d.Seconds())
}

// RecordMonthly publishes the per-month aggregates as gauges.
func (s *PromSink) RecordMonthly(rows []charging.MonthlyRow) error {
	for _, r := range rows {
		s.kwh.WithLabelValues(r.Label).Set(r.KWh)
		s.cost.WithLabelValues(r.Label).Set(r.Cost)
	}
	return nil
}

// StartPromServer exposes Prometheus metrics on the given address until the
// context is canceled. A dedicated ServeMux avoids interfering with other
// handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("prom server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
