package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chargestat/config"
	coremetrics "chargestat/core/metrics"
	"chargestat/infra/cache"
	"chargestat/infra/electrafi"
	"chargestat/infra/logger"
	"chargestat/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "chargestat",
	Short: "Query charging history and derive monthly statistics for your EV",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.Nop{}, nil
	case "fs":
		return cache.NewFSStore(cfg.Cache.Dir)
	case "redis":
		client, err := cache.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewRedisStore(client, time.Duration(cfg.Cache.TTLSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %s", cfg.Cache.Backend)
	}
}

func newClient(cfg *config.Config) (*electrafi.Client, error) {
	store, err := newCacheStore(cfg)
	if err != nil {
		return nil, err
	}
	return electrafi.New(cfg.API, store), nil
}

// newSink assembles the configured metrics sinks. The Prometheus endpoint,
// when enabled, serves for the lifetime of ctx.
func newSink(ctx context.Context, cfg *config.Config) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+cfg.Metrics.PrometheusPort); err != nil {
				logger.New("metrics").Errorf("prom server: %v", err)
			}
		}()
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}
