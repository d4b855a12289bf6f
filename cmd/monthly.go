package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chargestat/core/report"
	"chargestat/infra/logger"
	"chargestat/infra/mqtt"
	"chargestat/pkg/export"
)

var (
	monthlyCount  int
	monthlyFormat string
	monthlyOut    string
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Trailing-months report with year-over-year comparison",
	RunE:  runMonthly,
}

func init() {
	monthlyCmd.Flags().IntVar(&monthlyCount, "months", 24, "number of trailing months")
	monthlyCmd.Flags().StringVar(&monthlyFormat, "format", "text", "output format: text, json or csv")
	monthlyCmd.Flags().StringVar(&monthlyOut, "output", "", "write to file instead of stdout (text appends)")
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if monthlyCount < 1 {
		return fmt.Errorf("--months must be at least 1")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	sink, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}

	log := logger.New("monthly")
	log.Infof("fetching %d months of charging data", monthlyCount)
	rep, err := report.New(client, log, sink).Monthly(ctx, time.Now(), monthlyCount)
	if err != nil {
		return err
	}
	for _, w := range rep.Warnings {
		log.Warnf("%s", w)
	}

	w, closeFn, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	switch monthlyFormat {
	case "text":
		err = export.WriteTable(w, rep.Rows)
	case "json":
		err = export.WriteJSON(w, rep.Rows)
	case "csv":
		err = export.WriteCSV(w, rep.Rows)
	default:
		return fmt.Errorf("unknown format %s", monthlyFormat)
	}
	if err != nil {
		return err
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			log.Errorf("mqtt publisher: %v", err)
			return nil
		}
		defer pub.Close()
		if err := pub.PublishLatest(rep.Rows); err != nil {
			log.Errorf("mqtt publish: %v", err)
		}
	}
	return nil
}

// outputWriter resolves --output. Text reports append so the history file
// accumulates runs, matching the long-standing report format.
func outputWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	if monthlyOut == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	flags := os.O_CREATE | os.O_WRONLY
	if monthlyFormat == "text" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(monthlyOut, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
