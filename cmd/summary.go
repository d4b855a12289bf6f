package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chargestat/core/charging"
	"chargestat/infra/logger"
)

var (
	summaryFrom      string
	summaryTo        string
	summaryMonth     string
	summaryLastMonth bool
	summaryDetails   bool
	summaryHomeOnly  bool
	summaryAllStats  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize charging sessions for one date window",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "start date (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "end date (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "specific month (YYYY-MM)")
	summaryCmd.Flags().BoolVar(&summaryLastMonth, "last-month", false, "analyze the last complete month")
	summaryCmd.Flags().BoolVar(&summaryDetails, "details", false, "list individual sessions")
	summaryCmd.Flags().BoolVar(&summaryHomeOnly, "home-only", false, "restrict details to home sessions")
	summaryCmd.Flags().BoolVar(&summaryAllStats, "all-stats", false, "include the combined home/away breakdown")
	rootCmd.AddCommand(summaryCmd)
}

// summaryWindow resolves the requested window from the mutually exclusive
// date flags.
func summaryWindow() (charging.DateWindow, error) {
	switch {
	case summaryLastMonth:
		return charging.LastCompleteMonth(time.Now()), nil
	case summaryMonth != "":
		return charging.NamedMonth(summaryMonth)
	case summaryFrom != "" && summaryTo != "":
		return charging.ExplicitRange(summaryFrom, summaryTo)
	default:
		return charging.DateWindow{}, fmt.Errorf("specify a date range with --from/--to, --month or --last-month")
	}
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	window, err := summaryWindow()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	log := logger.New("summary")
	log.Infof("fetching charges %s to %s", window.Start, window.End)
	hist, err := client.Charges(ctx, window)
	if err != nil {
		return fmt.Errorf("fetch charges: %w", err)
	}
	sessions, err := charging.NormalizeAll(hist.Results)
	if err != nil {
		return err
	}

	// The service echoes its own window bounds; prefer them when present.
	if hist.DateFrom != "" {
		window = charging.DateWindow{Start: hist.DateFrom, End: hist.DateTo}
	}

	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")

	if summaryAllStats {
		if err := out.Encode(charging.SummarizeAll(sessions)); err != nil {
			return err
		}
	}
	if err := out.Encode(charging.SummarizeHome(sessions, window)); err != nil {
		return err
	}

	if summaryDetails {
		details, err := charging.DetailList(sessions, summaryHomeOnly)
		if err != nil {
			return err
		}
		if err := out.Encode(details); err != nil {
			return err
		}
	}
	return nil
}
