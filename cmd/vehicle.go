package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var vehicleCmd = &cobra.Command{
	Use:       "vehicle [view]",
	Short:     "Show live vehicle data",
	Long:      "Show live vehicle data. Views: data, battery, charging, location, thermal, info, summary.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"data", "battery", "charging", "location", "thermal", "info", "summary"},
	RunE:      runVehicle,
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
}

func runVehicle(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := "summary"
	if len(args) == 1 {
		view = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	data, err := client.VehicleData(ctx)
	if err != nil {
		return fmt.Errorf("fetch vehicle data: %w", err)
	}

	var result any
	switch view {
	case "data":
		result = data
	case "battery":
		result = data.Battery()
	case "charging":
		result = data.Charging()
	case "location":
		result = data.Location()
	case "thermal":
		result = data.Thermal()
	case "info":
		result = data.Info()
	case "summary":
		result = data.Summary()
	default:
		return fmt.Errorf("unknown view %s", view)
	}

	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	return out.Encode(result)
}
