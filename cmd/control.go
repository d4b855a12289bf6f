package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"chargestat/core/vehicle"
	"chargestat/infra/logger"
)

var controlExecute bool

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Send commands to the vehicle (dry run unless --execute)",
}

func init() {
	controlCmd.PersistentFlags().BoolVar(&controlExecute, "execute", false,
		"actually send the command; without it the command is only built and shown")

	controlCmd.AddCommand(
		fixedCommand("hvac-start", "Start the climate system", vehicle.StartHVAC),
		fixedCommand("hvac-stop", "Stop the climate system", vehicle.StopHVAC),
		fixedCommand("charge-start", "Start charging", vehicle.StartCharging),
		fixedCommand("charge-stop", "Stop charging", vehicle.StopCharging),
		setTempCommand(),
		setChargeLimitCommand(),
		setChargeAmpsCommand(),
		setSeatHeaterCommand(),
	)
	rootCmd.AddCommand(controlCmd)
}

func fixedCommand(use, short string, build func() vehicle.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchCommand(cmd, build())
		},
	}
}

func setTempCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-temp <celsius>",
		Short: "Set cabin temperature (15-28°C)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			temp, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("temperature %q is not a number", args[0])
			}
			c, err := vehicle.SetTemperature(temp)
			if err != nil {
				return err
			}
			return dispatchCommand(cmd, c)
		},
	}
}

func setChargeLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-charge-limit <percent>",
		Short: "Set charge limit (50-100%)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("percent %q is not an integer", args[0])
			}
			c, err := vehicle.SetChargeLimit(pct)
			if err != nil {
				return err
			}
			return dispatchCommand(cmd, c)
		},
	}
}

func setChargeAmpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-charge-amps <amps>",
		Short: "Set charging current (5-32A)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amps, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amps %q is not an integer", args[0])
			}
			c, err := vehicle.SetChargeAmps(amps)
			if err != nil {
				return err
			}
			return dispatchCommand(cmd, c)
		},
	}
}

func setSeatHeaterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-seat-heater <seat> <level>",
		Short: "Set a seat heater (level 0-3)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("level %q is not an integer", args[1])
			}
			c, err := vehicle.SetSeatHeater(args[0], level)
			if err != nil {
				return err
			}
			return dispatchCommand(cmd, c)
		},
	}
}

// dispatchCommand implements the two-phase contract: the command is already
// built and validated; without --execute nothing is sent.
func dispatchCommand(cmd *cobra.Command, c vehicle.Command) error {
	if !controlExecute {
		fmt.Fprintf(cmd.OutOrStdout(), "[dry run] would send command: %s\n", c.Query)
		fmt.Fprintln(cmd.OutOrStdout(), "use --execute to send it; this may wake the vehicle and consume API credits")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	logger.New("control").Infof("sending command %s", c.Name)
	resp, err := client.Send(ctx, c)
	if err != nil {
		return fmt.Errorf("send command: %w", err)
	}
	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	return out.Encode(resp)
}
