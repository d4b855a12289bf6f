package vehicle

import (
	"errors"
	"fmt"
)

// ErrInvalidCommand marks command parameters outside the accepted range.
var ErrInvalidCommand = errors.New("invalid command parameters")

// Command is a validated vehicle command ready to be executed by the
// transport. Building a Command performs no I/O: dry-run is building one
// and not executing it.
type Command struct {
	Name  string
	Query string
}

// StartHVAC starts the climate system.
func StartHVAC() Command {
	return Command{Name: "hvac-start", Query: "auto_conditioning_start"}
}

// StopHVAC stops the climate system.
func StopHVAC() Command {
	return Command{Name: "hvac-stop", Query: "auto_conditioning_stop"}
}

// SetTemperature sets the cabin temperature, accepted range 15–28 °C.
func SetTemperature(tempC float64) (Command, error) {
	if tempC < 15 || tempC > 28 {
		return Command{}, fmt.Errorf("%w: temperature %.1f outside 15-28°C", ErrInvalidCommand, tempC)
	}
	return Command{Name: "set-temp", Query: fmt.Sprintf("set_temps&temp=%g", tempC)}, nil
}

// StartCharging starts a charge.
func StartCharging() Command {
	return Command{Name: "charge-start", Query: "charge_start"}
}

// StopCharging stops a charge.
func StopCharging() Command {
	return Command{Name: "charge-stop", Query: "charge_stop"}
}

// SetChargeLimit sets the charge limit, accepted range 50–100 %.
func SetChargeLimit(percent int) (Command, error) {
	if percent < 50 || percent > 100 {
		return Command{}, fmt.Errorf("%w: charge limit %d outside 50-100%%", ErrInvalidCommand, percent)
	}
	return Command{Name: "set-charge-limit", Query: fmt.Sprintf("set_charge_limit&charge_limit_soc=%d", percent)}, nil
}

// SetChargeAmps sets the charging current, accepted range 5–32 A.
func SetChargeAmps(amps int) (Command, error) {
	if amps < 5 || amps > 32 {
		return Command{}, fmt.Errorf("%w: charging current %d outside 5-32A", ErrInvalidCommand, amps)
	}
	return Command{Name: "set-charge-amps", Query: fmt.Sprintf("set_charging_amps&charging_amps=%d", amps)}, nil
}

var seatHeaterIDs = map[string]int{
	"driver":      0,
	"passenger":   1,
	"rear_left":   2,
	"rear_center": 4,
	"rear_right":  5,
}

// SetSeatHeater sets a seat heater level 0–3 for a named seat position.
func SetSeatHeater(seat string, level int) (Command, error) {
	id, ok := seatHeaterIDs[seat]
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown seat position %q", ErrInvalidCommand, seat)
	}
	if level < 0 || level > 3 {
		return Command{}, fmt.Errorf("%w: heater level %d outside 0-3", ErrInvalidCommand, level)
	}
	return Command{Name: "set-seat-heater", Query: fmt.Sprintf("seat_heater&heater=%d&level=%d", id, level)}, nil
}
