package vehicle

import (
	"errors"
	"testing"
)

func TestSetTemperatureBounds(t *testing.T) {
	cmd, err := SetTemperature(21.5)
	if err != nil {
		t.Fatalf("set temperature: %v", err)
	}
	if cmd.Query != "set_temps&temp=21.5" {
		t.Errorf("unexpected query: %s", cmd.Query)
	}
	for _, bad := range []float64{14.9, 28.1, -5} {
		if _, err := SetTemperature(bad); !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("temperature %v should be rejected, got %v", bad, err)
		}
	}
}

func TestSetChargeLimitBounds(t *testing.T) {
	cmd, err := SetChargeLimit(80)
	if err != nil {
		t.Fatalf("set charge limit: %v", err)
	}
	if cmd.Query != "set_charge_limit&charge_limit_soc=80" {
		t.Errorf("unexpected query: %s", cmd.Query)
	}
	for _, bad := range []int{49, 101, 0} {
		if _, err := SetChargeLimit(bad); !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("limit %d should be rejected, got %v", bad, err)
		}
	}
}

func TestSetChargeAmpsBounds(t *testing.T) {
	if _, err := SetChargeAmps(16); err != nil {
		t.Fatalf("set amps: %v", err)
	}
	for _, bad := range []int{4, 33} {
		if _, err := SetChargeAmps(bad); !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("amps %d should be rejected, got %v", bad, err)
		}
	}
}

func TestSetSeatHeater(t *testing.T) {
	cmd, err := SetSeatHeater("rear_center", 2)
	if err != nil {
		t.Fatalf("seat heater: %v", err)
	}
	if cmd.Query != "seat_heater&heater=4&level=2" {
		t.Errorf("unexpected query: %s", cmd.Query)
	}
	if _, err := SetSeatHeater("trunk", 1); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("unknown seat should be rejected, got %v", err)
	}
	if _, err := SetSeatHeater("driver", 4); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("level 4 should be rejected, got %v", err)
	}
}

func TestFixedCommands(t *testing.T) {
	if StartHVAC().Query != "auto_conditioning_start" {
		t.Errorf("hvac start query")
	}
	if StopCharging().Query != "charge_stop" {
		t.Errorf("charge stop query")
	}
}
