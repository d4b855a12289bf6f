// Package vehicle projects the live vehicle-data feed into typed views and
// builds validated vehicle commands.
package vehicle

import (
	"math"

	"chargestat/core/charging"
)

// Data is the raw decoded feed payload.
type Data map[string]any

// BatteryStatus is the battery-related slice of the feed.
type BatteryStatus struct {
	BatteryLevel       *float64 `json:"battery_level"`
	UsableBatteryLevel *float64 `json:"usable_battery_level"`
	BatteryRangeMi     *float64 `json:"battery_range_mi"`
	BatteryRangeKm     *float64 `json:"battery_range_km"`
	EstBatteryRangeMi  *float64 `json:"est_battery_range_mi"`
	EstBatteryRangeKm  *float64 `json:"est_battery_range_km"`
	ChargeLimitSoc     *float64 `json:"charge_limit_soc"`
}

// ChargingStatus is the charging-related slice of the feed.
type ChargingStatus struct {
	ChargingState         string   `json:"charging_state"`
	ChargerPowerKW        *float64 `json:"charger_power_kw"`
	ChargerPhases         *float64 `json:"charger_phases"`
	ChargeCurrentRequestA *float64 `json:"charge_current_request_a"`
	TimeToFullChargeH     *float64 `json:"time_to_full_charge_h"`
	ScheduledChargingAt   string   `json:"scheduled_charging_start_time"`
}

// Location is the position slice of the feed.
type Location struct {
	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	SpeedKmh     *float64 `json:"speed_kmh"`
}

// ThermalStatus is the climate slice of the feed.
type ThermalStatus struct {
	InsideTempC        *float64 `json:"inside_temp_c"`
	OutsideTempC       *float64 `json:"outside_temp_c"`
	DriverTempSettingC *float64 `json:"driver_temp_setting_c"`
	SeatHeaterLeft     *float64 `json:"seat_heater_left"`
	SeatHeaterRight    *float64 `json:"seat_heater_right"`
	SteeringWheel      *float64 `json:"steering_wheel_heater"`
}

// Info is the identity slice of the feed.
type Info struct {
	DisplayName string   `json:"display_name"`
	VIN         string   `json:"vin"`
	State       string   `json:"state"`
	CarVersion  string   `json:"car_version"`
	OdometerMi  *float64 `json:"odometer_mi"`
	OdometerKm  *float64 `json:"odometer_km"`
	LastUpdate  string   `json:"last_update"`
}

// Summary bundles every view.
type Summary struct {
	Vehicle  Info           `json:"vehicle"`
	Battery  BatteryStatus  `json:"battery"`
	Charging ChargingStatus `json:"charging"`
	Location Location       `json:"location"`
	Thermal  ThermalStatus  `json:"thermal"`
}

func (d Data) Battery() BatteryStatus {
	rangeMi := d.float("battery_range")
	estMi := d.float("est_battery_range")
	return BatteryStatus{
		BatteryLevel:       d.float("battery_level"),
		UsableBatteryLevel: d.float("usable_battery_level"),
		BatteryRangeMi:     rangeMi,
		BatteryRangeKm:     miToKm(rangeMi),
		EstBatteryRangeMi:  estMi,
		EstBatteryRangeKm:  miToKm(estMi),
		ChargeLimitSoc:     d.float("charge_limit_soc"),
	}
}

func (d Data) Charging() ChargingStatus {
	return ChargingStatus{
		ChargingState:         d.str("charging_state"),
		ChargerPowerKW:        d.float("charger_power"),
		ChargerPhases:         d.float("charger_phases"),
		ChargeCurrentRequestA: d.float("charge_current_request"),
		TimeToFullChargeH:     d.float("time_to_full_charge"),
		ScheduledChargingAt:   d.str("scheduled_charging_start_time"),
	}
}

func (d Data) Location() Location {
	return Location{
		LocationName: d.str("location"),
		Latitude:     d.float("latitude"),
		Longitude:    d.float("longitude"),
		SpeedKmh:     d.float("speed"),
	}
}

func (d Data) Thermal() ThermalStatus {
	return ThermalStatus{
		InsideTempC:        d.float("inside_temp"),
		OutsideTempC:       d.float("outside_temp"),
		DriverTempSettingC: d.float("driver_temp_setting"),
		SeatHeaterLeft:     d.float("seat_heater_left"),
		SeatHeaterRight:    d.float("seat_heater_right"),
		SteeringWheel:      d.float("steering_wheel_heater"),
	}
}

func (d Data) Info() Info {
	odo := d.float("odometer")
	return Info{
		DisplayName: d.str("display_name"),
		VIN:         d.str("vin"),
		State:       d.str("state"),
		CarVersion:  d.str("car_version"),
		OdometerMi:  odo,
		OdometerKm:  miToKm(odo),
		LastUpdate:  d.str("Date"),
	}
}

func (d Data) Summary() Summary {
	return Summary{
		Vehicle:  d.Info(),
		Battery:  d.Battery(),
		Charging: d.Charging(),
		Location: d.Location(),
		Thermal:  d.Thermal(),
	}
}

// float returns a pointer to the field value, or nil when the field is
// absent, null or not a number. The feed is sparse depending on vehicle
// state, so absence is expected and never an error here.
func (d Data) float(key string) *float64 {
	if v, ok := d[key].(float64); ok {
		return &v
	}
	return nil
}

func (d Data) str(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func miToKm(mi *float64) *float64 {
	if mi == nil {
		return nil
	}
	km := math.Round(*mi*charging.MilesToKm*100) / 100
	return &km
}
