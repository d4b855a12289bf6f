package charging

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RawSession is one session record as decoded from the history endpoint.
// Numeric fields arrive as JSON numbers or as strings depending on the
// upstream version, and any of them may be null or absent.
type RawSession map[string]any

// RawHistory is the decoded body of a charges query. DateFrom, DateTo and
// Count are echoed by the service, never recomputed here.
type RawHistory struct {
	DateFrom string       `json:"dateFrom"`
	DateTo   string       `json:"dateTo"`
	Count    int          `json:"count"`
	Results  []RawSession `json:"results"`
}

// Session is the canonical, immutable form of a charging session.
//
// Date is kept as the raw string and compared lexicographically. The
// upstream service emits fixed-width ISO-8601 timestamps, which makes
// string order equal to chronological order; parsing is deliberately
// avoided so malformed inputs keep a stable order.
type Session struct {
	Date           string
	LocationName   string
	IsHome         bool
	EnergyAddedKWh float64
	HomeCost       float64
	SuperCost      float64
	TravelCost     float64
	OdometerMi     float64
	OdometerSet    bool
	StartPercent   float64
	ChargePercent  float64
	DurationMin    float64
	AvgPowerKW     float64
}

// Cost returns the single applicable cost for the session: homeCost for
// home sessions, superCost+travelCost otherwise.
func (s Session) Cost() float64 {
	if s.IsHome {
		return s.HomeCost
	}
	return s.SuperCost + s.TravelCost
}

// Normalize converts a raw record into a canonical Session. Absent or null
// numeric fields coerce to 0; a present field that is neither a number nor
// a numeric string fails with ErrMalformedRecord. The home flag is true iff
// homeChargeFlag equals exactly 1. Any other value, type or absence means
// away.
func Normalize(raw RawSession) (Session, error) {
	s := Session{
		Date:         stringField(raw, "date"),
		LocationName: stringField(raw, "locationName"),
		IsHome:       homeFlag(raw["homeChargeFlag"]),
	}
	var err error
	if s.EnergyAddedKWh, _, err = floatField(raw, "totalEnergyAdded"); err != nil {
		return Session{}, err
	}
	if s.HomeCost, _, err = floatField(raw, "homeCost"); err != nil {
		return Session{}, err
	}
	if s.SuperCost, _, err = floatField(raw, "superCost"); err != nil {
		return Session{}, err
	}
	if s.TravelCost, _, err = floatField(raw, "travelCost"); err != nil {
		return Session{}, err
	}
	if s.OdometerMi, s.OdometerSet, err = floatField(raw, "odometer"); err != nil {
		return Session{}, err
	}
	if s.StartPercent, _, err = floatField(raw, "startPercent"); err != nil {
		return Session{}, err
	}
	if s.ChargePercent, _, err = floatField(raw, "chargePercent"); err != nil {
		return Session{}, err
	}
	if s.DurationMin, _, err = floatField(raw, "totalMinutes"); err != nil {
		return Session{}, err
	}
	if s.AvgPowerKW, _, err = floatField(raw, "avgChargerPower"); err != nil {
		return Session{}, err
	}
	return s, nil
}

// NormalizeAll normalizes every record in order, failing on the first
// malformed one.
func NormalizeAll(raw []RawSession) ([]Session, error) {
	sessions := make([]Session, 0, len(raw))
	for i, r := range raw {
		s, err := Normalize(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// homeFlag applies the exact-integer-one rule.
func homeFlag(v any) bool {
	switch t := v.(type) {
	case float64:
		return t == 1
	case int:
		return t == 1
	case json.Number:
		n, err := t.Int64()
		return err == nil && n == 1
	default:
		return false
	}
}

func stringField(raw RawSession, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// floatField coerces raw[key] to a float64. The second return reports
// whether the field was present and non-null, which the aggregator needs
// to tell an absent odometer from an explicit zero.
func floatField(raw RawSession, key string) (float64, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case float64:
		return t, true, nil
	case int:
		return float64(t), true, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("%w: field %q: %q is not numeric", ErrMalformedRecord, key, t.String())
		}
		return f, true, nil
	case string:
		if t == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: field %q: %q is not numeric", ErrMalformedRecord, key, t)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("%w: field %q has unexpected type %T", ErrMalformedRecord, key, v)
	}
}
