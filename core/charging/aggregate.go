package charging

import (
	"fmt"
	"math"
	"sort"
)

// MilesToKm is the fixed conversion factor used for all odometer and range
// figures.
const MilesToKm = 1.60934

// HomeSummary aggregates the home-charging subset of a query window.
// Odometer fields are nil when no home session carries an odometer reading.
type HomeSummary struct {
	TotalSessions   int      `json:"total_sessions"`
	TotalKWh        float64  `json:"total_kwh"`
	TotalCost       float64  `json:"total_cost"`
	AvgCostPerKWh   float64  `json:"avg_cost_per_kwh"`
	FinalOdometerMi *float64 `json:"final_odometer_mi"`
	FinalOdometerKm *float64 `json:"final_odometer_km"`
	LastChargeDate  string   `json:"last_charge_date,omitempty"`
	DateFrom        string   `json:"date_from"`
	DateTo          string   `json:"date_to"`
}

// AllSummary aggregates every session in a window, split by location class.
// Supercharging and travel costs are summed over all sessions regardless of
// the home flag: the service bills them whenever they occur.
type AllSummary struct {
	TotalSessions int     `json:"total_sessions"`
	HomeSessions  int     `json:"home_sessions"`
	AwaySessions  int     `json:"away_sessions"`
	TotalKWhAll   float64 `json:"total_kwh_all"`
	TotalKWhHome  float64 `json:"total_kwh_home"`
	TotalKWhAway  float64 `json:"total_kwh_away"`
	CostHome      float64 `json:"total_cost_home"`
	CostSuper     float64 `json:"total_cost_super"`
	CostTravel    float64 `json:"total_cost_travel"`
	CostAll       float64 `json:"total_cost_all"`
}

// SessionDetail is the per-session projection used by detail listings.
type SessionDetail struct {
	Date          string  `json:"date"`
	Location      string  `json:"location"`
	KWhAdded      float64 `json:"kwh_added"`
	Cost          float64 `json:"cost"`
	StartPercent  float64 `json:"start_percent"`
	ChargePercent float64 `json:"charge_percent"`
	DurationMin   float64 `json:"duration_min"`
	AvgPowerKW    float64 `json:"avg_power_kw"`
	OdometerMi    float64 `json:"odometer_mi"`
	IsHome        bool    `json:"is_home"`
}

// FilterHome returns the home-charging subset in input order.
func FilterHome(sessions []Session) []Session {
	var home []Session
	for _, s := range sessions {
		if s.IsHome {
			home = append(home, s)
		}
	}
	return home
}

// SummarizeHome reduces the home subset of sessions to a HomeSummary with
// the query window echoed. An empty subset yields a zero-valued summary,
// never an error. The final odometer comes from the home session with the
// greatest date string; ties keep the later input position.
func SummarizeHome(sessions []Session, window DateWindow) HomeSummary {
	home := FilterHome(sessions)
	sum := HomeSummary{DateFrom: window.Start, DateTo: window.End}
	if len(home) == 0 {
		return sum
	}

	var kwh, cost float64
	for _, s := range home {
		kwh += s.EnergyAddedKWh
		cost += s.HomeCost
	}

	sorted := make([]Session, len(home))
	copy(sorted, home)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	last := sorted[len(sorted)-1]

	sum.TotalSessions = len(home)
	sum.TotalKWh = round(kwh, 2)
	sum.TotalCost = round(cost, 2)
	if kwh > 0 {
		sum.AvgCostPerKWh = round(cost/kwh, 4)
	}
	sum.LastChargeDate = last.Date
	if last.OdometerSet && last.OdometerMi != 0 {
		mi := round(last.OdometerMi, 1)
		km := round(last.OdometerMi*MilesToKm, 1)
		sum.FinalOdometerMi = &mi
		sum.FinalOdometerKm = &km
	}
	return sum
}

// SummarizeAll reduces all sessions of a window into the combined
// home/away breakdown. The empty input yields the zero value.
func SummarizeAll(sessions []Session) AllSummary {
	var sum AllSummary
	for _, s := range sessions {
		sum.TotalSessions++
		sum.TotalKWhAll += s.EnergyAddedKWh
		sum.CostSuper += s.SuperCost
		sum.CostTravel += s.TravelCost
		if s.IsHome {
			sum.HomeSessions++
			sum.TotalKWhHome += s.EnergyAddedKWh
			sum.CostHome += s.HomeCost
		} else {
			sum.AwaySessions++
			sum.TotalKWhAway += s.EnergyAddedKWh
		}
	}
	sum.TotalKWhAll = round(sum.TotalKWhAll, 2)
	sum.TotalKWhHome = round(sum.TotalKWhHome, 2)
	sum.TotalKWhAway = round(sum.TotalKWhAway, 2)
	sum.CostHome = round(sum.CostHome, 2)
	sum.CostSuper = round(sum.CostSuper, 2)
	sum.CostTravel = round(sum.CostTravel, 2)
	sum.CostAll = round(sum.CostHome+sum.CostSuper+sum.CostTravel, 2)
	return sum
}

// DetailList projects sessions into detail rows, preserving input order.
// A session without an odometer reading cannot produce a detail row and
// fails with ErrMalformedRecord.
func DetailList(sessions []Session, homeOnly bool) ([]SessionDetail, error) {
	details := make([]SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		if homeOnly && !s.IsHome {
			continue
		}
		if !s.OdometerSet {
			return nil, fmt.Errorf("%w: session %s has no odometer reading", ErrMalformedRecord, s.Date)
		}
		details = append(details, SessionDetail{
			Date:          s.Date,
			Location:      s.LocationName,
			KWhAdded:      s.EnergyAddedKWh,
			Cost:          s.Cost(),
			StartPercent:  s.StartPercent,
			ChargePercent: s.ChargePercent,
			DurationMin:   s.DurationMin,
			AvgPowerKW:    s.AvgPowerKW,
			OdometerMi:    round(s.OdometerMi, 1),
			IsHome:        s.IsHome,
		})
	}
	return details, nil
}

// MonthlyAggregate reduces one month of sessions to the compact row used
// by the trend report. Months without home sessions produce no row, which
// is how failed or empty windows fall out of the year-over-year join.
func MonthlyAggregate(sessions []Session, label string) (MonthlyRow, bool) {
	home := FilterHome(sessions)
	if len(home) == 0 {
		return MonthlyRow{}, false
	}
	var kwh, cost float64
	for _, s := range home {
		kwh += s.EnergyAddedKWh
		cost += s.HomeCost
	}
	sorted := make([]Session, len(home))
	copy(sorted, home)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	row := MonthlyRow{
		Label:    label,
		KWh:      round(kwh, 1),
		Cost:     round(cost, 2),
		Odometer: round(sorted[len(sorted)-1].OdometerMi, 0),
		Sessions: len(home),
	}
	if kwh > 0 {
		row.CostPerKWh = round(cost/kwh, 2)
	}
	return row, true
}

func round(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}
