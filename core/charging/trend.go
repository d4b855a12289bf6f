package charging

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MonthlyRow is the compact per-month aggregate fed to the trend report.
// Label is the two-digit-year month key ("25-03").
type MonthlyRow struct {
	Label      string  `json:"date"`
	KWh        float64 `json:"kwh"`
	Cost       float64 `json:"cost"`
	Odometer   float64 `json:"odo"`
	CostPerKWh float64 `json:"cost_per_kwh"`
	Sessions   int     `json:"sessions"`
}

// TrendRow is a MonthlyRow annotated with the year-over-year change in
// energy. YoYPercent is nil when no comparable prior-year month exists or
// the prior month delivered zero energy; "no data" is not "0% change".
type TrendRow struct {
	MonthlyRow
	YoYPercent *float64 `json:"yoy,omitempty"`
}

// TrendSummary describes the overall usage trend across the row sequence.
// SlopeKWh is the least-squares change in monthly energy per month.
type TrendSummary struct {
	Months   int     `json:"months"`
	MeanKWh  float64 `json:"mean_kwh"`
	SlopeKWh float64 `json:"slope_kwh_per_month"`
}

// WithYearOverYear annotates each monthly row with the percentage change
// against the row labeled one year earlier. Rows are looked up by label, so
// months missing from the input (failed fetches, no home charges) simply
// yield no comparison.
func WithYearOverYear(rows []MonthlyRow) []TrendRow {
	byLabel := make(map[string]MonthlyRow, len(rows))
	for _, r := range rows {
		byLabel[r.Label] = r
	}
	out := make([]TrendRow, 0, len(rows))
	for _, r := range rows {
		tr := TrendRow{MonthlyRow: r}
		if prior, ok := byLabel[priorYearLabel(r.Label)]; ok && prior.KWh > 0 {
			pct := math.Round((r.KWh - prior.KWh) / prior.KWh * 100)
			tr.YoYPercent = &pct
		}
		out = append(out, tr)
	}
	return out
}

// Trend fits a linear model over the monthly energy sequence. Fewer than
// two rows cannot carry a slope and yield a zero summary beyond the mean.
func Trend(rows []MonthlyRow) TrendSummary {
	if len(rows) == 0 {
		return TrendSummary{}
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(i)
		ys[i] = r.KWh
	}
	sum := TrendSummary{
		Months:  len(rows),
		MeanKWh: round(stat.Mean(ys, nil), 1),
	}
	if len(rows) >= 2 {
		_, beta := stat.LinearRegression(xs, ys, nil, false)
		sum.SlopeKWh = round(beta, 2)
	}
	return sum
}

// priorYearLabel maps "YY-MM" to "(YY-1)-MM". Labels that do not match the
// format return an empty string, which never hits the lookup map.
func priorYearLabel(label string) string {
	var yy, mm int
	if _, err := fmt.Sscanf(label, "%2d-%2d", &yy, &mm); err != nil {
		return ""
	}
	return fmt.Sprintf("%02d-%02d", yy-1, mm)
}
