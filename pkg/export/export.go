// Package export renders monthly report rows as text, JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"chargestat/core/charging"
)

// WriteJSON writes the rows to w in JSON format, the shape the web report
// page consumes.
func WriteJSON(w io.Writer, rows []charging.TrendRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteCSV writes the rows to w in CSV format.
func WriteCSV(w io.Writer, rows []charging.TrendRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "kwh", "cost", "odo", "cost_per_kwh", "yoy_percent"}); err != nil {
		return err
	}
	for _, r := range rows {
		yoy := ""
		if r.YoYPercent != nil {
			yoy = strconv.FormatFloat(*r.YoYPercent, 'f', 0, 64)
		}
		rec := []string{
			r.Label,
			strconv.FormatFloat(r.KWh, 'f', 1, 64),
			strconv.FormatFloat(r.Cost, 'f', 2, 64),
			strconv.FormatFloat(r.Odometer, 'f', 0, 64),
			strconv.FormatFloat(r.CostPerKWh, 'f', 2, 64),
			yoy,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes the fixed-width text table used by the CLI report.
func WriteTable(w io.Writer, rows []charging.TrendRow) error {
	if _, err := fmt.Fprintf(w, "%-8s %-8s %-10s %-8s %-8s %-8s\n", "date", "kWh", "cost", "ODO", "$/kWh", "Y/Y"); err != nil {
		return err
	}
	for _, r := range rows {
		yoy := ""
		if r.YoYPercent != nil {
			yoy = fmt.Sprintf("%+.0f%%", *r.YoYPercent)
		}
		_, err := fmt.Fprintf(w, "%-8s %-8.1f $%-9.2f %-8.0f $%-7.2f %-8s\n",
			r.Label, r.KWh, r.Cost, r.Odometer, r.CostPerKWh, yoy)
		if err != nil {
			return err
		}
	}
	return nil
}
