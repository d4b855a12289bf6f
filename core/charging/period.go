package charging

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateWindow is one inclusive [start, end] query period, both bounds as
// ISO dates.
type DateWindow struct {
	Start string `json:"date_from"`
	End   string `json:"date_to"`
}

// MonthWindow is a DateWindow covering exactly one calendar month, plus the
// two-digit-year label ("25-03") used to join months across years.
type MonthWindow struct {
	DateWindow
	Label string
	Year  int
	Month time.Month
}

// ExplicitRange validates a caller-supplied window. Both bounds must be
// ISO dates with start <= end.
func ExplicitRange(from, to string) (DateWindow, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: start %q: %v", ErrInvalidRange, from, err)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: end %q: %v", ErrInvalidRange, to, err)
	}
	if end.Before(start) {
		return DateWindow{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, from, to)
	}
	return DateWindow{Start: from, End: to}, nil
}

// NamedMonth expands "YYYY-MM" to the full calendar month.
func NamedMonth(month string) (DateWindow, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: month %q, want YYYY-MM", ErrInvalidRange, month)
	}
	return monthWindow(t.Year(), t.Month()).DateWindow, nil
}

// LastCompleteMonth returns the full calendar month immediately before the
// month containing today.
func LastCompleteMonth(today time.Time) DateWindow {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return monthWindow(prev.Year(), prev.Month()).DateWindow
}

// TrailingMonths returns n consecutive full-month windows, oldest first,
// ending with the month immediately before the month containing today.
func TrailingMonths(today time.Time, n int) []MonthWindow {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	windows := make([]MonthWindow, 0, n)
	for i := n; i >= 1; i-- {
		m := first.AddDate(0, -i, 0)
		windows = append(windows, monthWindow(m.Year(), m.Month()))
	}
	return windows
}

// monthWindow computes full-month bounds by calendar arithmetic: the last
// day is the first day of the following month minus one day, which handles
// 28/29/30/31-day months without a length table.
func monthWindow(year int, month time.Month) MonthWindow {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return MonthWindow{
		DateWindow: DateWindow{
			Start: first.Format(dateLayout),
			End:   last.Format(dateLayout),
		},
		Label: fmt.Sprintf("%02d-%02d", year%100, int(month)),
		Year:  year,
		Month: month,
	}
}
