package charging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithYearOverYear(t *testing.T) {
	rows := []MonthlyRow{
		{Label: "24-01", KWh: 100},
		{Label: "24-02", KWh: 80},
		{Label: "25-01", KWh: 150},
		{Label: "25-03", KWh: 60},
	}
	out := WithYearOverYear(rows)
	require.Len(t, out, 4)

	assert.Nil(t, out[0].YoYPercent, "24-01 has no prior year")
	assert.Nil(t, out[1].YoYPercent)

	require.NotNil(t, out[2].YoYPercent)
	assert.Equal(t, 50.0, *out[2].YoYPercent)

	assert.Nil(t, out[3].YoYPercent, "25-03 has no 24-03 entry")
}

func TestWithYearOverYear_ZeroPriorIsAbsentNotZero(t *testing.T) {
	rows := []MonthlyRow{
		{Label: "24-05", KWh: 0},
		{Label: "25-05", KWh: 40},
	}
	out := WithYearOverYear(rows)
	assert.Nil(t, out[1].YoYPercent)
}

func TestWithYearOverYear_NegativeChange(t *testing.T) {
	rows := []MonthlyRow{
		{Label: "24-06", KWh: 200},
		{Label: "25-06", KWh: 150},
	}
	out := WithYearOverYear(rows)
	require.NotNil(t, out[1].YoYPercent)
	assert.Equal(t, -25.0, *out[1].YoYPercent)
}

func TestTrend(t *testing.T) {
	rows := []MonthlyRow{
		{Label: "25-01", KWh: 100},
		{Label: "25-02", KWh: 110},
		{Label: "25-03", KWh: 120},
	}
	sum := Trend(rows)
	assert.Equal(t, 3, sum.Months)
	assert.Equal(t, 110.0, sum.MeanKWh)
	assert.Equal(t, 10.0, sum.SlopeKWh)

	assert.Zero(t, Trend(nil))
	single := Trend(rows[:1])
	assert.Equal(t, 100.0, single.MeanKWh)
	assert.Zero(t, single.SlopeKWh)
}
