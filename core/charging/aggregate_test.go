package charging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() DateWindow {
	return DateWindow{Start: "2025-01-01", End: "2025-01-31"}
}

func TestSummarizeHome_Scenario(t *testing.T) {
	raw := []RawSession{
		{"date": "2025-01-05", "homeChargeFlag": float64(1), "totalEnergyAdded": "10", "homeCost": "2.50", "odometer": "1000"},
		{"date": "2025-01-10", "homeChargeFlag": float64(0), "totalEnergyAdded": "20", "superCost": "5.00"},
	}
	sessions, err := NormalizeAll(raw)
	require.NoError(t, err)

	home := SummarizeHome(sessions, testWindow())
	assert.Equal(t, 1, home.TotalSessions)
	assert.Equal(t, 10.0, home.TotalKWh)
	assert.Equal(t, 2.5, home.TotalCost)
	assert.Equal(t, 0.25, home.AvgCostPerKWh)
	require.NotNil(t, home.FinalOdometerMi)
	assert.Equal(t, 1000.0, *home.FinalOdometerMi)
	require.NotNil(t, home.FinalOdometerKm)
	assert.Equal(t, 1609.3, *home.FinalOdometerKm)
	assert.Equal(t, "2025-01-05", home.LastChargeDate)

	all := SummarizeAll(sessions)
	assert.Equal(t, 2, all.TotalSessions)
	assert.Equal(t, 1, all.HomeSessions)
	assert.Equal(t, 1, all.AwaySessions)
	assert.Equal(t, 30.0, all.TotalKWhAll)
	assert.Equal(t, 7.5, all.CostAll)
}

func TestSummarizeHome_EmptyInputIsNotAnError(t *testing.T) {
	sum := SummarizeHome(nil, testWindow())
	assert.Equal(t, 0, sum.TotalSessions)
	assert.Zero(t, sum.TotalKWh)
	assert.Zero(t, sum.AvgCostPerKWh)
	assert.Nil(t, sum.FinalOdometerMi)
	assert.Nil(t, sum.FinalOdometerKm)
	assert.Equal(t, "2025-01-01", sum.DateFrom)
	assert.Equal(t, "2025-01-31", sum.DateTo)
}

func TestSummarizeHome_ZeroEnergyAvoidsDivisionByZero(t *testing.T) {
	sessions := []Session{{Date: "2025-01-02", IsHome: true, HomeCost: 3}}
	sum := SummarizeHome(sessions, testWindow())
	assert.Equal(t, 3.0, sum.TotalCost)
	assert.Zero(t, sum.AvgCostPerKWh)
}

func TestSummarizeHome_FinalOdometerByDateString(t *testing.T) {
	sessions := []Session{
		{Date: "2025-01-20", IsHome: true, OdometerMi: 5200, OdometerSet: true},
		{Date: "2025-01-05", IsHome: true, OdometerMi: 5000, OdometerSet: true},
		{Date: "2025-01-20", IsHome: true, OdometerMi: 5250, OdometerSet: true},
	}
	sum := SummarizeHome(sessions, testWindow())
	require.NotNil(t, sum.FinalOdometerMi)
	// Equal dates keep input order after the stable sort; the later
	// occurrence wins.
	assert.Equal(t, 5250.0, *sum.FinalOdometerMi)
}

func TestSummarizeHome_AbsentOdometerSurfacesNil(t *testing.T) {
	sessions := []Session{{Date: "2025-01-05", IsHome: true, EnergyAddedKWh: 12, HomeCost: 3}}
	sum := SummarizeHome(sessions, testWindow())
	assert.Nil(t, sum.FinalOdometerMi)
	assert.Nil(t, sum.FinalOdometerKm)
}

func TestPartitionIsExhaustiveAndExclusive(t *testing.T) {
	sessions := []Session{
		{Date: "a", IsHome: true},
		{Date: "b"},
		{Date: "c", IsHome: true},
		{Date: "d"},
		{Date: "e"},
	}
	all := SummarizeAll(sessions)
	assert.Equal(t, all.TotalSessions, all.HomeSessions+all.AwaySessions)

	home := SummarizeHome(sessions, testWindow())
	assert.Equal(t, home.TotalSessions, all.HomeSessions)
}

func TestSummarizeAll_SuperAndTravelCountedForHomeSessionsToo(t *testing.T) {
	sessions := []Session{
		{Date: "a", IsHome: true, HomeCost: 2, SuperCost: 1, TravelCost: 0.5},
		{Date: "b", SuperCost: 4},
	}
	all := SummarizeAll(sessions)
	assert.Equal(t, 5.0, all.CostSuper)
	assert.Equal(t, 0.5, all.CostTravel)
	assert.Equal(t, 2.0, all.CostHome)
	assert.Equal(t, 7.5, all.CostAll)
}

func TestSummarizeAll_Deterministic(t *testing.T) {
	sessions := []Session{
		{Date: "a", IsHome: true, EnergyAddedKWh: 7.777, HomeCost: 1.111},
		{Date: "b", EnergyAddedKWh: 2.222, SuperCost: 3.333},
	}
	assert.Equal(t, SummarizeAll(sessions), SummarizeAll(sessions))
}

func TestDetailList_PreservesOrderAndPicksApplicableCost(t *testing.T) {
	sessions := []Session{
		{Date: "2025-01-10", SuperCost: 5, TravelCost: 1, OdometerSet: true, OdometerMi: 1100.26},
		{Date: "2025-01-05", IsHome: true, HomeCost: 2.5, OdometerSet: true, OdometerMi: 1000},
	}
	details, err := DetailList(sessions, false)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "2025-01-10", details[0].Date)
	assert.Equal(t, 6.0, details[0].Cost)
	assert.Equal(t, 1100.3, details[0].OdometerMi)
	assert.Equal(t, 2.5, details[1].Cost)
	assert.True(t, details[1].IsHome)

	homeOnly, err := DetailList(sessions, true)
	require.NoError(t, err)
	require.Len(t, homeOnly, 1)
	assert.Equal(t, "2025-01-05", homeOnly[0].Date)
}

func TestDetailList_AbsentOdometerIsMalformed(t *testing.T) {
	_, err := DetailList([]Session{{Date: "2025-01-05", IsHome: true}}, false)
	assert.True(t, errors.Is(err, ErrMalformedRecord), "got %v", err)
}

func TestMonthlyAggregate(t *testing.T) {
	sessions := []Session{
		{Date: "2025-01-05", IsHome: true, EnergyAddedKWh: 10.04, HomeCost: 2.5, OdometerMi: 1000.4, OdometerSet: true},
		{Date: "2025-01-20", IsHome: true, EnergyAddedKWh: 5, HomeCost: 1.25, OdometerMi: 1200.6, OdometerSet: true},
		{Date: "2025-01-22", EnergyAddedKWh: 30, SuperCost: 11},
	}
	row, ok := MonthlyAggregate(sessions, "25-01")
	require.True(t, ok)
	assert.Equal(t, "25-01", row.Label)
	assert.Equal(t, 15.0, row.KWh)
	assert.Equal(t, 3.75, row.Cost)
	assert.Equal(t, 1201.0, row.Odometer)
	assert.Equal(t, 0.25, row.CostPerKWh)
	assert.Equal(t, 2, row.Sessions)

	_, ok = MonthlyAggregate([]Session{{Date: "x", EnergyAddedKWh: 9}}, "25-02")
	assert.False(t, ok, "away-only month produces no row")
}
