package charging

import (
	"errors"
	"testing"
)

func TestNormalize_StringAndNumberCoercion(t *testing.T) {
	raw := RawSession{
		"date":             "2025-01-05 08:12:00",
		"homeChargeFlag":   float64(1),
		"totalEnergyAdded": "10",
		"homeCost":         2.5,
		"odometer":         "1000",
		"locationName":     "Garage",
	}
	s, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !s.IsHome {
		t.Errorf("expected home session")
	}
	if s.EnergyAddedKWh != 10 || s.HomeCost != 2.5 {
		t.Errorf("unexpected numeric coercion: %+v", s)
	}
	if !s.OdometerSet || s.OdometerMi != 1000 {
		t.Errorf("odometer not coerced: %+v", s)
	}
}

func TestNormalize_MissingAndNullFieldsAreZero(t *testing.T) {
	s, err := Normalize(RawSession{"date": "2025-02-01", "superCost": nil})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if s.EnergyAddedKWh != 0 || s.SuperCost != 0 || s.TravelCost != 0 {
		t.Errorf("missing fields should coerce to zero: %+v", s)
	}
	if s.OdometerSet {
		t.Errorf("absent odometer must not be marked present")
	}
	if s.IsHome {
		t.Errorf("absent homeChargeFlag means away")
	}
}

func TestNormalize_HomeFlagExactEquality(t *testing.T) {
	cases := map[string]struct {
		flag any
		want bool
	}{
		"one":          {float64(1), true},
		"zero":         {float64(0), false},
		"two":          {float64(2), false},
		"truthyString": {"1", false},
		"bool":         {true, false},
		"absent":       {nil, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw := RawSession{"date": "2025-01-01"}
			if tc.flag != nil {
				raw["homeChargeFlag"] = tc.flag
			}
			s, err := Normalize(raw)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if s.IsHome != tc.want {
				t.Errorf("flag %v: IsHome = %v, want %v", tc.flag, s.IsHome, tc.want)
			}
		})
	}
}

func TestNormalize_NonNumericPresentFieldFails(t *testing.T) {
	_, err := Normalize(RawSession{"date": "2025-01-01", "totalEnergyAdded": "lots"})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	_, err = Normalize(RawSession{"date": "2025-01-01", "homeCost": []any{1}})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord for non-scalar, got %v", err)
	}
	// Informational fields get the same coercion rule as the billed ones.
	_, err = Normalize(RawSession{"date": "2025-01-01", "chargePercent": "n/a"})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord for junk percent, got %v", err)
	}
}

func TestNormalizeAll_ReportsRecordIndex(t *testing.T) {
	_, err := NormalizeAll([]RawSession{
		{"date": "2025-01-01"},
		{"date": "2025-01-02", "odometer": "n/a"},
	})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
