package electrafi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chargestat/config"
	"chargestat/core/charging"
	"chargestat/core/vehicle"
)

type memStore struct {
	puts map[string][]byte
}

func (m *memStore) Put(_ context.Context, key string, payload []byte) error {
	if m.puts == nil {
		m.puts = map[string][]byte{}
	}
	m.puts[key] = payload
	return nil
}

func (m *memStore) Get(context.Context, string) ([]byte, error) {
	return nil, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *memStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := &memStore{}
	cfg := config.APIConfig{Token: "tok", FeedURL: srv.URL, HistoryURL: srv.URL, TimeoutSeconds: 5}
	return New(cfg, store), store
}

func TestCharges(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "charges", r.URL.Query().Get("command"))
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "2025-01-31", r.URL.Query().Get("dateTo"))
		_, _ = w.Write([]byte(`{"dateFrom":"2025-01-01","dateTo":"2025-01-31","count":1,
			"results":[{"date":"2025-01-05","homeChargeFlag":1,"totalEnergyAdded":"10"}]}`))
	})

	hist, err := client.Charges(context.Background(), charging.DateWindow{Start: "2025-01-01", End: "2025-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 1, hist.Count)
	require.Len(t, hist.Results, 1)

	sessions, err := charging.NormalizeAll(hist.Results)
	require.NoError(t, err)
	assert.True(t, sessions[0].IsHome)

	// Write-through cache saw the raw body.
	assert.Contains(t, store.puts, "charges_2025-01-01_2025-01-31")
}

func TestVehicleData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("command"))
		_, _ = w.Write([]byte(`{"battery_level":72,"display_name":"Lightning"}`))
	})
	data, err := client.VehicleData(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.Battery().BatteryLevel)
	assert.Equal(t, 72.0, *data.Battery().BatteryLevel)
}

func TestSendCommand(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "set_charge_limit&charge_limit_soc=80", r.URL.Query().Get("command"))
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})
	cmd, err := vehicle.SetChargeLimit(80)
	require.NoError(t, err)
	resp, err := client.Send(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp["result"])
}

func TestHTTPErrorsAreSurfaced(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	_, err := client.VehicleData(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestInvalidJSONIsSurfaced(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>sleepy vehicle</html>"))
	})
	_, err := client.Charges(context.Background(), charging.DateWindow{Start: "2025-01-01", End: "2025-01-31"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode history response")
}
