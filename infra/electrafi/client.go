// Package electrafi is the HTTP client for the remote vehicle service:
// charging history queries, the live data feed and command delivery. All
// decision logic lives in core; this package only moves bytes.
package electrafi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"chargestat/config"
	"chargestat/core/charging"
	"chargestat/core/vehicle"
	"chargestat/infra/cache"
	"chargestat/infra/logger"
)

// Client issues authenticated requests against the service endpoints.
type Client struct {
	httpc      *http.Client
	feedURL    string
	historyURL string
	token      string
	cache      cache.Store
	log        logger.Logger
}

// New creates a Client. A nil store disables response caching.
func New(cfg config.APIConfig, store cache.Store) *Client {
	if store == nil {
		store = cache.Nop{}
	}
	return &Client{
		httpc:      &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		feedURL:    cfg.FeedURL,
		historyURL: cfg.HistoryURL,
		token:      cfg.Token,
		cache:      store,
		log:        logger.New("electrafi-client"),
	}
}

// Charges fetches the charging history for one window.
func (c *Client) Charges(ctx context.Context, window charging.DateWindow) (charging.RawHistory, error) {
	params := url.Values{
		"command":  {"charges"},
		"dateFrom": {window.Start},
		"dateTo":   {window.End},
	}
	key := fmt.Sprintf("charges_%s_%s", window.Start, window.End)
	body, err := c.get(ctx, c.historyURL, params, key)
	if err != nil {
		return charging.RawHistory{}, err
	}
	var hist charging.RawHistory
	if err := json.Unmarshal(body, &hist); err != nil {
		return charging.RawHistory{}, fmt.Errorf("decode history response: %w", err)
	}
	return hist, nil
}

// VehicleData fetches the full live data feed.
func (c *Client) VehicleData(ctx context.Context) (vehicle.Data, error) {
	body, err := c.get(ctx, c.feedURL, url.Values{}, "vehicle_data")
	if err != nil {
		return nil, err
	}
	var data vehicle.Data
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	return data, nil
}

// Send delivers a validated command to the vehicle and returns the raw
// response. Sending may wake the vehicle and consume API credits; dry-run
// is the caller building the command and not calling Send.
func (c *Client) Send(ctx context.Context, cmd vehicle.Command) (map[string]any, error) {
	params := url.Values{"command": {cmd.Query}}
	body, err := c.get(ctx, c.feedURL, params, "command_"+cmd.Name)
	if err != nil {
		return nil, err
	}
	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode command response: %w", err)
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, base string, params url.Values, cacheKey string) ([]byte, error) {
	u := base
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", base, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %s", base, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if err := c.cache.Put(ctx, cacheKey, body); err != nil {
		c.log.Warnf("cache write %s: %v", cacheKey, err)
	}
	return body, nil
}
