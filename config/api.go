package config

import "fmt"

// APIConfig holds the remote service endpoints and credentials. The token
// is usually supplied via the CHARGESTAT_API__TOKEN environment override so
// it stays out of the config file.
type APIConfig struct {
	Token          string `json:"token"`
	FeedURL        string `json:"feed_url"`
	HistoryURL     string `json:"history_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies the public endpoints and a conservative timeout; the
// vehicle may need to wake up before answering.
func (c *APIConfig) SetDefaults() {
	if c.FeedURL == "" {
		c.FeedURL = "https://www.electrafi.com/feed.php"
	}
	if c.HistoryURL == "" {
		c.HistoryURL = "https://www.electrafi.com/history.php"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("api token is required")
	}
	return nil
}
