package config

import "fmt"

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	// Backend is one of "none", "fs" or "redis".
	Backend       string `json:"backend"`
	Dir           string `json:"dir"`
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	TTLSeconds    int    `json:"ttl_seconds"`
}

// SetDefaults applies sane defaults.
func (c *CacheConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "fs"
	}
	if c.Dir == "" {
		c.Dir = "api_cache"
	}
	if c.TTLSeconds == 0 {
		c.TTLSeconds = 86400
	}
}

// Validate checks the backend selection.
func (c CacheConfig) Validate() error {
	switch c.Backend {
	case "none", "fs":
		return nil
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis cache backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown cache backend %s", c.Backend)
	}
}
