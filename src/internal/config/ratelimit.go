// FILE: logpane/src/internal/config/ratelimit.go
package config

import (
	"fmt"
	"strings"
)

// RateLimitPolicy defines the action to take when the capture rate is exceeded.
type RateLimitPolicy int

const (
	// PolicyPass keeps records over the limit and only counts them.
	PolicyPass RateLimitPolicy = iota
	// PolicyDrop drops records over the limit.
	PolicyDrop
)

// RateLimitConfig defines capture-side rate limiting.
type RateLimitConfig struct {
	// Rate is the number of records accepted per second. Default: 0 (disabled).
	Rate float64 `toml:"rate"`
	// Burst is the number of records accepted in a short burst. Defaults to the Rate.
	Burst int `toml:"burst"`
	// Policy defines the action to take when the limit is exceeded. "pass" or "drop".
	Policy string `toml:"policy"`
	// MaxEntrySizeBytes drops records whose target plus message exceed it. 0 = no limit.
	MaxEntrySizeBytes int64 `toml:"max_entry_size_bytes"`
}

// ParsePolicy maps a policy name to its value, defaulting to drop
func (c *RateLimitConfig) ParsePolicy() RateLimitPolicy {
	if strings.ToLower(c.Policy) == "pass" {
		return PolicyPass
	}
	return PolicyDrop
}

func validateRateLimit(cfg *RateLimitConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.Rate < 0 {
		return fmt.Errorf("rate limit rate cannot be negative")
	}

	if cfg.Burst < 0 {
		return fmt.Errorf("rate limit burst cannot be negative")
	}

	if cfg.MaxEntrySizeBytes < 0 {
		return fmt.Errorf("max entry size bytes cannot be negative")
	}

	switch strings.ToLower(cfg.Policy) {
	case "", "pass", "drop":
	default:
		return fmt.Errorf("invalid rate limit policy '%s' (must be 'pass' or 'drop')", cfg.Policy)
	}

	return nil
}
