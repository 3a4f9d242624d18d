// FILE: logpane/src/internal/flow/limiter.go
package flow

import (
	"sync/atomic"

	"logpane/src/internal/config"
	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Limiter enforces a rate and size limit on records entering the store.
// A nil *Limiter allows everything.
type Limiter struct {
	limiter *rate.Limiter
	policy  config.RateLimitPolicy
	logger  *log.Logger

	// Statistics
	maxEntrySizeBytes  int64
	droppedBySizeCount atomic.Uint64
	droppedCount       atomic.Uint64
	overLimitCount     atomic.Uint64
}

// NewLimiter creates a limiter from configuration. It returns nil when
// neither a rate nor a size limit is configured.
func NewLimiter(cfg *config.RateLimitConfig, logger *log.Logger) *Limiter {
	if cfg == nil || (cfg.Rate <= 0 && cfg.MaxEntrySizeBytes <= 0) {
		return nil
	}
	if logger == nil {
		logger = log.NewLogger()
	}

	l := &Limiter{
		policy:            cfg.ParsePolicy(),
		logger:            logger,
		maxEntrySizeBytes: cfg.MaxEntrySizeBytes,
	}

	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(int(cfg.Rate), 1)
		}
		l.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}

	logger.Debug("msg", "Capture limiter created",
		"component", "capture_limiter",
		"rate", cfg.Rate,
		"burst", cfg.Burst,
		"policy", policyString(l.policy),
		"max_entry_size_bytes", cfg.MaxEntrySizeBytes)

	return l
}

// Allow reports whether the record may be stored. Never blocks.
func (l *Limiter) Allow(r core.Record) bool {
	if l == nil {
		return true
	}

	if l.maxEntrySizeBytes > 0 && r.Size() > l.maxEntrySizeBytes {
		l.droppedBySizeCount.Add(1)
		return false
	}

	if l.limiter == nil || l.limiter.Allow() {
		return true
	}

	l.overLimitCount.Add(1)
	if l.policy == config.PolicyPass {
		return true
	}
	l.droppedCount.Add(1)
	return false
}

// Dropped returns the number of records rejected so far
func (l *Limiter) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.droppedCount.Load() + l.droppedBySizeCount.Load()
}

// GetStats returns statistics for the limiter.
func (l *Limiter) GetStats() map[string]any {
	if l == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	stats := map[string]any{
		"enabled":               true,
		"dropped_total":         l.droppedCount.Load(),
		"dropped_by_size_total": l.droppedBySizeCount.Load(),
		"over_limit_total":      l.overLimitCount.Load(),
		"policy":                policyString(l.policy),
		"max_entry_size_bytes":  l.maxEntrySizeBytes,
	}

	if l.limiter != nil {
		stats["tokens"] = l.limiter.Tokens()
	}

	return stats
}

func policyString(p config.RateLimitPolicy) string {
	switch p {
	case config.PolicyDrop:
		return "drop"
	case config.PolicyPass:
		return "pass"
	default:
		return "unknown"
	}
}
