// FILE: logpane/src/internal/config/validation.go
package config

import (
	"fmt"

	"logpane/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

// Validate checks the options for values the engine cannot use
func Validate(cfg *Options) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.MaxRecords < 0 {
		return fmt.Errorf("max_records cannot be negative: %d", cfg.MaxRecords)
	}

	if _, err := core.ParseLevel(cfg.LevelThreshold); err != nil {
		return fmt.Errorf("level_threshold: %w", err)
	}

	for i, target := range cfg.DeniedTargets {
		if err := lconfig.NonEmpty(target); err != nil {
			return fmt.Errorf("denied_targets[%d]: empty target", i)
		}
	}

	if err := validateRateLimit(cfg.RateLimit); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	if cfg.Viewer != nil {
		if err := validateViewer(cfg.Viewer); err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
	}

	if cfg.Filter != nil && cfg.Filter.RegexEnabled && !cfg.Filter.AllowRegex {
		return fmt.Errorf("filter: regex_enabled requires allow_regex")
	}

	if cfg.Logging != nil {
		if err := validateLogConfig(cfg.Logging); err != nil {
			return fmt.Errorf("logging config: %w", err)
		}
	}

	if cfg.Demo != nil {
		if cfg.Demo.Writers < 0 || cfg.Demo.RatePerWriter < 0 || cfg.Demo.InitialBurst < 0 || cfg.Demo.HeadlessSeconds < 0 {
			return fmt.Errorf("demo: counts and rates cannot be negative")
		}
	}

	return nil
}

func validateViewer(v *ViewerOptions) error {
	if _, err := core.ParseMask(v.Levels); err != nil {
		return err
	}

	switch v.TimeFormat {
	case "", "relative", "clock", "rfc3339":
	default:
		return fmt.Errorf("invalid time_format '%s' (must be 'relative', 'clock' or 'rfc3339')", v.TimeFormat)
	}

	switch v.RowFormat {
	case "", "text", "json", "raw":
	default:
		return fmt.Errorf("invalid row_format '%s' (must be 'text', 'json' or 'raw')", v.RowFormat)
	}

	if v.MaxRows < 0 {
		return fmt.Errorf("max_rows cannot be negative: %d", v.MaxRows)
	}

	return nil
}
