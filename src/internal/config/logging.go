// FILE: logpane/src/internal/config/logging.go
package config

import "fmt"

// LogConfig configures the engine's own diagnostic logger. It is separate
// from the records being captured.
type LogConfig struct {
	// Output mode: "file", "stderr", "none"
	Output string `toml:"output"`

	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// File output settings (when Output is "file")
	File *LogFileConfig `toml:"file"`
}

type LogFileConfig struct {
	// Directory for log files
	Directory string `toml:"directory"`

	// Base name for log files
	Name string `toml:"name"`

	// Maximum size per log file in MB
	MaxSizeMB int64 `toml:"max_size_mb"`

	// Maximum total size of all logs in MB
	MaxTotalSizeMB int64 `toml:"max_total_size_mb"`
}

// DefaultLogConfig returns logging defaults. Diagnostics are off unless
// asked for since the terminal is owned by the viewer.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Output: "none",
		Level:  "info",
		File: &LogFileConfig{
			Directory:      "./log",
			Name:           "logpane",
			MaxSizeMB:      10,
			MaxTotalSizeMB: 50,
		},
	}
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stderr": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Output == "file" && cfg.File == nil {
		return fmt.Errorf("file output requires a [logging.file] section")
	}

	return nil
}
