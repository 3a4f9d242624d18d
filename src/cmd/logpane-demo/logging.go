// FILE: logpane/src/cmd/logpane-demo/logging.go
package main

import (
	"fmt"
	"strings"

	"logpane/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the diagnostic logger. Console output goes to
// stderr so it does not mix with the viewer.
func initializeLogger(cfg *config.Options) error {
	logger = log.NewLogger()

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs := []string{fmt.Sprintf("level=%d", levelValue)}

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		if f := cfg.Logging.File; f != nil {
			configArgs = append(configArgs,
				fmt.Sprintf("directory=%s", f.Directory),
				fmt.Sprintf("name=%s", f.Name),
				fmt.Sprintf("max_size_mb=%d", f.MaxSizeMB),
				fmt.Sprintf("max_total_size_mb=%d", f.MaxTotalSizeMB))
		}

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	return logger.InitWithDefaults(configArgs...)
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
