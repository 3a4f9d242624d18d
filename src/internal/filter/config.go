// FILE: logpane/src/internal/filter/config.go
package filter

import (
	"logpane/src/internal/core"
)

// Config is the full set of predicates the engine evaluates. The zero value
// rejects every record because no level is enabled; use DefaultConfig.
type Config struct {
	// Levels shown
	Levels core.LevelMask

	// Module is matched against the record target. Substring match unless
	// ModuleExact is set. Case-sensitive unless ModuleIgnoreCase is set.
	Module           string
	ModuleExact      bool
	ModuleIgnoreCase bool

	// Query is matched against the message, and against the target as well
	// when MatchTarget is set. Plain substring unless Regex is set.
	Query         string
	Regex         bool
	CaseSensitive bool
	MatchTarget   bool

	// Expression is an optional CEL boolean expression over
	// level, severity, target, message, seq and ts_ms.
	Expression string

	// Categories maps targets to their visibility. Targets absent from the
	// map are shown unless HideUnlisted is set.
	Categories   map[string]bool
	HideUnlisted bool
}

// DefaultConfig enables every level and sets no other predicate
func DefaultConfig() Config {
	return Config{Levels: core.AllLevels}
}

// CategoryVisible reports whether records with the given target pass the
// category predicate
func (c *Config) CategoryVisible(target string) bool {
	if enabled, ok := c.Categories[target]; ok {
		return enabled
	}
	return !c.HideUnlisted
}
