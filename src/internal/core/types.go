// FILE: logpane/src/internal/core/types.go
package core

import (
	"fmt"
	"strings"
)

// Level is a record severity. Lower values are more severe.
type Level uint8

const (
	LevelError Level = iota + 1
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Levels lists every level from most to least severe
var Levels = [...]Level{LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return fmt.Sprintf("LEVEL(%d)", uint8(l))
	}
}

// Valid reports whether l is one of the five known levels
func (l Level) Valid() bool {
	return l >= LevelError && l <= LevelTrace
}

// AtLeast reports whether l is as severe as, or more severe than, threshold
func (l Level) AtLeast(threshold Level) bool {
	return l.Valid() && l <= threshold
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name, case-insensitive, into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "err":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}

// LevelMask is the set of enabled levels
type LevelMask uint8

const AllLevels LevelMask = 1<<LevelError | 1<<LevelWarn | 1<<LevelInfo | 1<<LevelDebug | 1<<LevelTrace

// MaskOf builds a mask holding exactly the given levels
func MaskOf(levels ...Level) LevelMask {
	var m LevelMask
	for _, l := range levels {
		m = m.With(l)
	}
	return m
}

// ParseMask converts a list of level names into a mask
func ParseMask(names []string) (LevelMask, error) {
	var m LevelMask
	for _, name := range names {
		l, err := ParseLevel(name)
		if err != nil {
			return 0, err
		}
		m = m.With(l)
	}
	return m, nil
}

func (m LevelMask) Has(l Level) bool {
	return l.Valid() && m&(1<<l) != 0
}

func (m LevelMask) With(l Level) LevelMask {
	if !l.Valid() {
		return m
	}
	return m | 1<<l
}

func (m LevelMask) Without(l Level) LevelMask {
	return m &^ (1 << l)
}

func (m LevelMask) Toggle(l Level) LevelMask {
	if m.Has(l) {
		return m.Without(l)
	}
	return m.With(l)
}

// Names returns the lower-case names of enabled levels, most severe first
func (m LevelMask) Names() []string {
	names := make([]string, 0, len(Levels))
	for _, l := range Levels {
		if m.Has(l) {
			names = append(names, strings.ToLower(l.String()))
		}
	}
	return names
}
