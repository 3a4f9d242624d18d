// FILE: logpane/src/internal/format/format.go
package format

import (
	"fmt"
	"time"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for rendering a Record as bytes.
type Formatter interface {
	// Format takes a Record and returns the formatted row as a byte slice.
	Format(r core.Record) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// Options configures every formatter. Fields a formatter does not use are
// ignored.
type Options struct {
	// "relative", "clock" or "rfc3339"
	TimeFormat string
	// Reference point for relative timestamps
	StartTime time.Time
	// Text template; empty selects DefaultTemplate
	Template string
	// Indent JSON output
	Pretty bool
}

// New creates a new Formatter by name.
func New(name string, opts Options, logger *log.Logger) (Formatter, error) {
	if logger == nil {
		logger = log.NewLogger()
	}

	switch name {
	case "json":
		return NewJSONFormatter(opts, logger)
	case "text", "txt", "":
		return NewTextFormatter(opts, logger)
	case "raw":
		return NewRawFormatter(opts, logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

// FormatTime renders t according to mode
func FormatTime(t time.Time, mode string, start time.Time) string {
	switch mode {
	case "relative":
		d := t.Sub(start)
		if d < 0 {
			d = 0
		}
		return fmt.Sprintf("+%.3fs", d.Seconds())
	case "rfc3339":
		return t.Format("2006-01-02T15:04:05.000Z07:00")
	default:
		return t.Format("15:04:05.000")
	}
}
