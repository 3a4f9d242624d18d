// FILE: logpane/src/internal/viewer/export.go
package viewer

import (
	"fmt"
	"io"
	"strings"

	"logpane/src/internal/core"
	"logpane/src/internal/format"
)

// Export writes the rows of the current frame to w using the named
// formatter. JSON output is a single array.
func (v *State) Export(w io.Writer, formatName string) (int, error) {
	v.mu.Lock()
	opts := format.Options{TimeFormat: v.timeFormat, StartTime: v.startTime}
	v.mu.Unlock()

	f, err := format.New(formatName, opts, v.logger)
	if err != nil {
		return 0, err
	}

	// Copy the rows out, the frame buffers are reused by the next pass
	frame := v.Frame()
	rows := append([]core.Record(nil), frame.Rows...)

	if jf, ok := f.(*format.JSONFormatter); ok {
		out, err := jf.FormatBatch(rows)
		if err != nil {
			return 0, err
		}
		if _, err := w.Write(out); err != nil {
			return 0, fmt.Errorf("failed to write export: %w", err)
		}
		return len(rows), nil
	}

	for i, r := range rows {
		line, err := f.Format(r)
		if err != nil {
			return i, fmt.Errorf("failed to format row %d: %w", r.Seq, err)
		}
		if _, err := w.Write(line); err != nil {
			return i, fmt.Errorf("failed to write export: %w", err)
		}
	}

	v.logger.Debug("msg", "Viewer rows exported",
		"component", "viewer",
		"viewer_id", v.id,
		"format", f.Name(),
		"rows", len(rows))
	return len(rows), nil
}

// CopyRow renders one record with the viewer's row format, without the
// trailing newline
func (v *State) CopyRow(r core.Record) string {
	f, err := v.Formatter()
	if err != nil {
		return r.Message
	}
	out, err := f.Format(r)
	if err != nil {
		return r.Message
	}
	return strings.TrimRight(string(out), "\n")
}
