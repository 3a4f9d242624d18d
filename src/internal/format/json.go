// FILE: logpane/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces one JSON object per record.
type JSONFormatter struct {
	opts   Options
	logger *log.Logger
}

type jsonRow struct {
	Seq     uint64 `json:"seq"`
	Time    string `json:"time"`
	Level   string `json:"level"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts Options, logger *log.Logger) (*JSONFormatter, error) {
	return &JSONFormatter{
		opts:   opts,
		logger: logger,
	}, nil
}

func (f *JSONFormatter) row(r core.Record) jsonRow {
	return jsonRow{
		Seq:     r.Seq,
		Time:    r.Time.Format(time.RFC3339Nano),
		Level:   r.Level.String(),
		Target:  r.Target,
		Message: r.Message,
	}
}

// Format transforms a single Record into a JSON line.
func (f *JSONFormatter) Format(r core.Record) ([]byte, error) {
	var result []byte
	var err error
	if f.opts.Pretty {
		result, err = json.MarshalIndent(f.row(r), "", "  ")
	} else {
		result, err = json.Marshal(f.row(r))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatBatch renders records as a single JSON array.
func (f *JSONFormatter) FormatBatch(records []core.Record) ([]byte, error) {
	batch := make([]jsonRow, len(records))
	for i, r := range records {
		batch[i] = f.row(r)
	}

	var result []byte
	var err error
	if f.opts.Pretty {
		result, err = json.MarshalIndent(batch, "", "  ")
	} else {
		result, err = json.Marshal(batch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON batch: %w", err)
	}

	return append(result, '\n'), nil
}
