// FILE: logpane/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
)

// DefaultTemplate renders "<time> [LEVEL] target: message"
const DefaultTemplate = `{{FmtTime .Timestamp}} [{{.Level}}] {{if .Target}}{{.Target}}: {{end}}{{.Message}}`

// Produces human-readable rows using templates
type TextFormatter struct {
	opts     Options
	template *template.Template
	logger   *log.Logger
}

// Creates a new text formatter
func NewTextFormatter(opts Options, logger *log.Logger) (*TextFormatter, error) {
	f := &TextFormatter{
		opts:   opts,
		logger: logger,
	}
	if f.opts.Template == "" {
		f.opts.Template = DefaultTemplate
	}

	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return FormatTime(t, f.opts.TimeFormat, f.opts.StartTime)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("row").Funcs(funcMap).Parse(f.opts.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Formats the record using the template
func (f *TextFormatter) Format(r core.Record) ([]byte, error) {
	data := map[string]any{
		"Timestamp": r.Time,
		"Level":     r.Level.String(),
		"Target":    r.Target,
		"Message":   r.Message,
		"Seq":       r.Seq,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)

		fallback := fmt.Sprintf("%s [%s] %s: %s\n",
			FormatTime(r.Time, f.opts.TimeFormat, f.opts.StartTime),
			r.Level.String(),
			r.Target,
			r.Message)
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Returns the formatter name
func (f *TextFormatter) Name() string {
	return "text"
}
