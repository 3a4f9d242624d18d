// FILE: logpane/src/internal/capture/handler.go
package capture

import (
	"context"
	"log/slog"
	"strings"

	"logpane/src/internal/core"
)

// TargetKey is the attribute key read as the record target
const TargetKey = "target"

// LevelTrace is the slog level mapped to core.LevelTrace
const LevelTrace = slog.LevelDebug - 4

// Handler adapts a Sink to slog. Attributes are rendered into the message
// as key=value pairs at Handle time.
type Handler struct {
	sink   *Sink
	target string
	prefix string // rendered WithAttrs attributes
	group  string
}

// NewHandler returns a slog handler writing into sink
func NewHandler(sink *Sink) *Handler {
	return &Handler{sink: sink}
}

// WithTarget returns a handler tagging records with target
func (h *Handler) WithTarget(target string) *Handler {
	h2 := *h
	h2.target = target
	return &h2
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return FromSlogLevel(level).AtLeast(h.sink.threshold)
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	defer h.sink.recoverPanic()

	target := h.target
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == TargetKey && h.group == "" {
			target = a.Value.String()
			return true
		}
		appendAttr(&b, h.group, a)
		return true
	})

	h.sink.Record(FromSlogLevel(r.Level), target, b.String())
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		if a.Key == TargetKey && h.group == "" {
			h2.target = a.Value.String()
			continue
		}
		appendAttr(&b, h.group, a)
	}
	h2.prefix = b.String()
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group == "" {
		h2.group = name
	} else {
		h2.group = h.group + "." + name
	}
	return &h2
}

func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" {
		key = group + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	s := a.Value.String()
	if strings.ContainsAny(s, " \t\"=") {
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(s, `"`, `\"`))
		b.WriteByte('"')
	} else {
		b.WriteString(s)
	}
}

// FromSlogLevel maps a slog level onto the five record levels
func FromSlogLevel(l slog.Level) core.Level {
	switch {
	case l >= slog.LevelError:
		return core.LevelError
	case l >= slog.LevelWarn:
		return core.LevelWarn
	case l >= slog.LevelInfo:
		return core.LevelInfo
	case l >= slog.LevelDebug:
		return core.LevelDebug
	default:
		return core.LevelTrace
	}
}

// ToSlogLevel is the inverse of FromSlogLevel
func ToSlogLevel(l core.Level) slog.Level {
	switch l {
	case core.LevelError:
		return slog.LevelError
	case core.LevelWarn:
		return slog.LevelWarn
	case core.LevelInfo:
		return slog.LevelInfo
	case core.LevelDebug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
