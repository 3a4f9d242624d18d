// FILE: logpane/src/logpane/builder.go
package logpane

import (
	"fmt"
	"log/slog"
	"strings"

	"logpane/src/internal/capture"
	"logpane/src/internal/config"
	"logpane/src/internal/store"
	"logpane/src/internal/viewer"

	"github.com/lixenwraith/log"
)

// Builder collects capture options before the sink is created
type Builder struct {
	opts   *config.Options
	logger *log.Logger
}

// NewBuilder starts from the default options
func NewBuilder() *Builder {
	return &Builder{opts: config.Defaults()}
}

// FromOptions starts from a copy of a loaded configuration; builder calls
// do not modify opts
func FromOptions(opts *config.Options) *Builder {
	if opts == nil {
		return NewBuilder()
	}
	return &Builder{opts: cloneOptions(opts)}
}

// cloneOptions copies the fields a builder modifies or a capture keeps
func cloneOptions(opts *config.Options) *config.Options {
	c := *opts
	c.DeniedTargets = append([]string(nil), opts.DeniedTargets...)
	if opts.RateLimit != nil {
		rl := *opts.RateLimit
		c.RateLimit = &rl
	}
	if opts.Filter != nil {
		f := *opts.Filter
		c.Filter = &f
	}
	if opts.Viewer != nil {
		v := *opts.Viewer
		v.Levels = append([]string(nil), opts.Viewer.Levels...)
		c.Viewer = &v
	}
	return &c
}

// MaxRecords bounds the store; zero keeps every record
func (b *Builder) MaxRecords(n int) *Builder {
	b.opts.MaxRecords = n
	return b
}

// LevelThreshold drops records less severe than l at capture
func (b *Builder) LevelThreshold(l Level) *Builder {
	b.opts.LevelThreshold = strings.ToLower(l.String())
	return b
}

// ShowAllCategories sets whether targets are visible before being toggled
func (b *Builder) ShowAllCategories(show bool) *Builder {
	b.opts.ShowAllCategories = show
	return b
}

// DenyTarget drops records whose target equals one of targets
func (b *Builder) DenyTarget(targets ...string) *Builder {
	b.opts.DeniedTargets = append(b.opts.DeniedTargets, targets...)
	return b
}

// RateLimit caps accepted records per second; records over the limit are
// dropped and counted
func (b *Builder) RateLimit(perSecond float64, burst int) *Builder {
	b.opts.RateLimit = &config.RateLimitConfig{
		Rate:   perSecond,
		Burst:  burst,
		Policy: "drop",
	}
	return b
}

// Logger sets the logger receiving the engine's own diagnostics
func (b *Builder) Logger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

// Build creates a standalone capture without registering it. Hosts that
// already own the default logger can fan records out to its Handler.
func (b *Builder) Build() (*Capture, error) {
	if err := config.Validate(b.opts); err != nil {
		return nil, fmt.Errorf("invalid logpane options: %w", err)
	}

	logger := b.logger
	if logger == nil {
		logger = log.NewLogger()
	}

	st := store.New(b.opts.MaxRecords, logger)
	sink, err := capture.New(st, b.opts, logger)
	if err != nil {
		return nil, err
	}

	return &Capture{
		sink:   sink,
		opts:   b.opts,
		logger: logger,
	}, nil
}

// Init builds the capture and registers it as the process-wide sink. It
// fails with ErrAlreadyInitialized on a second call.
func (b *Builder) Init() error {
	c, err := b.Build()
	if err != nil {
		return err
	}

	// Held across registration so Current never lags the registered sink
	activeMu.Lock()
	defer activeMu.Unlock()
	if err := capture.Init(c.sink); err != nil {
		return err
	}
	active = c
	return nil
}

// Capture is a sink with its store and the options its viewers start from
type Capture struct {
	sink   *capture.Sink
	opts   *config.Options
	logger *log.Logger
}

// Handler returns a slog handler writing into the capture
func (c *Capture) Handler() slog.Handler {
	return capture.NewHandler(c.sink)
}

// Logger returns a slog logger whose records carry target
func (c *Capture) Logger(target string) *slog.Logger {
	return slog.New(capture.NewHandler(c.sink).WithTarget(target))
}

// Record captures one event directly
func (c *Capture) Record(level Level, target, message string) {
	c.sink.Record(level, target, message)
}

// NewViewer creates a viewer over the capture's store
func (c *Capture) NewViewer() (*Viewer, error) {
	v, err := viewer.New(c.sink.Store(), c.sink, c.opts, c.logger)
	if err != nil {
		return nil, err
	}
	v.SetStartTime(c.sink.StartTime())
	return v, nil
}

// Clear empties the store
func (c *Capture) Clear() {
	c.sink.Store().Clear()
}

// Records returns a copy of the stored records, oldest first
func (c *Capture) Records() []Record {
	return c.sink.Store().Snapshot().Records
}

// Stats reports sink, limiter and store counters
func (c *Capture) Stats() map[string]any {
	return c.sink.GetStats()
}

// Options returns the options the capture was built with
func (c *Capture) Options() *config.Options {
	return c.opts
}
