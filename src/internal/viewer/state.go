// FILE: logpane/src/internal/viewer/state.go
package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"logpane/src/internal/config"
	"logpane/src/internal/core"
	"logpane/src/internal/filter"
	"logpane/src/internal/format"
	"logpane/src/internal/store"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
)

// ErrRegexDisabled is returned when enabling regex on a viewer built without it
var ErrRegexDisabled = errors.New("regex search is disabled for this viewer")

// Source is the record store a viewer reads from
type Source interface {
	SnapshotInto(dst []core.Record) store.Snapshot
	Clear()
}

// DropCounter reports records lost before reaching the store
type DropCounter interface {
	Dropped() uint64
}

// Category is one target with its visibility toggle
type Category struct {
	Name    string
	Enabled bool
}

// Frame is what one render pass draws. Slices are owned by the viewer and
// valid until the next call to Frame.
type Frame struct {
	Rows         []core.Record
	Categories   []Category
	MaxTargetLen int

	Total     int    // records in the store
	Matched   int    // records passing the filter
	Displayed int    // rows after the max-rows trim
	Dropped   uint64 // records lost at capture
	Evicted   uint64 // records evicted by capacity

	FilterErr error

	Levels        core.LevelMask
	Query         string
	Regex         bool
	AllowRegex    bool
	CaseSensitive bool
	Module        string
	Expression    string

	StickToBottom bool
	// Rows hidden below the visible window when not following the bottom
	Scroll int
}

// State is the per-window viewer state. It owns the filter configuration and
// presentation flags and turns a store snapshot into a Frame.
type State struct {
	id     string
	source Source
	drops  DropCounter
	engine *filter.Engine
	logger *log.Logger

	mu            sync.Mutex
	cfg           filter.Config
	allowRegex    bool
	stickToBottom bool
	scroll        int
	maxRows       int
	timeFormat    string
	rowFormat     string
	startTime     time.Time

	// Reused between frames
	snapBuf []core.Record
	rowsBuf []core.Record
	catBuf  []Category
}

// New creates a viewer over source. drops may be nil.
func New(source Source, drops DropCounter, opts *config.Options, logger *log.Logger) (*State, error) {
	if source == nil {
		return nil, fmt.Errorf("viewer requires a record source")
	}
	if opts == nil {
		opts = config.Defaults()
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	filterOpts := opts.Filter
	if filterOpts == nil {
		filterOpts = config.Defaults().Filter
	}
	viewerOpts := opts.Viewer
	if viewerOpts == nil {
		viewerOpts = config.Defaults().Viewer
	}

	levels, err := core.ParseMask(viewerOpts.Levels)
	if err != nil {
		return nil, fmt.Errorf("invalid viewer levels: %w", err)
	}
	if len(viewerOpts.Levels) == 0 {
		levels = core.AllLevels
	}

	v := &State{
		id:     uuid.NewString(),
		source: source,
		drops:  drops,
		engine: filter.NewEngine(logger),
		logger: logger,
		cfg: filter.Config{
			Levels:           levels,
			Regex:            filterOpts.RegexEnabled && filterOpts.AllowRegex,
			CaseSensitive:    filterOpts.CaseSensitive,
			ModuleIgnoreCase: filterOpts.ModuleIgnoreCase,
			MatchTarget:      filterOpts.MatchTarget,
			Categories:       make(map[string]bool),
			HideUnlisted:     !opts.ShowAllCategories,
		},
		allowRegex:    filterOpts.AllowRegex,
		stickToBottom: viewerOpts.StickToBottom,
		maxRows:       viewerOpts.MaxRows,
		timeFormat:    viewerOpts.TimeFormat,
		rowFormat:     viewerOpts.RowFormat,
		startTime:     time.Now(),
	}

	logger.Debug("msg", "Viewer created",
		"component", "viewer",
		"viewer_id", v.id,
		"levels", levels.Names())
	return v, nil
}

// ID identifies the viewer instance
func (v *State) ID() string {
	return v.id
}

// SetStartTime sets the reference point for relative timestamps
func (v *State) SetStartTime(t time.Time) {
	v.mu.Lock()
	v.startTime = t
	v.mu.Unlock()
}

// Frame snapshots the store, filters it and returns the rows to draw. The
// store lock is held only while copying.
func (v *State) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := v.source.SnapshotInto(v.snapBuf)
	v.snapBuf = snap.Records

	result := v.engine.ApplyInto(v.rowsBuf, snap.Records, v.cfg)
	v.rowsBuf = result.Records

	rows := result.Records
	if v.maxRows > 0 && len(rows) > v.maxRows {
		rows = rows[len(rows)-v.maxRows:]
	}

	if v.stickToBottom {
		v.scroll = 0
	}
	v.scroll = min(v.scroll, max(len(rows)-1, 0))

	v.catBuf = v.catBuf[:0]
	for _, name := range snap.Categories {
		v.catBuf = append(v.catBuf, Category{Name: name, Enabled: v.cfg.CategoryVisible(name)})
	}

	var dropped uint64
	if v.drops != nil {
		dropped = v.drops.Dropped()
	}

	return Frame{
		Rows:          rows,
		Categories:    v.catBuf,
		MaxTargetLen:  snap.MaxTargetLen,
		Total:         len(snap.Records),
		Matched:       len(result.Records),
		Displayed:     len(rows),
		Dropped:       dropped,
		Evicted:       snap.Evicted,
		FilterErr:     result.Err,
		Levels:        v.cfg.Levels,
		Query:         v.cfg.Query,
		Regex:         v.cfg.Regex,
		AllowRegex:    v.allowRegex,
		CaseSensitive: v.cfg.CaseSensitive,
		Module:        v.cfg.Module,
		Expression:    v.cfg.Expression,
		StickToBottom: v.stickToBottom,
		Scroll:        v.scroll,
	}
}

// Config returns a copy of the active filter configuration
func (v *State) Config() filter.Config {
	v.mu.Lock()
	defer v.mu.Unlock()

	cfg := v.cfg
	cfg.Categories = make(map[string]bool, len(v.cfg.Categories))
	for k, enabled := range v.cfg.Categories {
		cfg.Categories[k] = enabled
	}
	return cfg
}

// ToggleLevel flips the visibility of one level
func (v *State) ToggleLevel(l core.Level) {
	v.mu.Lock()
	v.cfg.Levels = v.cfg.Levels.Toggle(l)
	v.mu.Unlock()
}

// SetLevels replaces the level mask
func (v *State) SetLevels(m core.LevelMask) {
	v.mu.Lock()
	v.cfg.Levels = m
	v.mu.Unlock()
}

// SetQuery sets the free-text query. The returned error describes an invalid
// pattern; the query is applied regardless so the frame reports the error.
func (v *State) SetQuery(q string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg.Query = q
	return v.engine.Validate(v.cfg)
}

// SetRegex switches between plain and regex interpretation of the query
func (v *State) SetRegex(enabled bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if enabled && !v.allowRegex {
		return ErrRegexDisabled
	}
	v.cfg.Regex = enabled
	return v.engine.Validate(v.cfg)
}

// SetCaseSensitive sets case handling for the text query
func (v *State) SetCaseSensitive(sensitive bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg.CaseSensitive = sensitive
	return v.engine.Validate(v.cfg)
}

// SetModule sets the target filter; exact selects equality over substring
func (v *State) SetModule(module string, exact bool) {
	v.mu.Lock()
	v.cfg.Module = module
	v.cfg.ModuleExact = exact
	v.mu.Unlock()
}

// SetExpression sets the CEL expression predicate; empty disables it
func (v *State) SetExpression(expr string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg.Expression = expr
	return v.engine.Validate(v.cfg)
}

// ToggleCategory flips the visibility of one target
func (v *State) ToggleCategory(name string) {
	v.mu.Lock()
	v.cfg.Categories[name] = !v.cfg.CategoryVisible(name)
	v.mu.Unlock()
}

// SetCategory sets the visibility of one target
func (v *State) SetCategory(name string, enabled bool) {
	v.mu.Lock()
	v.cfg.Categories[name] = enabled
	v.mu.Unlock()
}

// SetMaxRows limits a frame to the newest n matches; zero removes the limit
func (v *State) SetMaxRows(n int) {
	v.mu.Lock()
	v.maxRows = max(n, 0)
	v.mu.Unlock()
}

// SetStickToBottom makes frames follow new rows
func (v *State) SetStickToBottom(stick bool) {
	v.mu.Lock()
	v.stickToBottom = stick
	if stick {
		v.scroll = 0
	}
	v.mu.Unlock()
}

// ScrollBy moves the window; positive deltas move towards older rows.
// Scrolling back to the bottom resumes following.
func (v *State) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scroll = max(v.scroll+delta, 0)
	v.stickToBottom = v.scroll == 0
}

// Clear empties the underlying store
func (v *State) Clear() {
	v.source.Clear()
	v.logger.Debug("msg", "Viewer cleared store",
		"component", "viewer",
		"viewer_id", v.id)
}

// TimeFormat returns the timestamp display mode and the reference point for
// relative timestamps
func (v *State) TimeFormat() (string, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timeFormat, v.startTime
}

// Formatter returns the row formatter selected for this viewer
func (v *State) Formatter() (format.Formatter, error) {
	v.mu.Lock()
	opts := format.Options{TimeFormat: v.timeFormat, StartTime: v.startTime}
	name := v.rowFormat
	v.mu.Unlock()

	return format.New(name, opts, v.logger)
}
