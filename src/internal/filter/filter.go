// FILE: logpane/src/internal/filter/filter.go
package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
)

// ErrInvalidPattern marks a text query or expression that failed to compile
var ErrInvalidPattern = errors.New("invalid filter pattern")

// Result is the outcome of one filtering pass
type Result struct {
	// Records passing every predicate, in input order
	Records []core.Record
	// Err is non-nil when the query or expression is invalid; Records is
	// then empty
	Err error
}

// Engine evaluates a Config over a slice of records. Compiled patterns are
// cached and rebuilt only when the inputs that shape them change, so Apply
// is cheap to call every frame. Safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	text   *textMatcher
	expr   *exprMatcher
	logger *log.Logger

	// Statistics
	totalPasses    atomic.Uint64
	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
	compileErrors  atomic.Uint64
}

// NewEngine creates a filter engine
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewLogger()
	}
	return &Engine{logger: logger}
}

// Apply returns the records of in that pass every active predicate of cfg.
// The input slice is not modified.
func (e *Engine) Apply(in []core.Record, cfg Config) Result {
	return e.ApplyInto(nil, in, cfg)
}

// ApplyInto behaves like Apply, appending the matches to dst[:0] so a caller
// filtering every frame can reuse one buffer.
func (e *Engine) ApplyInto(dst []core.Record, in []core.Record, cfg Config) Result {
	e.totalPasses.Add(1)
	out := dst[:0]

	text, expr := e.compiled(cfg)
	if text.err != nil {
		return Result{Records: out, Err: text.err}
	}
	if expr.err != nil {
		return Result{Records: out, Err: expr.err}
	}

	module := newModuleMatcher(cfg)

	for i := range in {
		r := &in[i]
		if !cfg.Levels.Has(r.Level) {
			continue
		}
		if !cfg.CategoryVisible(r.Target) {
			continue
		}
		if !module.match(r.Target) {
			continue
		}
		if !text.match(r, cfg.MatchTarget) {
			continue
		}
		if !expr.match(r) {
			continue
		}
		out = append(out, *r)
	}

	e.totalProcessed.Add(uint64(len(in)))
	e.totalMatched.Add(uint64(len(out)))
	return Result{Records: out}
}

// Validate compiles the query and expression of cfg and reports the first
// error, letting a caller reject input before it becomes the active filter.
func (e *Engine) Validate(cfg Config) error {
	text, expr := e.compiled(cfg)
	if text.err != nil {
		return text.err
	}
	return expr.err
}

// compiled returns matchers for cfg, rebuilding a cached one only when its
// key changed
func (e *Engine) compiled(cfg Config) (*textMatcher, *exprMatcher) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tk := textKey{query: cfg.Query, regex: cfg.Regex, fold: !cfg.CaseSensitive}
	if e.text == nil || e.text.key != tk {
		e.text = newTextMatcher(tk)
		if e.text.err != nil {
			e.compileErrors.Add(1)
			e.logger.Debug("msg", "Filter query rejected",
				"component", "filter_engine",
				"query", cfg.Query,
				"regex", cfg.Regex,
				"error", e.text.err)
		}
	}

	ek := strings.TrimSpace(cfg.Expression)
	if e.expr == nil || e.expr.source != ek {
		e.expr = newExprMatcher(ek)
		if e.expr.err != nil {
			e.compileErrors.Add(1)
			e.logger.Debug("msg", "Filter expression rejected",
				"component", "filter_engine",
				"expression", ek,
				"error", e.expr.err)
		}
	}

	return e.text, e.expr
}

// GetStats returns filter statistics
func (e *Engine) GetStats() map[string]any {
	return map[string]any{
		"total_passes":    e.totalPasses.Load(),
		"total_processed": e.totalProcessed.Load(),
		"total_matched":   e.totalMatched.Load(),
		"compile_errors":  e.compileErrors.Load(),
	}
}

type textKey struct {
	query string
	regex bool
	fold  bool
}

// textMatcher tests the free-text query. Case-folded plain queries compile
// to a quoted regexp.
type textMatcher struct {
	key    textKey
	re     *regexp.Regexp
	needle string
	err    error
}

func newTextMatcher(key textKey) *textMatcher {
	m := &textMatcher{key: key}
	if key.query == "" {
		return m
	}

	pattern := key.query
	switch {
	case key.regex:
	case key.fold:
		pattern = regexp.QuoteMeta(key.query)
	default:
		m.needle = key.query
		return m
	}
	if key.fold {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		m.err = fmt.Errorf("%w '%s': %w", ErrInvalidPattern, key.query, err)
		return m
	}
	m.re = re
	return m
}

func (m *textMatcher) match(r *core.Record, withTarget bool) bool {
	switch {
	case m.re != nil:
		return m.re.MatchString(r.Message) || (withTarget && m.re.MatchString(r.Target))
	case m.needle != "":
		return strings.Contains(r.Message, m.needle) || (withTarget && strings.Contains(r.Target, m.needle))
	default:
		return true
	}
}

// moduleMatcher tests the target against the module filter
type moduleMatcher struct {
	module string
	exact  bool
	fold   bool
}

func newModuleMatcher(cfg Config) moduleMatcher {
	m := moduleMatcher{module: cfg.Module, exact: cfg.ModuleExact, fold: cfg.ModuleIgnoreCase}
	if m.fold {
		m.module = strings.ToLower(m.module)
	}
	return m
}

func (m moduleMatcher) match(target string) bool {
	if m.module == "" {
		return true
	}
	if m.exact {
		if m.fold {
			return strings.EqualFold(target, m.module)
		}
		return target == m.module
	}
	if m.fold {
		target = strings.ToLower(target)
	}
	return strings.Contains(target, m.module)
}
