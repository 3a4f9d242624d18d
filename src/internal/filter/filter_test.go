package filter

import (
	"errors"
	"testing"
	"time"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func rec(seq uint64, level core.Level, target, msg string) core.Record {
	return core.Record{Seq: seq, Time: time.Unix(1700000000, int64(seq)*int64(time.Millisecond)), Level: level, Target: target, Message: msg}
}

func sample() []core.Record {
	return []core.Record{
		rec(1, core.LevelInfo, "app", "starting up"),
		rec(2, core.LevelError, "app::db", "ERR connection refused"),
		rec(3, core.LevelWarn, "app::http", "slow request, ERR budget low"),
		rec(4, core.LevelDebug, "net", "err lowercase"),
		rec(5, core.LevelTrace, "", "trace without target"),
		rec(6, core.LevelError, "net", "ERRNO 111"),
	}
}

func seqs(records []core.Record) []uint64 {
	out := make([]uint64, len(records))
	for i, r := range records {
		out[i] = r.Seq
	}
	return out
}

func TestEngine_Apply(t *testing.T) {
	engine := NewEngine(newTestLogger())

	testCases := []struct {
		name     string
		cfg      func(*Config)
		expected []uint64
	}{
		{
			name:     "DefaultPassesAll",
			cfg:      func(c *Config) {},
			expected: []uint64{1, 2, 3, 4, 5, 6},
		},
		{
			name:     "LevelMaskErrorOnly",
			cfg:      func(c *Config) { c.Levels = core.MaskOf(core.LevelError) },
			expected: []uint64{2, 6},
		},
		{
			name:     "EmptyLevelMask",
			cfg:      func(c *Config) { c.Levels = 0 },
			expected: []uint64{},
		},
		{
			name:     "ModuleSubstring",
			cfg:      func(c *Config) { c.Module = "app" },
			expected: []uint64{1, 2, 3},
		},
		{
			name:     "ModuleExact",
			cfg:      func(c *Config) { c.Module = "app"; c.ModuleExact = true },
			expected: []uint64{1},
		},
		{
			name:     "ModuleCaseSensitiveByDefault",
			cfg:      func(c *Config) { c.Module = "APP" },
			expected: []uint64{},
		},
		{
			name:     "ModuleIgnoreCase",
			cfg:      func(c *Config) { c.Module = "APP::D"; c.ModuleIgnoreCase = true },
			expected: []uint64{2},
		},
		{
			name:     "PlainQueryCaseSensitive",
			cfg:      func(c *Config) { c.Query = "ERR"; c.CaseSensitive = true },
			expected: []uint64{2, 3, 6},
		},
		{
			name:     "PlainQueryIgnoreCase",
			cfg:      func(c *Config) { c.Query = "err" },
			expected: []uint64{2, 3, 4, 6},
		},
		{
			name:     "PlainQueryMetaCharsAreLiteral",
			cfg:      func(c *Config) { c.Query = "request, ERR" },
			expected: []uint64{3},
		},
		{
			name:     "RegexAnchored",
			cfg:      func(c *Config) { c.Query = "^ERR.*"; c.Regex = true; c.CaseSensitive = true },
			expected: []uint64{2, 6},
		},
		{
			name:     "RegexIgnoreCase",
			cfg:      func(c *Config) { c.Query = "^err"; c.Regex = true },
			expected: []uint64{2, 4, 6},
		},
		{
			name:     "QueryMatchesTarget",
			cfg:      func(c *Config) { c.Query = "http"; c.MatchTarget = true },
			expected: []uint64{3},
		},
		{
			name:     "QueryIgnoresTargetByDefault",
			cfg:      func(c *Config) { c.Query = "http" },
			expected: []uint64{},
		},
		{
			name: "CategoriesHideOne",
			cfg: func(c *Config) {
				c.Categories = map[string]bool{"net": false}
			},
			expected: []uint64{1, 2, 3, 5},
		},
		{
			name: "CategoriesHideUnlisted",
			cfg: func(c *Config) {
				c.Categories = map[string]bool{"net": true}
				c.HideUnlisted = true
			},
			expected: []uint64{4, 6},
		},
		{
			name: "Combined",
			cfg: func(c *Config) {
				c.Levels = core.MaskOf(core.LevelError, core.LevelWarn)
				c.Module = "app"
				c.Query = "ERR"
				c.CaseSensitive = true
			},
			expected: []uint64{2, 3},
		},
		{
			name:     "Expression",
			cfg:      func(c *Config) { c.Expression = `severity <= 2 && target.startsWith("app")` },
			expected: []uint64{2, 3},
		},
		{
			name:     "ExpressionOnMessage",
			cfg:      func(c *Config) { c.Expression = `message.contains("ERRNO") || seq == 1` },
			expected: []uint64{1, 6},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.cfg(&cfg)
			result := engine.Apply(sample(), cfg)
			require.NoError(t, result.Err)
			assert.Equal(t, tc.expected, seqs(result.Records))
		})
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	engine := NewEngine(newTestLogger())
	cfg := DefaultConfig()
	cfg.Query = "x"

	result := engine.Apply(nil, cfg)
	assert.NoError(t, result.Err)
	assert.Empty(t, result.Records)
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine(newTestLogger())
	cfg := DefaultConfig()
	cfg.Query = "e"
	cfg.Levels = core.MaskOf(core.LevelError, core.LevelDebug, core.LevelWarn)

	records := sample()
	first := engine.Apply(records, cfg)
	second := engine.Apply(records, cfg)
	assert.Equal(t, first, second)
	assert.Equal(t, sample(), records, "input left untouched")
}

func TestEngine_RegexToggle(t *testing.T) {
	engine := NewEngine(newTestLogger())
	records := []core.Record{
		rec(1, core.LevelInfo, "", "ERR at start"),
		rec(2, core.LevelInfo, "", "middle ERR"),
		rec(3, core.LevelInfo, "", "no match"),
	}

	cfg := DefaultConfig()
	cfg.CaseSensitive = true
	cfg.Query = "ERR"
	assert.Equal(t, []uint64{1, 2}, seqs(engine.Apply(records, cfg).Records))

	cfg.Regex = true
	cfg.Query = "^ERR.*"
	assert.Equal(t, []uint64{1}, seqs(engine.Apply(records, cfg).Records))

	// Same query string read literally after switching regex off
	cfg.Regex = false
	assert.Empty(t, engine.Apply(records, cfg).Records)

	cfg.Regex = true
	assert.Equal(t, []uint64{1}, seqs(engine.Apply(records, cfg).Records))
}

func TestEngine_RegexToggleDefaultIgnoresCase(t *testing.T) {
	engine := NewEngine(newTestLogger())
	records := []core.Record{
		rec(1, core.LevelInfo, "", "ERR x"),
		rec(2, core.LevelInfo, "", "errand"),
		rec(3, core.LevelInfo, "", "an ERR later"),
		rec(4, core.LevelInfo, "", "^err.* literal"),
	}

	cfg := DefaultConfig()
	require.False(t, cfg.CaseSensitive)

	cfg.Regex = true
	cfg.Query = "^ERR.*"
	assert.Equal(t, []uint64{1, 2}, seqs(engine.Apply(records, cfg).Records))

	// Plain mode reads the same string literally, still folding case
	cfg.Regex = false
	assert.Equal(t, []uint64{4}, seqs(engine.Apply(records, cfg).Records))

	cfg.CaseSensitive = true
	cfg.Regex = true
	assert.Equal(t, []uint64{1}, seqs(engine.Apply(records, cfg).Records))
}

func TestEngine_InvalidPattern(t *testing.T) {
	engine := NewEngine(newTestLogger())
	cfg := DefaultConfig()
	cfg.Query = "("
	cfg.Regex = true

	result := engine.Apply(sample(), cfg)
	assert.Empty(t, result.Records)
	require.Error(t, result.Err)
	assert.True(t, errors.Is(result.Err, ErrInvalidPattern))
	assert.Contains(t, result.Err.Error(), "'('")
	assert.Error(t, engine.Validate(cfg))

	// Same text as a plain query is fine
	cfg.Regex = false
	result = engine.Apply(sample(), cfg)
	assert.NoError(t, result.Err)
	assert.Empty(t, result.Records)

	// Recovers once the pattern is fixed; other predicates unaffected
	cfg.Regex = true
	cfg.Query = "(ERR)"
	cfg.CaseSensitive = true
	cfg.Levels = core.MaskOf(core.LevelError)
	result = engine.Apply(sample(), cfg)
	assert.NoError(t, result.Err)
	assert.Equal(t, []uint64{2, 6}, seqs(result.Records))

	assert.Equal(t, uint64(1), engine.GetStats()["compile_errors"])
}

func TestEngine_InvalidExpression(t *testing.T) {
	engine := NewEngine(newTestLogger())

	testCases := []struct {
		name string
		expr string
	}{
		{"Syntax", "level == "},
		{"UnknownVariable", "nope == 1"},
		{"NotBool", "seq + 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Expression = tc.expr
			result := engine.Apply(sample(), cfg)
			assert.Empty(t, result.Records)
			assert.ErrorIs(t, result.Err, ErrInvalidPattern)
		})
	}
}

func TestEngine_ApplyIntoReusesBuffer(t *testing.T) {
	engine := NewEngine(newTestLogger())
	buf := make([]core.Record, 0, 32)

	result := engine.ApplyInto(buf, sample(), DefaultConfig())
	assert.Len(t, result.Records, 6)
	assert.Equal(t, 32, cap(result.Records))
}
