// FILE: logpane/src/internal/filter/expr.go
package filter

import (
	"fmt"
	"strings"

	"logpane/src/internal/core"

	"github.com/google/cel-go/cel"
)

// exprMatcher wraps a compiled CEL program. With an empty source it matches
// every record.
type exprMatcher struct {
	source string
	prog   cel.Program
	err    error
}

func newExprMatcher(source string) *exprMatcher {
	m := &exprMatcher{source: source}
	if source == "" {
		return m
	}

	prog, err := compileExpr(source)
	if err != nil {
		m.err = fmt.Errorf("%w '%s': %w", ErrInvalidPattern, source, err)
		return m
	}
	m.prog = prog
	return m
}

func compileExpr(source string) (cel.Program, error) {
	env, err := cel.NewEnv(
		cel.Variable("level", cel.StringType),
		// 1 (error) through 5 (trace)
		cel.Variable("severity", cel.IntType),
		cel.Variable("target", cel.StringType),
		cel.Variable("message", cel.StringType),
		cel.Variable("seq", cel.IntType),
		cel.Variable("ts_ms", cel.IntType),
	)
	if err != nil {
		return nil, err
	}
	ast, iss := env.Compile(source)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression must evaluate to bool, got %s", ast.OutputType())
	}
	return env.Program(ast)
}

func (m *exprMatcher) match(r *core.Record) bool {
	if m.prog == nil {
		return true
	}
	out, _, err := m.prog.Eval(map[string]any{
		"level":    strings.ToLower(r.Level.String()),
		"severity": int64(r.Level),
		"target":   r.Target,
		"message":  r.Message,
		"seq":      int64(r.Seq),
		"ts_ms":    r.Time.UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
