// Package eval executes template expressions - conditional visibility and
// ${...} substitutions - against report parameters on an embedded JS runtime.
package eval

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Context carries the expression runtime for one report render. Not safe for
// concurrent use, which matches the synchronous pass model of the layout core.
type Context struct {
	vm  *goja.Runtime
	log *zap.Logger
}

// NewContext creates an evaluation context with every parameter installed as
// a global of the runtime.
func NewContext(params map[string]any, log *zap.Logger) (*Context, error) {
	c := &Context{vm: goja.New(), log: log}
	for name, value := range params {
		if err := c.vm.Set(name, value); err != nil {
			return nil, fmt.Errorf("unable to set parameter %q: %w", name, err)
		}
	}
	return c, nil
}

// SetParameter installs or replaces a single parameter, e.g. per data row or
// for page counters maintained by the driving loop.
func (c *Context) SetParameter(name string, value any) error {
	if err := c.vm.Set(name, value); err != nil {
		return fmt.Errorf("unable to set parameter %q: %w", name, err)
	}
	return nil
}

// Eval runs a single expression and returns its exported value.
func (c *Context) Eval(expr string) (any, error) {
	v, err := c.vm.RunString(expr)
	if err != nil {
		return nil, fmt.Errorf("expression %q failed: %w", expr, err)
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	return v.Export(), nil
}

// EvalBool evaluates a conditional expression. An empty expression is true -
// elements without a print condition are always printed.
func (c *Context) EvalBool(expr string) (bool, error) {
	if strings.TrimSpace(expr) == "" {
		return true, nil
	}
	v, err := c.vm.RunString(expr)
	if err != nil {
		return false, fmt.Errorf("condition %q failed: %w", expr, err)
	}
	return v.ToBoolean(), nil
}

// Substitute expands every ${expr} occurrence in s. Malformed placeholders
// (unterminated ${) are left as-is.
func (c *Context) Substitute(s string) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		expr := s[start+2 : start+end]
		v, err := c.Eval(expr)
		if err != nil {
			return "", err
		}
		b.WriteString(formatValue(v))
		s = s[start+end+1:]
	}
	return b.String(), nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// drop the trailing .0 goja produces for integral numbers
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
