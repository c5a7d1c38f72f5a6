// Package calc is the calculator host: it loads the live artifact as a
// Starlark program and evaluates user expressions in that program's
// environment.
//
// The artifact owns the calculator's behavior. It can define helper
// functions and constants (available inside expressions) and an optional
// format_result(value) hook that renders results. Replacing the artifact
// through the replacement core changes this behavior on the next load;
// the host never mutates a loaded program in place.
package calc

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions is the dialect the artifact is executed in. Must stay in
// sync with the validator's parse options.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// formatHook is the optional artifact function used to render results.
const formatHook = "format_result"

// Calculator evaluates expressions against a loaded artifact.
type Calculator struct {
	name    string
	globals starlark.StringDict
}

// Load executes the artifact program and captures its globals.
// The artifact runs once at load; expressions never re-execute it.
func Load(name string, src []byte) (*Calculator, error) {
	thread := &starlark.Thread{Name: "calc: " + name}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, name, src, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return &Calculator{name: name, globals: globals}, nil
}

// Eval evaluates a single expression in the artifact's environment and
// returns the rendered result.
//
// Evaluation errors (bad syntax, unknown names, division by zero) are
// user errors, not core errors - the caller reports them and moves on.
func (c *Calculator) Eval(expr string) (string, error) {
	thread := &starlark.Thread{Name: "eval"}
	value, err := starlark.EvalOptions(fileOptions, thread, "<expr>", expr, c.globals)
	if err != nil {
		return "", fmt.Errorf("eval %q: %w", expr, err)
	}
	return c.render(thread, value)
}

// render applies the artifact's format_result hook when it defines one,
// falling back to the value's default rendering.
func (c *Calculator) render(thread *starlark.Thread, value starlark.Value) (string, error) {
	hook, ok := c.globals[formatHook]
	if !ok {
		return display(value), nil
	}
	callable, ok := hook.(starlark.Callable)
	if !ok {
		return display(value), nil
	}

	rendered, err := starlark.Call(thread, callable, starlark.Tuple{value}, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", formatHook, err)
	}
	return display(rendered), nil
}

// display renders a starlark value for the terminal: strings bare,
// everything else in expression form.
func display(v starlark.Value) string {
	if s, ok := starlark.AsString(v); ok {
		return s
	}
	return v.String()
}
