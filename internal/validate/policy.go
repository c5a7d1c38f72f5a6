package validate

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"go.starlark.net/syntax"
)

// Policy declares host-level checks layered on the syntactic core.
//
// A policy is written as a CUE file, e.g.:
//
//	required_defs: ["format_result"]
//	max_bytes:     65536
//	forbidden_calls: ["load"]
//
// All fields are optional; an absent field disables that check.
type Policy struct {
	// RequiredDefs lists top-level def names the candidate must declare.
	RequiredDefs []string `json:"required_defs"`

	// MaxBytes caps the candidate size. Zero means no limit.
	MaxBytes int64 `json:"max_bytes"`

	// ForbiddenCalls lists function names the candidate may not call
	// anywhere in its body.
	ForbiddenCalls []string `json:"forbidden_calls"`
}

// LoadPolicy compiles a CUE policy file into a Policy.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile policy %s: %w", path, err)
	}

	p := &Policy{}
	if err := v.Decode(p); err != nil {
		return nil, fmt.Errorf("decode policy %s: %w", path, err)
	}
	return p, nil
}

// check evaluates the policy against a parsed candidate.
// Returns a rejection reason, or "" if the policy is satisfied.
func (p *Policy) check(file *syntax.File) string {
	if len(p.RequiredDefs) > 0 {
		defs := topLevelDefs(file)
		for _, name := range p.RequiredDefs {
			if _, ok := defs[name]; !ok {
				return fmt.Sprintf("missing required def %q", name)
			}
		}
	}

	if len(p.ForbiddenCalls) > 0 {
		if name := findForbiddenCall(file, p.ForbiddenCalls); name != "" {
			return fmt.Sprintf("forbidden call %q", name)
		}
	}

	return ""
}

// topLevelDefs collects the names of top-level def statements.
func topLevelDefs(file *syntax.File) map[string]struct{} {
	defs := make(map[string]struct{})
	for _, stmt := range file.Stmts {
		if def, ok := stmt.(*syntax.DefStmt); ok {
			defs[def.Name.Name] = struct{}{}
		}
	}
	return defs
}

// findForbiddenCall walks the whole tree looking for a call to any of
// the forbidden names. Returns the first offending name found.
func findForbiddenCall(file *syntax.File, forbidden []string) string {
	set := make(map[string]struct{}, len(forbidden))
	for _, name := range forbidden {
		set[strings.TrimSpace(name)] = struct{}{}
	}

	var found string
	syntax.Walk(file, func(n syntax.Node) bool {
		if found != "" {
			return false
		}
		call, ok := n.(*syntax.CallExpr)
		if !ok {
			return true
		}
		if ident, ok := call.Fn.(*syntax.Ident); ok {
			if _, bad := set[ident.Name]; bad {
				found = ident.Name
				return false
			}
		}
		return true
	})
	return found
}
