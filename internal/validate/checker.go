package validate

import (
	"fmt"
	"strings"

	"go.starlark.net/syntax"
)

// fileOptions matches the dialect the calculator host executes:
// full Starlark with set literals, while loops, and top-level control.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Result is the outcome of a candidate check.
type Result struct {
	// OK is true if the candidate may become the live artifact.
	OK bool `json:"ok"`

	// Reason explains the rejection. Empty when OK.
	Reason string `json:"reason,omitempty"`
}

// Checker validates candidate artifacts. The zero policy (nil) performs
// the structural checks only.
type Checker struct {
	policy *Policy
}

// New creates a Checker with an optional policy. Pass nil for
// syntax-only validation.
func New(policy *Policy) *Checker {
	return &Checker{policy: policy}
}

// Check performs structural validation of a candidate.
//
// A candidate passes if it is non-empty, parses as a well-formed
// Starlark program, and satisfies the configured policy. The candidate
// is never executed.
func (c *Checker) Check(candidate []byte) Result {
	if len(strings.TrimSpace(string(candidate))) == 0 {
		return Result{Reason: "candidate is empty"}
	}

	if c.policy != nil && c.policy.MaxBytes > 0 && int64(len(candidate)) > c.policy.MaxBytes {
		return Result{Reason: fmt.Sprintf("candidate is %d bytes, limit is %d", len(candidate), c.policy.MaxBytes)}
	}

	file, err := fileOptions.Parse("candidate.star", candidate, 0)
	if err != nil {
		return Result{Reason: fmt.Sprintf("parse error: %v", err)}
	}

	if c.policy != nil {
		if reason := c.policy.check(file); reason != "" {
			return Result{Reason: reason}
		}
	}

	return Result{OK: true}
}
