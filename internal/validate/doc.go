// Package validate gates candidate artifacts before they may become the
// live artifact.
//
// The core check is structural only: a candidate must be non-empty and
// must parse as a well-formed Starlark program. The candidate is never
// executed; execution-time correctness is outside the core's guarantee.
//
// On top of the syntactic core, an optional policy (declared in a CUE
// file, compiled at startup) layers host-level checks: required top-level
// defs, a size ceiling, and forbidden call names. This is where a host
// pins semantic expectations such as "the program must still define
// format_result" without the core executing anything.
//
// Policy: validation failure aborts a transition before any commit. The
// live artifact is left untouched; fail safe, not fail silent.
package validate
