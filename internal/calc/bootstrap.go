package calc

import _ "embed"

// bootstrapSource is the initial artifact written on first run.
//
//go:embed bootstrap.star
var bootstrapSource []byte

// Bootstrap returns the initial calculator program for a fresh state
// directory. Callers get a copy; the embedded source is never aliased.
func Bootstrap() []byte {
	out := make([]byte, len(bootstrapSource))
	copy(out, bootstrapSource)
	return out
}
