package generate

import "strings"

// Sanitize strips markdown code fences and surrounding whitespace from
// a model response. Models sometimes wrap the program in ```starlark
// fences despite instructions; the candidate handed to the core must be
// the bare program text.
func Sanitize(response string) string {
	s := strings.TrimSpace(response)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line, including any language tag.
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}

	// Fences elsewhere in the body (nested examples) are removed too;
	// they are never valid Starlark.
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return s + "\n"
}
