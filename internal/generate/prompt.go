package generate

import "fmt"

// systemInstruction frames every customization request. The model must
// return the entire updated program: the core replaces the whole
// artifact, it does not apply diffs.
const systemInstruction = "You maintain calc.star, the Starlark program that defines the " +
	"behavior of a self-modifying calculator called recalc. The user wants to add or " +
	"change features. Return the ENTIRE updated Starlark program, with no disclaimers " +
	"and no triple backticks. Provide only valid Starlark code."

// buildPrompt assembles the user message: the request plus the full
// current artifact so the model rewrites rather than invents.
func buildPrompt(request string, current []byte) string {
	return fmt.Sprintf(
		"User request:\n%s\n\nCurrent program:\n%s\n\nProvide ONLY the complete updated Starlark program:\n",
		request, current)
}
