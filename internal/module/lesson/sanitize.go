package lesson

import (
	"regexp"
	"strings"
)

// fence matches ``` with an optional language tag, e.g. ```python.
var fence = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// SanitizeCode removes fenced-code delimiters the model may emit despite
// instructions and trims surrounding whitespace. It is idempotent.
func SanitizeCode(code string) string {
	return strings.TrimSpace(fence.ReplaceAllString(code, ""))
}
