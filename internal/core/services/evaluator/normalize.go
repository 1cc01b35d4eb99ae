package evaluator

import "strings"

// Normalize converts CRLF to LF and trims surrounding whitespace. Inner whitespace is kept.
func Normalize(output string) string {
	return strings.TrimSpace(strings.ReplaceAll(output, "\r\n", "\n"))
}
