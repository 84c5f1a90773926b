// Package util holds small helpers shared by tests across varsub.
package util

import (
	"strings"

	"github.com/adam-huganir/varsub/pkg/types"
)

// Dedent strips the leading whitespace of the first non-blank line from every line of s.
// A leading empty line is dropped so fixtures can start on the line after the backtick.
// Blank lines become empty; any other line without the prefix is an error.
func Dedent(s string) (string, error) {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	var prefix string
	for _, line := range lines {
		if trimmed := strings.TrimLeft(line, " \t"); trimmed != "" {
			prefix = line[:len(line)-len(trimmed)]
			break
		}
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			out = append(out, "")
		case strings.HasPrefix(line, prefix):
			out = append(out, strings.TrimPrefix(line, prefix))
		default:
			return "", &types.DedentError{Line: line, Prefix: prefix}
		}
	}
	return strings.Join(out, "\n"), nil
}

// MustDedent is Dedent that panics on error.
func MustDedent(s string) string {
	dedented, err := Dedent(s)
	if err != nil {
		panic(err)
	}
	return dedented
}
