package harness

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// trimmedDiff returns a unified diff of expected vs actual with one line
// of context and without the file header lines.
func trimmedDiff(expected, actual string) []string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	if err != nil {
		return []string{"diff failed: " + err.Error()}
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// headLines truncates lines to at most n, marking the truncation.
func headLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return append(lines[:n:n], "\t...")
}
