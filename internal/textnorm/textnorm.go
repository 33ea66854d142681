// Package textnorm prepares raw text for chunking: whitespace collapsing
// and removal of transcript timestamp artifacts.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	timestampRe  = regexp.MustCompile(`\(\d{1,2}:\d{2}(:\d{2})?\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize joins the given parts with a single space, strips bracketed
// timestamps of the forms (MM:SS) and (H:MM:SS), collapses whitespace runs
// into single spaces and trims the result.
func Normalize(parts ...string) string {
	joined := strings.Join(parts, " ")
	joined = timestampRe.ReplaceAllString(joined, " ")
	joined = whitespaceRe.ReplaceAllString(joined, " ")

	return strings.TrimSpace(joined)
}
