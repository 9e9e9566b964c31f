// Package ingest runs extracted content through normalization, size and
// memory gates, and bookkeeping before it reaches summarization.
package ingest

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLen is the ceiling, in characters, applied to extracted text before
// summarization.
const MaxTextLen = 16000

// MinTextLen is the minimum extracted length in characters worth summarizing.
const MinTextLen = 50

// Normalize collapses all whitespace runs to single spaces and trims the
// ends. Idempotent.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TruncateAtWordBoundary cuts text to at most max characters, dropping the
// trailing partial word so the cut lands on a space. A spaceless input is cut
// at the character limit itself, never mid-rune.
func TruncateAtWordBoundary(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	cut := string([]rune(text)[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		return cut[:i]
	}
	return cut
}
