package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\t\tc\n\nd", "a b c d"},
		{"trims ends", "  hello world  ", "hello world"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "  multiple   spaces\nand\nnewlines  "
	once := Normalize(in)
	twice := Normalize(once)
	if once != twice {
		t.Fatalf("normalize not idempotent: %q vs %q", once, twice)
	}
}

func TestTruncateAtWordBoundary(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 10))
	got := TruncateAtWordBoundary(text, 22)
	if got != "word word word word" {
		t.Fatalf("got %q", got)
	}

	if got := TruncateAtWordBoundary("short", 100); got != "short" {
		t.Fatalf("short input should be unchanged, got %q", got)
	}

	long := strings.TrimSpace(strings.Repeat("alpha beta ", 3000))
	cut := TruncateAtWordBoundary(long, MaxTextLen)
	if len(cut) > MaxTextLen {
		t.Fatalf("truncated text is %d bytes, want <= %d", len(cut), MaxTextLen)
	}
	if strings.HasSuffix(cut, " ") {
		t.Fatalf("cut should not end with a space")
	}
	// The cut must land on a word boundary: the original text at len(cut)
	// must be a space.
	if long[len(cut)] != ' ' {
		t.Fatalf("cut split a word: next byte is %q", long[len(cut)])
	}
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// Two bytes per rune, so byte-based counting would cut at half the limit.
	long := strings.TrimSpace(strings.Repeat("слово ", MaxTextLen/3))
	cut := TruncateAtWordBoundary(long, MaxTextLen)
	n := utf8.RuneCountInString(cut)
	if n > MaxTextLen {
		t.Fatalf("truncated text is %d runes, want <= %d", n, MaxTextLen)
	}
	if n < MaxTextLen-len("слово ") {
		t.Fatalf("truncated text is only %d runes, counting looks byte-based", n)
	}
	if !utf8.ValidString(cut) {
		t.Fatalf("cut split a rune")
	}
	if long[len(cut)] != ' ' {
		t.Fatalf("cut split a word")
	}
}

func TestTruncateSpacelessInput(t *testing.T) {
	long := strings.Repeat("ж", MaxTextLen+5)
	cut := TruncateAtWordBoundary(long, MaxTextLen)
	if utf8.RuneCountInString(cut) != MaxTextLen {
		t.Fatalf("spaceless input should cut at the limit, got %d runes", utf8.RuneCountInString(cut))
	}
	if !utf8.ValidString(cut) {
		t.Fatalf("cut split a rune")
	}
}
