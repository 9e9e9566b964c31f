package summarize

import (
	"context"
	"strings"
	"testing"

	"simplelearn/pkg/domain"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateText(_ context.Context, _, userPrompt string) (string, error) {
	s.prompt = userPrompt
	return s.response, s.err
}

const validResponse = "```json\n" +
	`{"title": "T", "points": [{"title": "P1", "key_points": ["A", "B"], "summary": "S1"}]}` +
	"\n```"

func TestSummarizeFormatsStructuredResponse(t *testing.T) {
	gen := &stubGenerator{response: validResponse}
	s := New(gen, nil)

	sum, err := s.Summarize(context.Background(), "some text", domain.StyleShort, "en")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Title != "T" {
		t.Fatalf("title = %q", sum.Title)
	}
	if len(sum.Points) != 1 || sum.Points[0].Title != "P1" {
		t.Fatalf("points = %+v", sum.Points)
	}
	for _, want := range []string{"*T*", "*1. P1*", "*A*, *B*", "_S1_"} {
		if !strings.Contains(sum.Formatted, want) {
			t.Fatalf("formatted missing %q:\n%s", want, sum.Formatted)
		}
	}
}

func TestSummarizeStyleAndLanguageInPrompt(t *testing.T) {
	gen := &stubGenerator{response: validResponse}
	s := New(gen, nil)

	if _, err := s.Summarize(context.Background(), "text", domain.StyleLong, "ru"); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.Contains(gen.prompt, "7-10 main points") {
		t.Fatalf("prompt missing long style guide:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "Russian") {
		t.Fatalf("prompt missing language:\n%s", gen.prompt)
	}
}

func TestSummarizeInvalidStyleDefaultsToMedium(t *testing.T) {
	gen := &stubGenerator{response: validResponse}
	s := New(gen, nil)

	if _, err := s.Summarize(context.Background(), "text", "weird", "en"); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.Contains(gen.prompt, "4-6 main points") {
		t.Fatalf("prompt should default to medium:\n%s", gen.prompt)
	}
}

func TestSummarizeFallsBackToRawText(t *testing.T) {
	gen := &stubGenerator{response: "```json\nnot actually json\n```"}
	s := New(gen, nil)

	sum, err := s.Summarize(context.Background(), "text", domain.StyleMedium, "en")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sum.Points) != 0 {
		t.Fatalf("expected no points, got %+v", sum.Points)
	}
	if sum.Formatted != "not actually json" {
		t.Fatalf("formatted = %q", sum.Formatted)
	}
}

func TestParseSummaryWithSurroundingProse(t *testing.T) {
	raw := "Here is your summary:\n" +
		`{"title": "X", "points": []}` +
		"\nHope that helps!"
	doc, ok := parseSummary(raw)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if doc.Title != "X" {
		t.Fatalf("title = %q", doc.Title)
	}
}

func TestFormatSummaryEmphasizesKeyPoints(t *testing.T) {
	doc := Document{
		Title: "T",
		Points: []domain.SummaryPoint{
			{Title: "P", KeyPoints: []string{"first", "second"}, Summary: "s"},
		},
	}
	out := FormatSummary(doc)
	if !strings.Contains(out, "*first*, *second*") {
		t.Fatalf("key points should be bold and comma-joined:\n%s", out)
	}
}

func TestFormatSummaryStripsMarkersFromItalic(t *testing.T) {
	doc := Document{
		Title: "Top",
		Points: []domain.SummaryPoint{
			{Title: "P", KeyPoints: []string{"k"}, Summary: "has *stars* and _underscores_"},
		},
	}
	out := FormatSummary(doc)
	if !strings.Contains(out, "_has stars and underscores_") {
		t.Fatalf("markers not stripped:\n%s", out)
	}
	if strings.Contains(out, "\n\n\n") {
		t.Fatalf("more than two consecutive newlines:\n%s", out)
	}
}
