// Package summarize asks the language model for a structured summary of
// extracted text and renders it as Telegram markdown.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"simplelearn/pkg/ai"
	"simplelearn/pkg/domain"
)

const systemPrompt = "You are an expert study assistant. You produce clear, accurate summaries of educational content and always answer with valid JSON only."

var styleGuides = map[domain.SummaryStyle]string{
	domain.StyleShort:  "2-3 main points",
	domain.StyleMedium: "4-6 main points",
	domain.StyleLong:   "7-10 main points",
}

// Summarizer turns extracted text into a structured summary.
type Summarizer struct {
	gen    ai.TextGenerator
	logger *slog.Logger
}

// New builds a summarizer on top of a text generator.
func New(gen ai.TextGenerator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{gen: gen, logger: logger}
}

// Summarize requests a summary in the given style and language. The returned
// summary always has Formatted set; Points is empty when the model response
// could not be parsed and the raw cleaned text was used instead.
func (s *Summarizer) Summarize(ctx context.Context, text string, style domain.SummaryStyle, lang string) (domain.Summary, error) {
	if !style.Valid() {
		style = domain.StyleMedium
	}
	raw, err := s.gen.GenerateText(ctx, systemPrompt, buildPrompt(text, style, lang))
	if err != nil {
		return domain.Summary{}, fmt.Errorf("generate summary: %w", err)
	}

	doc, ok := parseSummary(raw)
	if !ok {
		// Keep the answer usable even when the model ignored the JSON
		// contract.
		s.logger.Warn("summary response was not valid json, using raw text")
		cleaned := strings.TrimSpace(fencedJSONRe.ReplaceAllString(raw, ""))
		return domain.Summary{Formatted: cleaned}, nil
	}

	return domain.Summary{
		Title:     doc.Title,
		Points:    doc.Points,
		Formatted: FormatSummary(doc),
	}, nil
}

func buildPrompt(text string, style domain.SummaryStyle, lang string) string {
	langNames := map[string]string{
		"en": "English",
		"ru": "Russian",
		"uz": "Uzbek",
	}
	langName, ok := langNames[lang]
	if !ok {
		langName = "English"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize the following content in %s with %s.\n\n", langName, styleGuides[style])
	sb.WriteString("Respond ONLY with JSON in exactly this shape:\n")
	sb.WriteString(`{"title": "overall title", "points": [{"title": "point title", "key_points": ["key point"], "summary": "short paragraph"}]}`)
	sb.WriteString("\n\nContent:\n")
	sb.WriteString(text)
	return sb.String()
}

// Document is the JSON contract the model is prompted to produce.
type Document struct {
	Title  string                `json:"title"`
	Points []domain.SummaryPoint `json:"points"`
}

var (
	fencedJSONRe = regexp.MustCompile("```json|```")

	threeNewlinesRe = regexp.MustCompile(`\n{3,}`)
	starWordRe      = regexp.MustCompile(`(\w)\*(\w)`)
	starSpaceRe     = regexp.MustCompile(`(\w)\*(\s)`)
	underWordRe     = regexp.MustCompile(`(\w)_(\w)`)
	underSpaceRe    = regexp.MustCompile(`(\w)_(\s)`)
)

// parseSummary extracts the JSON document from a model response that may be
// wrapped in a code fence or surrounded by prose.
func parseSummary(raw string) (Document, bool) {
	candidate := strings.TrimSpace(fencedJSONRe.ReplaceAllString(raw, ""))
	if start := strings.IndexByte(candidate, '{'); start >= 0 {
		if end := strings.LastIndexByte(candidate, '}'); end > start {
			candidate = candidate[start : end+1]
		}
	}
	var doc Document
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return Document{}, false
	}
	if doc.Title == "" && len(doc.Points) == 0 {
		return Document{}, false
	}
	return doc, true
}

// FormatSummary renders a structured summary as Telegram markdown: bold
// title and point titles, bold comma-joined key points, italic point
// summaries.
func FormatSummary(doc Document) string {
	var sb strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&sb, "*%s*\n\n", doc.Title)
	}
	for i, point := range doc.Points {
		fmt.Fprintf(&sb, "*%d. %s*\n", i+1, point.Title)
		if len(point.KeyPoints) > 0 {
			bold := make([]string, 0, len(point.KeyPoints))
			for _, kp := range point.KeyPoints {
				bold = append(bold, "*"+kp+"*")
			}
			sb.WriteString(strings.Join(bold, ", ") + "\n")
		}
		// Stray markers inside the summary text would break the italic span.
		clean := strings.NewReplacer("*", "", "_", "").Replace(point.Summary)
		fmt.Fprintf(&sb, "_%s_\n\n", clean)
	}

	out := sb.String()
	out = threeNewlinesRe.ReplaceAllString(out, "\n\n")
	out = starWordRe.ReplaceAllString(out, "$1 *$2")
	out = starSpaceRe.ReplaceAllString(out, "$1* $2")
	out = underWordRe.ReplaceAllString(out, "$1 _$2")
	out = underSpaceRe.ReplaceAllString(out, "${1}_ $2")
	return strings.TrimSpace(out)
}
