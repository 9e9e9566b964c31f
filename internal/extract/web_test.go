package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsRobotChallenge(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Please Confirm That You Are Not A Robot to continue", true},
		{"complete the CAPTCHA below", true},
		{"verify you are human", true},
		{"an ordinary article about robots in manufacturing", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsRobotChallenge(tc.text); got != tc.want {
			t.Fatalf("IsRobotChallenge(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestPageTextStripsChromeAndPrefersMain(t *testing.T) {
	html := `<html><head><style>body{}</style></head><body>
		<nav>navigation links</nav>
		<header>site header</header>
		<main><p>The   actual article body with useful text.</p></main>
		<footer>copyright</footer>
		<script>var x = 1;</script>
	</body></html>`

	text, err := pageText(html)
	if err != nil {
		t.Fatalf("pageText: %v", err)
	}
	if text != "The actual article body with useful text." {
		t.Fatalf("got %q", text)
	}
}

func TestPageTextFallsBackToWholeDocument(t *testing.T) {
	html := `<html><body><p>no main element here</p><p>just paragraphs</p></body></html>`
	text, err := pageText(html)
	if err != nil {
		t.Fatalf("pageText: %v", err)
	}
	if !strings.Contains(text, "no main element here") || !strings.Contains(text, "just paragraphs") {
		t.Fatalf("got %q", text)
	}
}

type fakeStrategy struct {
	html string
	err  error
}

func (f *fakeStrategy) name() string { return "fake" }

func (f *fakeStrategy) fetch(context.Context, string) (string, error) {
	return f.html, f.err
}

func articleHTML(body string) string {
	return "<html><body><article><p>" + body + "</p></article></body></html>"
}

func TestExtractFallsThroughToLaterStrategy(t *testing.T) {
	long := strings.Repeat("real content sentence. ", 10)
	w := &WebExtractor{
		strategies: []webStrategy{
			&fakeStrategy{err: errors.New("browser crashed")},
			&fakeStrategy{html: articleHTML(long)},
		},
	}
	w.logger = discardLogger()

	res := w.Extract(context.Background(), "example.com/post")
	if !res.OK {
		t.Fatalf("expected success, got %v: %s", res.Kind, res.Message)
	}
	if !strings.Contains(res.Text, "real content sentence.") {
		t.Fatalf("got %q", res.Text)
	}
}

func TestExtractSurfacesRobotChallenge(t *testing.T) {
	w := &WebExtractor{
		strategies: []webStrategy{
			&fakeStrategy{html: articleHTML("please confirm that you are not a robot " + strings.Repeat("x", 200))},
		},
	}
	w.logger = discardLogger()

	res := w.Extract(context.Background(), "https://example.com")
	if res.OK || res.Kind != KindRobotChallenge {
		t.Fatalf("expected robot-challenge failure, got %+v", res)
	}
}

func TestExtractRejectsShortPages(t *testing.T) {
	w := &WebExtractor{
		strategies: []webStrategy{&fakeStrategy{html: articleHTML("tiny")}},
	}
	w.logger = discardLogger()

	res := w.Extract(context.Background(), "https://example.com")
	if res.OK {
		t.Fatalf("short page should not succeed")
	}
	if res.Kind != KindRemoteService {
		t.Fatalf("expected remote-service failure, got %v", res.Kind)
	}
}

func TestPlainGetStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "Mozilla") {
			t.Errorf("missing browser user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML("served over http")))
	}))
	defer srv.Close()

	s := &plainGetStrategy{client: &http.Client{Timeout: 5 * time.Second}}
	html, err := s.fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(html, "served over http") {
		t.Fatalf("got %q", html)
	}
}

func TestPlainGetStrategyStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := &plainGetStrategy{client: &http.Client{Timeout: 5 * time.Second}}
	_, err := s.fetch(context.Background(), srv.URL)
	var se *statusError
	if !errors.As(err, &se) {
		t.Fatalf("expected status error, got %v", err)
	}
	if se.code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", se.code)
	}
}
