package ingest

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"simplelearn/internal/extract"
	"simplelearn/internal/resource"
	"simplelearn/pkg/domain"
	"simplelearn/pkg/store"
)

func newTestPipeline(t *testing.T, st store.Store, opts Options) (*Pipeline, *resource.Governor) {
	t.Helper()
	logger := slog.Default()
	governor := resource.NewGovernor(t.TempDir(), 0, logger)
	web := extract.NewWebExtractor(logger)
	return NewPipeline(governor, web, st, opts, logger), governor
}

func TestProcessTextSuccess(t *testing.T) {
	st := store.NewMemoryStore()
	p, _ := newTestPipeline(t, st, Options{})

	text := strings.Repeat("meaningful content ", 10)
	out := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type: domain.ContentText,
		Text: text,
	})
	if !out.Result.OK {
		t.Fatalf("expected success, got %v: %s", out.Result.Kind, out.Result.Message)
	}
	if strings.Contains(out.Result.Text, "  ") {
		t.Fatalf("text was not normalized: %q", out.Result.Text)
	}

	recs, err := st.ListProcessingByUser(7, 10)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if !recs[0].Success {
		t.Fatalf("record should be marked success")
	}
	if recs[0].Seconds < 1 {
		t.Fatalf("seconds should be at least 1, got %f", recs[0].Seconds)
	}
}

func TestProcessTooShort(t *testing.T) {
	st := store.NewMemoryStore()
	p, _ := newTestPipeline(t, st, Options{})

	out := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type: domain.ContentText,
		Text: "tiny",
	})
	if out.Result.OK {
		t.Fatalf("expected failure for short content")
	}
	if out.Result.Kind != extract.KindTooShort {
		t.Fatalf("expected too-short kind, got %v", out.Result.Kind)
	}

	recs, _ := st.ListProcessingByUser(7, 10)
	if len(recs) != 1 || recs[0].Success {
		t.Fatalf("expected one failed record, got %+v", recs)
	}
	if recs[0].ErrorKind != "too_short" {
		t.Fatalf("expected too_short error kind, got %q", recs[0].ErrorKind)
	}
}

func TestProcessSizeExceededSkipsDownload(t *testing.T) {
	st := store.NewMemoryStore()
	p, governor := newTestPipeline(t, st, Options{})

	fetched := false
	out := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type:      domain.ContentDocument,
		FileName:  "big.pdf",
		SizeBytes: MaxDocumentBytes + 1,
		Fetch: func(context.Context) ([]byte, error) {
			fetched = true
			return nil, nil
		},
	})
	if out.Result.Kind != extract.KindSizeExceeded {
		t.Fatalf("expected size-exceeded, got %v", out.Result.Kind)
	}
	if fetched {
		t.Fatalf("oversized file must not be downloaded")
	}
	if governor.TrackedFiles() != 0 {
		t.Fatalf("no temp files should remain, got %d", governor.TrackedFiles())
	}
}

func TestProcessSizeCeilingDoubledForPremium(t *testing.T) {
	st := store.NewMemoryStore()
	p, _ := newTestPipeline(t, st, Options{})

	user := domain.User{ID: 7, Premium: true}
	out := p.Process(context.Background(), user, ContentUnit{
		Type:      domain.ContentDocument,
		FileName:  "doc.txt",
		SizeBytes: MaxDocumentBytes + 1,
		Fetch: func(context.Context) ([]byte, error) {
			return []byte(strings.Repeat("premium sized document content ", 5)), nil
		},
	})
	if !out.Result.OK {
		t.Fatalf("premium user should pass the base ceiling, got %v: %s", out.Result.Kind, out.Result.Message)
	}
}

func TestProcessAudioWithoutTranscriber(t *testing.T) {
	st := store.NewMemoryStore()
	p, governor := newTestPipeline(t, st, Options{})

	out := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type:      domain.ContentAudio,
		FileName:  "note.mp3",
		SizeBytes: 1024,
		Fetch: func(context.Context) ([]byte, error) {
			return []byte{0x49, 0x44, 0x33}, nil
		},
	})
	if out.Result.Kind != extract.KindMissingCredential {
		t.Fatalf("expected missing-credential, got %v", out.Result.Kind)
	}
	if governor.TrackedFiles() != 0 {
		t.Fatalf("temp files must be released on failure, got %d", governor.TrackedFiles())
	}
}

func TestProcessMinLengthCountsRunes(t *testing.T) {
	st := store.NewMemoryStore()
	p, _ := newTestPipeline(t, st, Options{})

	// 60 runes of Cyrillic (120 bytes): over the floor in characters even
	// though a byte count would also pass; the short case is the probe.
	ok := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type: domain.ContentText,
		Text: strings.Repeat("ряд ", 15),
	})
	if !ok.Result.OK {
		t.Fatalf("60 characters should pass the floor, got %v: %s", ok.Result.Kind, ok.Result.Message)
	}

	// 30 runes but 60+ bytes: a byte count would wrongly accept this.
	short := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type: domain.ContentText,
		Text: strings.Repeat("яя ", 10),
	})
	if short.Result.Kind != extract.KindTooShort {
		t.Fatalf("30 characters should be too short, got %v", short.Result.Kind)
	}
}

func TestMemoryGateSkipsLightContent(t *testing.T) {
	st := store.NewMemoryStore()
	logger := slog.Default()
	governor := resource.NewGovernor(t.TempDir(), 1, logger)
	p := NewPipeline(governor, extract.NewWebExtractor(logger), st, Options{}, logger)

	if governor.MemoryUsageBytes() == 0 {
		t.Skip("process memory not measurable here")
	}

	out := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type: domain.ContentText,
		Text: strings.Repeat("light content passes under pressure ", 5),
	})
	if !out.Result.OK {
		t.Fatalf("text must not be memory-gated, got %v: %s", out.Result.Kind, out.Result.Message)
	}

	heavy := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{
		Type:      domain.ContentDocument,
		FileName:  "doc.txt",
		SizeBytes: 1024,
		Fetch: func(context.Context) ([]byte, error) {
			t.Fatal("heavy work must not download under memory pressure")
			return nil, nil
		},
	})
	if heavy.Result.Kind != extract.KindMemoryExceeded {
		t.Fatalf("expected memory-exceeded for document, got %v", heavy.Result.Kind)
	}
}

func TestProcessUnknownType(t *testing.T) {
	st := store.NewMemoryStore()
	p, _ := newTestPipeline(t, st, Options{})

	out := p.Process(context.Background(), domain.User{ID: 7}, ContentUnit{Type: "sticker"})
	if out.Result.Kind != extract.KindUnsupportedFormat {
		t.Fatalf("expected unsupported, got %v", out.Result.Kind)
	}
}

func TestSizeCeiling(t *testing.T) {
	cases := []struct {
		t       domain.ContentType
		premium bool
		want    int64
	}{
		{domain.ContentVideo, false, 40 << 20},
		{domain.ContentVideo, true, 80 << 20},
		{domain.ContentAudio, false, 20 << 20},
		{domain.ContentAudio, true, 40 << 20},
		{domain.ContentDocument, false, 15 << 20},
		{domain.ContentDocument, true, 30 << 20},
		{domain.ContentText, false, 0},
		{domain.ContentWeb, true, 0},
	}
	for _, tc := range cases {
		if got := SizeCeiling(tc.t, tc.premium); got != tc.want {
			t.Fatalf("SizeCeiling(%s, premium=%v) = %d, want %d", tc.t, tc.premium, got, tc.want)
		}
	}
}
