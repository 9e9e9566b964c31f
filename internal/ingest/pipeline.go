package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"simplelearn/internal/extract"
	"simplelearn/internal/resource"
	"simplelearn/internal/util"
	"simplelearn/pkg/domain"
	"simplelearn/pkg/events"
	"simplelearn/pkg/storage"
	"simplelearn/pkg/store"
)

const mib = int64(1) << 20

// Size ceilings applied before a file is downloaded. Premium users get
// double the base ceiling.
const (
	MaxVideoBytes    = 40 * mib
	MaxAudioBytes    = 20 * mib
	MaxDocumentBytes = 15 * mib

	PremiumSizeMultiplier = 2
)

// SizeCeiling returns the byte ceiling for a content type, or 0 when no
// ceiling applies.
func SizeCeiling(t domain.ContentType, premium bool) int64 {
	var base int64
	switch t {
	case domain.ContentVideo:
		base = MaxVideoBytes
	case domain.ContentAudio:
		base = MaxAudioBytes
	case domain.ContentDocument:
		base = MaxDocumentBytes
	default:
		return 0
	}
	if premium {
		base *= PremiumSizeMultiplier
	}
	return base
}

// ContentUnit is one piece of user content to process. File bytes are
// fetched lazily so the size gate runs before any download.
type ContentUnit struct {
	Type      domain.ContentType
	FileName  string
	SizeBytes int64
	URL       string
	Text      string
	Fetch     func(ctx context.Context) ([]byte, error)
}

// Outcome is the full result of processing one content unit: the classified
// extraction result, the audit record that was written, and the transcript
// archive key for audio/video content.
type Outcome struct {
	Result        extract.Result
	Record        domain.ProcessingRecord
	TranscriptKey string
}

// Pipeline runs content through gating, extraction, normalization, and
// bookkeeping.
type Pipeline struct {
	governor    *resource.Governor
	web         *extract.WebExtractor
	transcriber extract.Transcriber
	store       store.Store
	publisher   events.Publisher
	archive     storage.TranscriptArchive
	ffmpegPath  string
	logger      *slog.Logger
	now         func() time.Time
}

// Options carries the optional collaborators of a pipeline. Transcriber,
// Publisher, and Archive may be nil.
type Options struct {
	Transcriber extract.Transcriber
	Publisher   events.Publisher
	Archive     storage.TranscriptArchive
	FFmpegPath  string
}

// NewPipeline wires a pipeline. governor, web, and st are required.
func NewPipeline(governor *resource.Governor, web *extract.WebExtractor, st store.Store, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	pub := opts.Publisher
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Pipeline{
		governor:    governor,
		web:         web,
		transcriber: opts.Transcriber,
		store:       st,
		publisher:   pub,
		archive:     opts.Archive,
		ffmpegPath:  opts.FFmpegPath,
		logger:      logger,
		now:         time.Now,
	}
}

// Process runs one content unit end to end. It always writes a processing
// record and always releases every resource the attempt acquired.
func (p *Pipeline) Process(ctx context.Context, user domain.User, unit ContentUnit) Outcome {
	start := p.now()
	scope := p.governor.NewScope()
	defer scope.Close()

	res := p.run(ctx, user, unit, scope)
	if res.OK {
		text := Normalize(res.Text)
		if n := utf8.RuneCountInString(text); n < MinTextLen {
			res = extract.Failure(extract.KindTooShort, fmt.Sprintf("extracted only %d characters", n))
		} else {
			res.Text = TruncateAtWordBoundary(text, MaxTextLen)
		}
	}

	// Sub-second runs round up so rate math never divides by zero.
	elapsed := p.now().Sub(start).Seconds()
	if elapsed < 1 {
		elapsed = 1
	}
	rec := domain.ProcessingRecord{
		ID:          util.NewID(),
		UserID:      user.ID,
		ContentType: unit.Type,
		FileName:    unit.FileName,
		SizeKB:      float64(unit.SizeBytes) / 1024,
		Seconds:     elapsed,
		Success:     res.OK,
		ErrorKind:   res.Kind.String(),
		CreatedAt:   p.now().UTC(),
	}
	if err := p.store.RecordProcessing(rec); err != nil {
		p.logger.Error("record processing", "user", user.ID, "err", err)
	}
	p.publisher.PublishProcessing(ctx, events.ProcessingEvent{
		UserID:      rec.UserID,
		ContentType: string(rec.ContentType),
		Success:     rec.Success,
		Seconds:     rec.Seconds,
		SizeKB:      rec.SizeKB,
		ErrorKind:   rec.ErrorKind,
		At:          rec.CreatedAt,
	})

	out := Outcome{Result: res, Record: rec}
	if res.OK && p.archive != nil && (unit.Type == domain.ContentAudio || unit.Type == domain.ContentVideo) {
		key, err := p.archive.PutTranscript(ctx, user.ID, rec.ID, res.Text)
		if err != nil {
			p.logger.Warn("archive transcript", "user", user.ID, "err", err)
		} else {
			out.TranscriptKey = key
		}
	}
	return out
}

func (p *Pipeline) run(ctx context.Context, user domain.User, unit ContentUnit, scope *resource.Scope) extract.Result {
	if ceiling := SizeCeiling(unit.Type, user.PremiumActive(p.now())); ceiling > 0 && unit.SizeBytes > ceiling {
		return extract.Failure(extract.KindSizeExceeded,
			fmt.Sprintf("file is %.1f MB, limit is %d MB", float64(unit.SizeBytes)/float64(mib), ceiling/mib))
	}
	switch unit.Type {
	case domain.ContentText:
		return extract.Success(unit.Text)
	case domain.ContentWeb:
		return p.web.Extract(ctx, unit.URL)
	case domain.ContentDocument, domain.ContentAudio, domain.ContentVideo:
		// The memory gate only covers heavy work; text and web stay cheap.
		if p.governor.OverMemoryBudget() {
			return extract.Failure(extract.KindMemoryExceeded, "server is under memory pressure")
		}
		data, err := unit.Fetch(ctx)
		if err != nil {
			return extract.Failure(extract.KindRemoteService, fmt.Sprintf("download failed: %v", err))
		}
		switch unit.Type {
		case domain.ContentDocument:
			return extract.Document(data, unit.FileName)
		case domain.ContentAudio:
			return extract.Audio(ctx, data, scope, p.transcriber)
		default:
			return extract.Video(ctx, data, scope, p.transcriber, p.ffmpegPath)
		}
	default:
		return extract.Failure(extract.KindUnsupportedFormat, fmt.Sprintf("unknown content type %q", unit.Type))
	}
}
