// Package extract turns user-supplied content (documents, audio, video, web
// pages) into plain text. Failures are classified so callers can pick the
// right user-facing message without string matching.
package extract

import (
	"path/filepath"
	"strings"
)

// Kind classifies why an extraction failed.
type Kind int

const (
	KindNone Kind = iota
	KindMissingCredential
	KindSizeExceeded
	KindMemoryExceeded
	KindUnsupportedFormat
	KindNoTextFound
	KindRemoteService
	KindRobotChallenge
	KindTooShort
)

var kindNames = map[Kind]string{
	KindNone:              "",
	KindMissingCredential: "missing_credential",
	KindSizeExceeded:      "size_exceeded",
	KindMemoryExceeded:    "memory_exceeded",
	KindUnsupportedFormat: "unsupported_format",
	KindNoTextFound:       "no_text_found",
	KindRemoteService:     "remote_service_error",
	KindRobotChallenge:    "robot_challenge",
	KindTooShort:          "too_short",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Result is the outcome of one extraction attempt. StatusCode is set only
// for remote-service failures that carried an HTTP status.
type Result struct {
	OK         bool
	Kind       Kind
	Message    string
	StatusCode int
	Text       string
}

// Success wraps extracted text.
func Success(text string) Result {
	return Result{OK: true, Text: text}
}

// Failure wraps a classified failure.
func Failure(kind Kind, msg string) Result {
	return Result{Kind: kind, Message: msg}
}

// Category is the broad media type of an incoming file, decided by extension.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryDocument
	CategoryAudio
	CategoryVideo
)

var extCategories = map[string]Category{
	".pdf":  CategoryDocument,
	".docx": CategoryDocument,
	".doc":  CategoryDocument,
	".txt":  CategoryDocument,
	".mp3":  CategoryAudio,
	".wav":  CategoryAudio,
	".ogg":  CategoryAudio,
	".oga":  CategoryAudio,
	".m4a":  CategoryAudio,
	".flac": CategoryAudio,
	".aac":  CategoryAudio,
	".mp4":  CategoryVideo,
	".avi":  CategoryVideo,
	".mov":  CategoryVideo,
	".mkv":  CategoryVideo,
	".webm": CategoryVideo,
	".wmv":  CategoryVideo,
}

// CategoryForName classifies a file name by its extension.
func CategoryForName(name string) Category {
	return extCategories[strings.ToLower(filepath.Ext(name))]
}
