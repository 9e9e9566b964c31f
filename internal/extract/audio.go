package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"simplelearn/internal/resource"
	"simplelearn/pkg/stt"
)

// Transcriber converts an audio file on disk into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Audio writes the audio bytes to a scope-owned temp file and transcribes
// it. A nil transcriber means the speech-to-text credential is missing.
func Audio(ctx context.Context, data []byte, scope *resource.Scope, tr Transcriber) Result {
	if tr == nil {
		return Failure(KindMissingCredential, "speech-to-text is not configured")
	}
	tf, err := scope.TempFile(".mp3")
	if err != nil {
		return Failure(KindRemoteService, fmt.Sprintf("temp file: %v", err))
	}
	if err := os.WriteFile(tf.Path, data, 0o600); err != nil {
		return Failure(KindRemoteService, fmt.Sprintf("write audio: %v", err))
	}
	return transcribeFile(ctx, tr, tf.Path)
}

func transcribeFile(ctx context.Context, tr Transcriber, path string) Result {
	text, err := tr.Transcribe(ctx, path)
	if err != nil {
		var apiErr *stt.APIError
		switch {
		case errors.Is(err, stt.ErrNoText):
			return Failure(KindNoTextFound, "no speech detected")
		case errors.As(err, &apiErr):
			res := Failure(KindRemoteService, apiErr.Error())
			res.StatusCode = apiErr.Status
			return res
		default:
			return Failure(KindRemoteService, err.Error())
		}
	}
	if strings.TrimSpace(text) == "" {
		return Failure(KindNoTextFound, "no speech detected")
	}
	return Success(text)
}
