package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"simplelearn/internal/resource"
)

// Video extracts the audio track with ffmpeg and transcribes it. Both the
// video copy and the extracted audio live in scope-owned temp files.
func Video(ctx context.Context, data []byte, scope *resource.Scope, tr Transcriber, ffmpegPath string) Result {
	if tr == nil {
		return Failure(KindMissingCredential, "speech-to-text is not configured")
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if _, err := exec.LookPath(ffmpegPath); err != nil {
		return Failure(KindRemoteService, "ffmpeg not found: install ffmpeg to enable video processing")
	}

	videoFile, err := scope.TempFile(".mp4")
	if err != nil {
		return Failure(KindRemoteService, fmt.Sprintf("temp file: %v", err))
	}
	if err := os.WriteFile(videoFile.Path, data, 0o600); err != nil {
		return Failure(KindRemoteService, fmt.Sprintf("write video: %v", err))
	}
	audioFile, err := scope.TempFile(".mp3")
	if err != nil {
		return Failure(KindRemoteService, fmt.Sprintf("temp file: %v", err))
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y", "-i", videoFile.Path,
		"-vn", "-acodec", "libmp3lame", "-ar", "44100", "-b:a", "192k",
		audioFile.Path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("audio track extraction failed: %v: %s", err, lastLine(stderr.Bytes())))
	}
	return transcribeFile(ctx, tr, audioFile.Path)
}

func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(bytes.TrimSpace(lines[len(lines)-1]))
}
