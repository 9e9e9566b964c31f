package config

import (
	"os"
	"path/filepath"
	"testing"
)

const baseConfig = `
logLevel: debug
botToken: file-token
databaseURL: postgres://localhost/simplelearn
redisAddr: localhost:6379
geminiApiKey: file-gemini
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollTimeout != 60 {
		t.Fatalf("poll timeout default = %d", cfg.PollTimeout)
	}
	if cfg.MaxConcurrency != 10 {
		t.Fatalf("concurrency default = %d", cfg.MaxConcurrency)
	}
	if cfg.SessionTTLHours != 24 {
		t.Fatalf("session ttl default = %d", cfg.SessionTTLHours)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("model default = %q", cfg.GeminiModel)
	}
	if cfg.MemoryCeilingMB != 1024 {
		t.Fatalf("memory ceiling default = %d", cfg.MemoryCeilingMB)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Fatalf("ffmpeg default = %q", cfg.FFmpegPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("ADMIN_USER_ID", "999932510")

	cfg, err := Load(writeConfig(t, baseConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BotToken != "env-token" {
		t.Fatalf("bot token = %q", cfg.BotToken)
	}
	if cfg.GeminiAPIKey != "env-gemini" {
		t.Fatalf("gemini key = %q", cfg.GeminiAPIKey)
	}
	if cfg.AdminUserID != 999932510 {
		t.Fatalf("admin id = %d", cfg.AdminUserID)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing bot token", `
databaseURL: postgres://localhost/x
redisAddr: localhost:6379
geminiApiKey: k
`},
		{"missing database url", `
botToken: t
redisAddr: localhost:6379
geminiApiKey: k
`},
		{"missing redis addr", `
botToken: t
databaseURL: postgres://localhost/x
geminiApiKey: k
`},
		{"missing gemini key", `
botToken: t
databaseURL: postgres://localhost/x
redisAddr: localhost:6379
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("REDIS_ADDR", "")
			t.Setenv("GEMINI_API_KEY", "")
			if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadElevenLabsOptional(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ElevenLabsAPIKey != "" {
		t.Fatalf("expected empty key, got %q", cfg.ElevenLabsAPIKey)
	}
}
