package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"simplelearn/internal/extract"
	"simplelearn/internal/i18n"
	"simplelearn/internal/ingest"
	"simplelearn/internal/session"
	"simplelearn/pkg/domain"
)

const previewLen = 150

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	user := b.ensureUser(msg.From)
	lang := b.userLanguage(user)
	chatID := msg.Chat.ID
	b.sendTyping(chatID)

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, chatID, user)
	case "help":
		b.sendMarkdown(chatID, i18n.T(lang, "help"))
	case "settings":
		b.handleSettings(chatID, user)
	case "upgrade":
		b.handleUpgrade(chatID, user)
	default:
		b.sendMarkdown(chatID, i18n.T(lang, "help"))
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64, user domain.User) {
	if user.Admin {
		b.sendAdminDashboard(chatID)
	}
	if i18n.IsSupported(user.Language) {
		b.sendMarkdown(chatID, i18n.T(user.Language, "welcome"))
		b.setState(ctx, chatID, session.StateContent)
		return
	}
	b.sendMarkdownKeyboard(chatID, i18n.T(i18n.DefaultLanguage, "choose_language"), languageKeyboard())
	b.setState(ctx, chatID, session.StateLanguage)
}

func (b *Bot) handleSettings(chatID int64, user domain.User) {
	lang := b.userLanguage(user)
	showStyle := b.privileged(user)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n\n", i18n.T(lang, "settings"))
	fmt.Fprintf(&sb, "%s %s\n", i18n.T(lang, "current_language"), i18n.Languages[lang])
	if showStyle {
		fmt.Fprintf(&sb, "%s %s\n", i18n.T(lang, "current_style"), styleLabel(lang, user.SummaryStyle))
	}
	b.sendMarkdownKeyboard(chatID, sb.String(), settingsKeyboard(lang, showStyle))
}

func (b *Bot) handleUpgrade(chatID int64, user domain.User) {
	lang := b.userLanguage(user)
	if user.PremiumActive(time.Now()) {
		until := "-"
		if user.PremiumUntil != nil {
			until = user.PremiumUntil.Format("2006-01-02")
		}
		b.sendMarkdown(chatID, fmt.Sprintf(i18n.T(lang, "premium_active"), until))
		return
	}
	b.sendMarkdownKeyboard(chatID, i18n.T(lang, "upgrade"), upgradeKeyboard(lang))
}

func (b *Bot) handleContent(ctx context.Context, msg *tgbotapi.Message) {
	user := b.ensureUser(msg.From)
	lang := b.userLanguage(user)
	chatID := msg.Chat.ID

	state, err := b.sessions.State(ctx, chatID)
	if err != nil {
		b.logger.Warn("load session state", "chat", chatID, "err", err)
	}
	if state == session.StateLanguage {
		// Still picking a language; re-prompt instead of processing content.
		b.sendMarkdownKeyboard(chatID, i18n.T(lang, "choose_language"), languageKeyboard())
		return
	}
	b.sendTyping(chatID)

	unit, ok := b.contentUnit(msg)
	if !ok {
		b.sendMarkdown(chatID, i18n.T(lang, "unsupported"))
		return
	}

	var status *tgbotapi.Message
	if key := statusKey(unit.Type); key != "" {
		status = b.sendMarkdown(chatID, i18n.T(lang, key))
	}
	typing := b.keepTyping(chatID)
	// Deferred so a panic inside Process cannot leave the indicator running.
	defer b.governor.Cancel(typing)
	out := b.pipeline.Process(ctx, user, unit)
	b.governor.Cancel(typing)
	if status != nil {
		b.deleteMessage(chatID, status.MessageID)
	}

	res := out.Result
	if !res.OK {
		b.logger.Warn("processing failed",
			"user", user.ID, "type", unit.Type, "kind", res.Kind.String(), "detail", res.Message)
		b.sendMarkdown(chatID, b.failureText(lang, user, unit, res))
		return
	}

	if unit.Type == domain.ContentAudio || unit.Type == domain.ContentVideo {
		b.sendTranscript(chatID, lang, unit.Type, res.Text)
	}

	pending := session.Pending{ContentType: unit.Type, FileName: unit.FileName, Text: res.Text}
	if err := b.sessions.SetPending(ctx, chatID, pending); err != nil {
		b.logger.Error("store pending text", "chat", chatID, "err", err)
		b.sendMarkdown(chatID, i18n.T(lang, "error"))
		return
	}
	b.setState(ctx, chatID, session.StateProcessing)

	b.sendMarkdownKeyboard(chatID,
		fmt.Sprintf(i18n.T(lang, "extracted_preview"), preview(res.Text)),
		summarizeKeyboard(lang))
}

// contentUnit classifies an incoming message into a processable unit.
func (b *Bot) contentUnit(msg *tgbotapi.Message) (ingest.ContentUnit, bool) {
	switch {
	case msg.Video != nil:
		return ingest.ContentUnit{
			Type:      domain.ContentVideo,
			FileName:  "video.mp4",
			SizeBytes: int64(msg.Video.FileSize),
			Fetch:     b.fetchFile(msg.Video.FileID),
		}, true
	case msg.Voice != nil:
		return ingest.ContentUnit{
			Type:      domain.ContentAudio,
			FileName:  "voice.ogg",
			SizeBytes: int64(msg.Voice.FileSize),
			Fetch:     b.fetchFile(msg.Voice.FileID),
		}, true
	case msg.Audio != nil:
		name := msg.Audio.FileName
		if name == "" {
			name = "audio.mp3"
		}
		return ingest.ContentUnit{
			Type:      domain.ContentAudio,
			FileName:  name,
			SizeBytes: int64(msg.Audio.FileSize),
			Fetch:     b.fetchFile(msg.Audio.FileID),
		}, true
	case msg.Document != nil:
		doc := msg.Document
		unit := ingest.ContentUnit{
			FileName:  doc.FileName,
			SizeBytes: int64(doc.FileSize),
			Fetch:     b.fetchFile(doc.FileID),
		}
		switch extract.CategoryForName(doc.FileName) {
		case extract.CategoryDocument:
			unit.Type = domain.ContentDocument
		case extract.CategoryAudio:
			unit.Type = domain.ContentAudio
		case extract.CategoryVideo:
			unit.Type = domain.ContentVideo
		default:
			return ingest.ContentUnit{}, false
		}
		return unit, true
	case msg.Text != "":
		text := strings.TrimSpace(msg.Text)
		if isWebLink(text) {
			return ingest.ContentUnit{Type: domain.ContentWeb, URL: text}, true
		}
		return ingest.ContentUnit{Type: domain.ContentText, Text: text}, true
	}
	return ingest.ContentUnit{}, false
}

func isWebLink(text string) bool {
	for _, prefix := range []string{"http://", "https://", "www.", "youtu.be/"} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

func statusKey(t domain.ContentType) string {
	switch t {
	case domain.ContentAudio:
		return "transcribing"
	case domain.ContentVideo:
		return "processing_video"
	case domain.ContentDocument, domain.ContentWeb:
		return "processing"
	default:
		return ""
	}
}

func (b *Bot) failureText(lang string, user domain.User, unit ingest.ContentUnit, res extract.Result) string {
	switch res.Kind {
	case extract.KindMissingCredential:
		return i18n.T(lang, "no_api_key")
	case extract.KindSizeExceeded:
		ceiling := ingest.SizeCeiling(unit.Type, user.PremiumActive(time.Now()))
		return fmt.Sprintf(i18n.T(lang, "file_too_large"),
			float64(unit.SizeBytes)/(1<<20), ceiling/(1<<20))
	case extract.KindMemoryExceeded:
		return i18n.T(lang, "busy")
	case extract.KindUnsupportedFormat:
		return i18n.T(lang, "unsupported")
	case extract.KindNoTextFound:
		return i18n.T(lang, "no_text")
	case extract.KindTooShort:
		return i18n.T(lang, "too_short")
	case extract.KindRobotChallenge, extract.KindRemoteService:
		if unit.Type == domain.ContentWeb {
			return i18n.T(lang, "web_error")
		}
		return i18n.T(lang, "error")
	default:
		return i18n.T(lang, "error")
	}
}

func (b *Bot) sendTranscript(chatID int64, lang string, t domain.ContentType, text string) {
	name := "audio_transcript.txt"
	captionKey := "transcript_audio"
	if t == domain.ContentVideo {
		name = "video_transcript.txt"
		captionKey = "transcript_video"
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: []byte(text)})
	doc.Caption = i18n.T(lang, captionKey)
	doc.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("send transcript", "chat", chatID, "err", err)
	}
}

func (b *Bot) setState(ctx context.Context, chatID int64, st session.State) {
	if err := b.sessions.SetState(ctx, chatID, st); err != nil {
		b.logger.Error("set session state", "chat", chatID, "err", err)
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen]) + "..."
}
