package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"simplelearn/internal/i18n"
	"simplelearn/internal/session"
	"simplelearn/internal/util"
	"simplelearn/pkg/domain"
)

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Warn("answer callback", "err", err)
	}
	if q.Message == nil {
		return
	}
	user := b.ensureUser(q.From)
	lang := b.userLanguage(user)
	chatID := q.Message.Chat.ID
	msgID := q.Message.MessageID
	data := q.Data

	switch {
	case strings.HasPrefix(data, "lang_"):
		code := strings.TrimPrefix(data, "lang_")
		if !i18n.IsSupported(code) {
			return
		}
		if err := b.store.SetLanguage(user.ID, code); err != nil {
			b.logger.Error("set language", "user", user.ID, "err", err)
			b.editMarkdown(chatID, msgID, i18n.T(lang, "error"))
			return
		}
		b.editMarkdown(chatID, msgID, i18n.T(code, "language_selected"))
		b.sendMarkdown(chatID, i18n.T(code, "welcome"))
		b.setState(ctx, chatID, session.StateContent)

	case data == "settings_lang":
		b.editMarkdownKeyboard(chatID, msgID, i18n.T(lang, "choose_language"), languageKeyboard())
		b.setState(ctx, chatID, session.StateLanguage)

	case data == "settings_style":
		if !b.privileged(user) {
			b.editMarkdown(chatID, msgID, i18n.T(lang, "premium_required"))
			return
		}
		b.editMarkdownKeyboard(chatID, msgID, i18n.T(lang, "choose_style"), styleKeyboard(lang))
		b.setState(ctx, chatID, session.StateStyle)

	case strings.HasPrefix(data, "style_"):
		if !b.privileged(user) {
			b.editMarkdown(chatID, msgID, i18n.T(lang, "premium_required"))
			return
		}
		style := domain.SummaryStyle(strings.TrimPrefix(data, "style_"))
		if !style.Valid() {
			return
		}
		if err := b.store.SetSummaryStyle(user.ID, style); err != nil {
			b.logger.Error("set summary style", "user", user.ID, "err", err)
			b.editMarkdown(chatID, msgID, i18n.T(lang, "error"))
			return
		}
		b.editMarkdown(chatID, msgID, fmt.Sprintf(i18n.T(lang, "style_selected"), styleLabel(lang, style)))
		b.setState(ctx, chatID, session.StateContent)

	case data == "process_summarize":
		b.handleSummarize(ctx, chatID, user)

	case data == "upgrade_premium":
		b.sendInvoice(chatID, lang)
	}
}

func (b *Bot) handleSummarize(ctx context.Context, chatID int64, user domain.User) {
	lang := b.userLanguage(user)
	pending, ok, err := b.sessions.Pending(ctx, chatID)
	if err != nil {
		b.logger.Error("load pending text", "chat", chatID, "err", err)
	}
	if !ok || pending.Text == "" {
		b.sendMarkdown(chatID, i18n.T(lang, "error"))
		return
	}

	status := b.sendMarkdown(chatID, i18n.T(lang, "summarizing"))
	typing := b.keepTyping(chatID)
	defer b.governor.Cancel(typing)
	sum, err := b.summarizer.Summarize(ctx, pending.Text, user.SummaryStyle, lang)
	b.governor.Cancel(typing)
	if status != nil {
		b.deleteMessage(chatID, status.MessageID)
	}
	if err != nil {
		b.logger.Error("summarize", "user", user.ID, "err", err)
		b.sendMarkdown(chatID, i18n.T(lang, "error"))
		return
	}

	now := time.Now().UTC()
	sum.ID = util.NewID()
	sum.UserID = user.ID
	sum.ContentType = pending.ContentType
	sum.CreatedAt = now
	if err := b.store.SaveSummary(sum); err != nil {
		b.logger.Error("save summary", "user", user.ID, "err", err)
	}

	b.sendMarkdown(chatID, sum.Formatted)

	if err := b.sessions.ClearPending(ctx, chatID); err != nil {
		b.logger.Warn("clear pending text", "chat", chatID, "err", err)
	}
	b.setState(ctx, chatID, session.StateContent)
	b.sendMarkdown(chatID, i18n.T(lang, "send_document"))
}
