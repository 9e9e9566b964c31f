// Package bot runs the Telegram front end: long polling, the conversation
// flow, and premium subscription payments.
package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	"simplelearn/internal/i18n"
	"simplelearn/internal/ingest"
	"simplelearn/internal/resource"
	"simplelearn/internal/session"
	"simplelearn/internal/summarize"
	"simplelearn/pkg/domain"
	"simplelearn/pkg/store"
)

// Telegram's typing indicator fades after about five seconds, so long
// operations refresh it on a shorter interval.
const typingInterval = 4 * time.Second

// Config carries the bot's runtime settings.
type Config struct {
	PollTimeout          int
	MaxConcurrency       int
	AdminUserID          int64
	PaymentProviderToken string
}

// Bot wires the Telegram API to the processing pipeline.
type Bot struct {
	api        *tgbotapi.BotAPI
	store      store.Store
	sessions   *session.Store
	pipeline   *ingest.Pipeline
	summarizer *summarize.Summarizer
	governor   *resource.Governor
	httpClient *http.Client
	logger     *slog.Logger
	sem        *semaphore.Weighted
	cfg        Config
}

// New builds a bot around an authorized API client.
func New(api *tgbotapi.BotAPI, st store.Store, sessions *session.Store, pipeline *ingest.Pipeline, summarizer *summarize.Summarizer, governor *resource.Governor, cfg Config, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 10
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 60
	}
	return &Bot{
		api:        api,
		store:      st,
		sessions:   sessions,
		pipeline:   pipeline,
		summarizer: summarizer,
		governor:   governor,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
		sem:        semaphore.NewWeighted(int64(cfg.MaxConcurrency)),
		cfg:        cfg,
	}
}

// Run polls for updates until ctx is cancelled. Each update is handled in
// its own goroutine, bounded by the concurrency limit.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.sem.Acquire(ctx, 1); err != nil {
				b.api.StopReceivingUpdates()
				return err
			}
			go func(upd tgbotapi.Update) {
				defer b.sem.Release(1)
				defer func() {
					if r := recover(); r != nil {
						b.logger.Error("update handler panic", "panic", r)
					}
				}()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.PreCheckoutQuery != nil:
		b.handlePreCheckout(update.PreCheckoutQuery)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		msg := update.Message
		if msg.SuccessfulPayment != nil {
			b.handleSuccessfulPayment(ctx, msg)
			return
		}
		if msg.IsCommand() {
			b.handleCommand(ctx, msg)
			return
		}
		b.handleContent(ctx, msg)
	}
}

// ensureUser loads the user, creating a fresh profile on first contact.
func (b *Bot) ensureUser(from *tgbotapi.User) domain.User {
	user, ok, err := b.store.GetUser(from.ID)
	if err != nil {
		b.logger.Error("load user", "user", from.ID, "err", err)
		// A failed read must not be treated as "no row": upserting a default
		// profile here would wipe the stored language, style, and premium
		// flags. Serve this update with a transient profile instead.
		return domain.User{
			ID:           from.ID,
			Username:     from.UserName,
			FirstName:    from.FirstName,
			SummaryStyle: domain.StyleMedium,
			Admin:        from.ID == b.cfg.AdminUserID,
		}
	}
	if !ok {
		now := time.Now().UTC()
		user = domain.User{
			ID:           from.ID,
			Username:     from.UserName,
			FirstName:    from.FirstName,
			SummaryStyle: domain.StyleMedium,
			Admin:        from.ID == b.cfg.AdminUserID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := b.store.SaveUser(user); err != nil {
			b.logger.Error("save user", "user", from.ID, "err", err)
		}
		return user
	}
	// The admin ID comes from config, not the database row.
	user.Admin = user.Admin || from.ID == b.cfg.AdminUserID
	if user.Username != from.UserName || user.FirstName != from.FirstName {
		user.Username = from.UserName
		user.FirstName = from.FirstName
		user.UpdatedAt = time.Now().UTC()
		if err := b.store.SaveUser(user); err != nil {
			b.logger.Error("save user", "user", from.ID, "err", err)
		}
	}
	return user
}

func (b *Bot) userLanguage(user domain.User) string {
	if i18n.IsSupported(user.Language) {
		return user.Language
	}
	return i18n.DefaultLanguage
}

// privileged reports whether the user may use premium-gated features.
func (b *Bot) privileged(user domain.User) bool {
	return user.Admin || user.PremiumActive(time.Now())
}

func (b *Bot) sendMarkdown(chatID int64, text string) *tgbotapi.Message {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := b.api.Send(msg)
	if err != nil {
		// Model output occasionally breaks Telegram markdown, retry plain.
		msg.ParseMode = ""
		sent, err = b.api.Send(msg)
		if err != nil {
			b.logger.Error("send message", "chat", chatID, "err", err)
			return nil
		}
	}
	return &sent
}

func (b *Bot) sendMarkdownKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "chat", chatID, "err", err)
	}
}

func (b *Bot) editMarkdown(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("edit message", "chat", chatID, "err", err)
	}
}

func (b *Bot) editMarkdownKeyboard(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("edit message", "chat", chatID, "err", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("delete message", "chat", chatID, "err", err)
	}
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Warn("send typing action", "chat", chatID, "err", err)
	}
}

// keepTyping refreshes the typing indicator until the returned signal is
// cancelled.
func (b *Bot) keepTyping(chatID int64) *resource.Signal {
	return b.governor.SpawnKeepAlive(func() { b.sendTyping(chatID) }, typingInterval)
}

// fetchFile returns a lazy downloader for a Telegram file, so the size gate
// runs before any bytes move.
func (b *Bot) fetchFile(fileID string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		url, err := b.api.GetFileDirectURL(fileID)
		if err != nil {
			return nil, fmt.Errorf("resolve file url: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := b.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download file: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
}
