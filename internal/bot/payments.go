package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"simplelearn/internal/i18n"
)

const premiumPayload = "premium-30d"

// Price in UZS; Telegram expects the smallest currency unit (tiyin).
const premiumPriceUZS = 30000

const premiumDuration = 30 * 24 * time.Hour

func (b *Bot) sendInvoice(chatID int64, lang string) {
	if b.cfg.PaymentProviderToken == "" {
		b.sendMarkdown(chatID, i18n.T(lang, "payments_offline"))
		return
	}
	prices := []tgbotapi.LabeledPrice{
		{Label: "Premium (30 days)", Amount: premiumPriceUZS * 100},
	}
	inv := tgbotapi.NewInvoice(chatID,
		"SimpleLearn Premium",
		"30 days of premium access: bigger file limits and custom summary styles",
		premiumPayload,
		b.cfg.PaymentProviderToken,
		"",
		"UZS",
		prices)
	if _, err := b.api.Send(inv); err != nil {
		b.logger.Error("send invoice", "chat", chatID, "err", err)
		b.sendMarkdown(chatID, i18n.T(lang, "error"))
	}
}

func (b *Bot) handlePreCheckout(q *tgbotapi.PreCheckoutQuery) {
	ok := q.InvoicePayload == premiumPayload
	cfg := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: q.ID,
		OK:                 ok,
	}
	if !ok {
		cfg.ErrorMessage = "Unknown product"
	}
	if _, err := b.api.Request(cfg); err != nil {
		b.logger.Error("answer pre-checkout", "user", q.From.ID, "err", err)
	}
}

func (b *Bot) handleSuccessfulPayment(ctx context.Context, msg *tgbotapi.Message) {
	user := b.ensureUser(msg.From)
	lang := b.userLanguage(user)
	pay := msg.SuccessfulPayment
	if pay.InvoicePayload != premiumPayload {
		b.logger.Warn("payment with unknown payload", "user", user.ID, "payload", pay.InvoicePayload)
		return
	}

	now := time.Now().UTC()
	until := now.Add(premiumDuration)
	// Paying before expiry extends the current window.
	if user.PremiumActive(now) && user.PremiumUntil != nil {
		until = user.PremiumUntil.Add(premiumDuration)
	}
	if err := b.store.GrantPremium(user.ID, until); err != nil {
		b.logger.Error("grant premium", "user", user.ID, "err", err)
		b.sendMarkdown(msg.Chat.ID, i18n.T(lang, "error"))
		return
	}
	b.logger.Info("premium activated",
		"user", user.ID, "until", until, "amount", pay.TotalAmount, "currency", pay.Currency)
	b.sendMarkdown(msg.Chat.ID, i18n.T(lang, "premium_thanks"))
}
