package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"simplelearn/internal/i18n"
	"simplelearn/pkg/domain"
)

// Stable button order regardless of map iteration.
var languageOrder = []string{"en", "ru", "uz"}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(languageOrder))
	for _, code := range languageOrder {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.Languages[code], "lang_"+code),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func settingsKeyboard(lang string, showStyle bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "language"), "settings_lang"),
		),
	}
	if showStyle {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "summary_style"), "settings_style"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func styleKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "style_short"), "style_short"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "style_medium"), "style_medium"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "style_long"), "style_long"),
		),
	)
}

func summarizeKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "summarize_button"), "process_summarize"),
		),
	)
}

func upgradeKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "upgrade_button"), "upgrade_premium"),
		),
	)
}

func styleLabel(lang string, style domain.SummaryStyle) string {
	switch style {
	case domain.StyleShort:
		return i18n.T(lang, "style_short")
	case domain.StyleLong:
		return i18n.T(lang, "style_long")
	default:
		return i18n.T(lang, "style_medium")
	}
}
