// Файл: internal/handlers/keyboards.go
// Общие построители клавиатур. Клавиатуры, привязанные к одному экрану,
// собираются прямо в его обработчике.

package handlers

import (
	"fmt"
	"net/url"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"spkbot/internal/constants"
	"spkbot/internal/texts"
)

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbekcha", constants.CALLBACK_PREFIX_LANG+constants.LOCALE_UZ),
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", constants.CALLBACK_PREFIX_LANG+constants.LOCALE_RU),
		),
	)
}

func phoneKeyboard(locale string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(texts.T(locale, "phone_button", nil)),
		),
	)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func mainMenuKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_cashback", nil), constants.CALLBACK_CASHBACK),
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_balance", nil), constants.CALLBACK_BALANCE),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_history", nil), constants.CALLBACK_HISTORY),
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_referral", nil), constants.CALLBACK_REFERRAL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_location", nil), constants.CALLBACK_LOCATION),
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_contact", nil), constants.CALLBACK_CONTACT),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_group", nil), constants.CALLBACK_GROUP),
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_change_language", nil), constants.CALLBACK_CHANGE_LANGUAGE),
		),
	)
}

func backToMainKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_back", nil), constants.CALLBACK_MAIN_MENU),
		),
	)
}

// claimDecisionKeyboard — кнопки решения под пересланной заявкой.
// Токен однозначно идентифицирует заявку в реестре.
func claimDecisionKeyboard(token string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Tasdiqlash", constants.CALLBACK_PREFIX_CLAIM_APPROVE+token),
			tgbotapi.NewInlineKeyboardButtonData("❌ Bekor qilish", constants.CALLBACK_PREFIX_CLAIM_REJECT+token),
		),
	)
}

// referralShareKeyboard — кнопка "поделиться" с предзаполненным
// сообщением через t.me/share.
func referralShareKeyboard(locale, link string) tgbotapi.InlineKeyboardMarkup {
	shareURL := fmt.Sprintf("https://t.me/share/url?url=%s", url.QueryEscape(link))
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(texts.T(locale, "referral_share", nil), shareURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(texts.T(locale, "menu_back", nil), constants.CALLBACK_MAIN_MENU),
		),
	)
}
