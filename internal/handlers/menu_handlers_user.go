// Файл: internal/handlers/menu_handlers_user.go
// Экраны пользовательского меню: баланс, история, рефералы, справка.

package handlers

import (
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"spkbot/internal/constants"
	"spkbot/internal/utils"
)

// Координаты магазинов для экрана "Адрес".
var storeLocations = []struct {
	latitude  float64
	longitude float64
}{
	{41.3563, 69.1801}, // Yangi Jomi
	{41.2867, 69.1454}, // Dimax, Nazarbek bozor
}

// sendMainMenu показывает главное меню и сбрасывает состояние диалога.
func (bh *BotHandler) sendMainMenu(chatID int64, messageIDToEdit int, locale string) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_IDLE)
	keyboard := mainMenuKeyboard(locale)
	bh.editOrSend(chatID, messageIDToEdit, t(locale, "welcome", nil), &keyboard)
}

// sendCashbackPrompt начинает поток заявки: просит сумму покупки.
func (bh *BotHandler) sendCashbackPrompt(chatID int64, messageIDToEdit int) {
	locale := bh.localeOf(chatID)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CLAIM_AMOUNT)
	keyboard := backToMainKeyboard(locale)
	bh.editOrSend(chatID, messageIDToEdit, t(locale, "cashback_title", nil), &keyboard)
}

// sendBalance показывает текущий баланс кешбэка.
func (bh *BotHandler) sendBalance(chatID int64, messageIDToEdit int) {
	user, ok := bh.getAccount(chatID)
	if !ok {
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}
	keyboard := backToMainKeyboard(user.Locale)
	bh.editOrSend(chatID, messageIDToEdit, t(user.Locale, "balance_title", map[string]string{
		"balance": utils.FormatNumber(user.Balance),
	}), &keyboard)
}

// sendHistory показывает проводки аккаунта, свежие сверху.
func (bh *BotHandler) sendHistory(chatID int64, messageIDToEdit int) {
	locale := bh.localeOf(chatID)
	entries, err := bh.Deps.Store.History(chatID)
	if err != nil {
		log.Printf("sendHistory: ошибка чтения истории chatID %d: %v", chatID, err)
		bh.sendText(chatID, t(locale, "admin_error", nil))
		return
	}

	keyboard := backToMainKeyboard(locale)
	if len(entries) == 0 {
		bh.editOrSend(chatID, messageIDToEdit, t(locale, "history_empty", nil), &keyboard)
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(t(locale, "history_item", map[string]string{
			"date":    utils.FormatDate(e.CreatedAt),
			"amount":  utils.FormatNumber(e.Amount),
			"percent": utils.FormatNumber(int64(e.Percent)),
			"delta":   utils.FormatSignedNumber(e.Delta),
			"type":    t(locale, "type_"+e.Kind, nil),
		}))
	}
	bh.editOrSend(chatID, messageIDToEdit, sb.String(), &keyboard)
}

// sendReferralInfo показывает реферальную ссылку, QR-код и счетчики.
func (bh *BotHandler) sendReferralInfo(chatID int64) {
	user, ok := bh.getAccount(chatID)
	if !ok {
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	link, err := utils.GenerateReferralLink(bh.Deps.Config.BotUsername, chatID)
	if err != nil {
		log.Printf("sendReferralInfo: ошибка построения ссылки для chatID %d: %v", chatID, err)
		bh.sendText(chatID, t(user.Locale, "admin_error", nil))
		return
	}
	text := t(user.Locale, "referral_title", map[string]string{
		"balance": utils.FormatNumber(user.Balance),
		"count":   utils.FormatNumber(int64(user.ReferralCount)),
		"link":    link,
	})

	qr, err := utils.GenerateReferralQR(link)
	if err != nil {
		// Без QR-кода экран всё равно полезен.
		log.Printf("sendReferralInfo: ошибка генерации QR для chatID %d: %v", chatID, err)
		bh.sendWithKeyboard(chatID, text, referralShareKeyboard(user.Locale, link))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "referral_qr.png", Bytes: qr})
	photo.Caption = text
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = referralShareKeyboard(user.Locale, link)
	if _, err := bh.Deps.BotClient.Send(photo); err != nil {
		log.Printf("sendReferralInfo: ошибка отправки QR chatID %d: %v", chatID, err)
	}
}

// sendLocationInfo показывает адреса магазинов и геометку.
func (bh *BotHandler) sendLocationInfo(chatID int64, messageIDToEdit int) {
	locale := bh.localeOf(chatID)
	keyboard := backToMainKeyboard(locale)
	bh.editOrSend(chatID, messageIDToEdit, t(locale, "location_text", nil), &keyboard)
	for _, store := range storeLocations {
		if err := bh.Deps.BotClient.SendLocation(chatID, store.latitude, store.longitude); err != nil {
			log.Printf("sendLocationInfo: ошибка отправки геометки chatID %d: %v", chatID, err)
		}
	}
}

// sendContactInfo показывает контакты магазина.
func (bh *BotHandler) sendContactInfo(chatID int64, messageIDToEdit int) {
	locale := bh.localeOf(chatID)
	keyboard := backToMainKeyboard(locale)
	bh.editOrSend(chatID, messageIDToEdit, t(locale, "contact_text", nil), &keyboard)
}

// sendGroupInfo показывает ссылку на группу.
func (bh *BotHandler) sendGroupInfo(chatID int64, messageIDToEdit int) {
	locale := bh.localeOf(chatID)
	keyboard := backToMainKeyboard(locale)
	bh.editOrSend(chatID, messageIDToEdit, t(locale, "group_text", nil), &keyboard)
}

// toggleLanguage переключает локаль uz <-> ru и перерисовывает меню.
func (bh *BotHandler) toggleLanguage(chatID int64, messageIDToEdit int) {
	newLocale := constants.LOCALE_RU
	if bh.localeOf(chatID) == constants.LOCALE_RU {
		newLocale = constants.LOCALE_UZ
	}
	if err := bh.Deps.Store.SetLocale(chatID, newLocale); err != nil {
		log.Printf("toggleLanguage: ошибка смены локали chatID %d: %v", chatID, err)
		bh.sendText(chatID, t(newLocale, "admin_error", nil))
		return
	}
	bh.sendMainMenu(chatID, messageIDToEdit, newLocale)
}
