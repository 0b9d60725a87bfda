// Файл: internal/handlers/callback_handler.go
// Маршрутизация нажатий inline-кнопок.

package handlers

import (
	"log"
	"strconv"
	"strings"

	"spkbot/internal/constants"
	"spkbot/internal/session"
)

func (bh *BotHandler) handleCallback(ev Event) {
	log.Printf("handleCallback: ChatID=%d, Role=%s, Data='%s'", ev.ChatID, ev.Role, ev.CallbackData)
	data := ev.CallbackData

	// Префиксные коллбэки.
	switch {
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_LANG):
		bh.answerCallback(ev.CallbackID, "", false)
		bh.processLanguageChoice(ev, strings.TrimPrefix(data, constants.CALLBACK_PREFIX_LANG))
		return

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_CLAIM_APPROVE):
		if !bh.requireAdmin(ev) {
			return
		}
		bh.handleClaimApprove(ev, strings.TrimPrefix(data, constants.CALLBACK_PREFIX_CLAIM_APPROVE))
		return

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_CLAIM_REJECT):
		if !bh.requireAdmin(ev) {
			return
		}
		bh.handleClaimReject(ev, strings.TrimPrefix(data, constants.CALLBACK_PREFIX_CLAIM_REJECT))
		return
	}

	if targetID, prefix, ok := parseAdminTarget(data); ok {
		if !bh.requireAdmin(ev) {
			return
		}
		bh.answerCallback(ev.CallbackID, "", false)
		switch prefix {
		case constants.CALLBACK_PREFIX_ADMIN_USER:
			bh.sendAdminUserCard(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_ADMIN_BONUS:
			bh.startAdminBonus(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_ADMIN_DEDUCT:
			bh.startAdminDeduct(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_ADMIN_RESET:
			bh.handleAdminReset(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_ADMIN_HISTORY:
			bh.sendAdminUserHistory(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_ADMIN_DELETE:
			bh.sendAdminDeleteConfirm(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_DELETE_YES:
			bh.handleAdminDeleteYes(ev.ChatID, ev.MessageID, targetID)
		case constants.CALLBACK_PREFIX_DELETE_NO:
			bh.handleAdminDeleteNo(ev.ChatID, ev.MessageID, targetID)
		}
		return
	}

	// Одиночные коллбэки.
	switch data {
	case constants.CALLBACK_MAIN_MENU:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendMainMenu(ev.ChatID, ev.MessageID, bh.localeOf(ev.ChatID))
	case constants.CALLBACK_CASHBACK:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendCashbackPrompt(ev.ChatID, ev.MessageID)
	case constants.CALLBACK_BALANCE:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendBalance(ev.ChatID, ev.MessageID)
	case constants.CALLBACK_HISTORY:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendHistory(ev.ChatID, ev.MessageID)
	case constants.CALLBACK_REFERRAL:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendReferralInfo(ev.ChatID)
	case constants.CALLBACK_LOCATION:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendLocationInfo(ev.ChatID, ev.MessageID)
	case constants.CALLBACK_CONTACT:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendContactInfo(ev.ChatID, ev.MessageID)
	case constants.CALLBACK_GROUP:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.sendGroupInfo(ev.ChatID, ev.MessageID)
	case constants.CALLBACK_CHANGE_LANGUAGE:
		bh.answerCallback(ev.CallbackID, "", false)
		bh.toggleLanguage(ev.ChatID, ev.MessageID)

	case constants.CALLBACK_ADMIN_MAIN:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.sendAdminPanel(ev.ChatID, ev.MessageID)
		}
	case constants.CALLBACK_ADMIN_USERS:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.sendAdminUsersList(ev.ChatID, ev.MessageID)
		}
	case constants.CALLBACK_ADMIN_STATS:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.sendAdminStats(ev.ChatID, ev.MessageID)
		}
	case constants.CALLBACK_ADMIN_BROADCAST:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.startBroadcast(ev.ChatID, ev.MessageID)
		}
	case constants.CALLBACK_ADMIN_EXCEL:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.generateAndSendUsersExcel(ev.ChatID)
		}
	case constants.CALLBACK_BROADCAST_CONFIRM:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.runBroadcast(ev.ChatID)
		}
	case constants.CALLBACK_BROADCAST_CANCEL:
		if bh.requireAdmin(ev) {
			bh.answerCallback(ev.CallbackID, "", false)
			bh.cancelBroadcastFlow(ev.ChatID)
		}

	default:
		log.Printf("handleCallback: неизвестный callback '%s' от chatID %d", data, ev.ChatID)
		bh.answerCallback(ev.CallbackID, "", false)
	}
}

// requireAdmin отвечает отказом на административные кнопки от
// посторонних. Защита не полагается на то, что кнопки видны только
// администратору.
func (bh *BotHandler) requireAdmin(ev Event) bool {
	if bh.isAdmin(ev.ChatID) {
		return true
	}
	bh.answerCallback(ev.CallbackID, t(bh.localeOf(ev.ChatID), "permission_denied", nil), true)
	return false
}

// parseAdminTarget распознает коллбэки вида "<prefix><chatID>" для
// операций над конкретным пользователем.
func parseAdminTarget(data string) (int64, string, bool) {
	prefixes := []string{
		constants.CALLBACK_PREFIX_ADMIN_USER,
		constants.CALLBACK_PREFIX_ADMIN_BONUS,
		constants.CALLBACK_PREFIX_ADMIN_DEDUCT,
		constants.CALLBACK_PREFIX_ADMIN_RESET,
		constants.CALLBACK_PREFIX_ADMIN_HISTORY,
		constants.CALLBACK_PREFIX_ADMIN_DELETE,
		constants.CALLBACK_PREFIX_DELETE_YES,
		constants.CALLBACK_PREFIX_DELETE_NO,
	}
	for _, prefix := range prefixes {
		if !strings.HasPrefix(data, prefix) {
			continue
		}
		targetID, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
		if err != nil {
			return 0, "", false
		}
		return targetID, prefix, true
	}
	return 0, "", false
}

// processLanguageChoice сохраняет выбранную локаль. Во время регистрации
// выбор продолжает поток к вводу имени, вне ее — возвращает в меню.
func (bh *BotHandler) processLanguageChoice(ev Event, locale string) {
	if locale != constants.LOCALE_UZ && locale != constants.LOCALE_RU {
		locale = constants.DEFAULT_LOCALE
	}

	if err := bh.Deps.Store.SetLocale(ev.ChatID, locale); err != nil {
		log.Printf("processLanguageChoice: ошибка сохранения локали chatID %d: %v", ev.ChatID, err)
		bh.sendText(ev.ChatID, t(locale, "admin_error", nil))
		return
	}

	if bh.Deps.SessionManager.GetState(ev.ChatID) == constants.STATE_REG_LANGUAGE {
		bh.Deps.SessionManager.UpdateData(ev.ChatID, func(data *session.Data) {
			data.Locale = locale
		})
		bh.Deps.SessionManager.SetState(ev.ChatID, constants.STATE_REG_NAME)
		bh.editOrSend(ev.ChatID, ev.MessageID, t(locale, "enter_name", nil), nil)
		return
	}

	bh.sendMainMenu(ev.ChatID, ev.MessageID, locale)
}
