// Файл: internal/handlers/message_handler.go

package handlers

import (
	"database/sql"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"spkbot/internal/constants"
	"spkbot/internal/referral"
	"spkbot/internal/utils"
)

// HandleUpdate — точка входа для одного обновления Telegram. События
// разных чатов обрабатываются параллельно (go HandleUpdate в main);
// сериализацию мутаций баланса одного аккаунта обеспечивает хранилище.
func (bh *BotHandler) HandleUpdate(update tgbotapi.Update) {
	ev, ok := bh.classify(update)
	if !ok {
		return
	}
	if ev.Kind == EventCallback {
		bh.handleCallback(ev)
		return
	}
	bh.handleMessage(ev)
}

func (bh *BotHandler) handleMessage(ev Event) {
	log.Printf("handleMessage: ChatID=%d, Role=%s, Kind=%d, Text='%.50s'", ev.ChatID, ev.Role, ev.Kind, ev.Text)

	if ev.Kind == EventCommand {
		switch ev.Command {
		case "start":
			bh.handleStart(ev)
		case "cancel":
			bh.handleCancel(ev)
		default:
			log.Printf("handleMessage: неизвестная команда /%s от chatID %d, игнорируется.", ev.Command, ev.ChatID)
		}
		return
	}

	state := bh.Deps.SessionManager.GetState(ev.ChatID)

	if ev.Role == constants.ROLE_ADMIN {
		bh.handleAdminInput(ev, state)
		return
	}

	switch state {
	case constants.STATE_REG_LANGUAGE:
		// Язык выбирается кнопкой, свободный ввод — повтор приглашения.
		bh.sendWithKeyboard(ev.ChatID, t(constants.DEFAULT_LOCALE, "choose_language", nil), languageKeyboard())
	case constants.STATE_REG_NAME:
		bh.processRegistrationName(ev)
	case constants.STATE_REG_PHONE:
		bh.processRegistrationPhone(ev)
	case constants.STATE_CLAIM_AMOUNT:
		bh.processClaimAmount(ev)
	case constants.STATE_CLAIM_PHOTO:
		bh.processClaimPhoto(ev)
	default:
		// Вне диалога свободный ввод не имеет смысла: напоминаем про меню,
		// а незарегистрированных возвращаем к началу регистрации.
		user, ok := bh.getAccount(ev.ChatID)
		if !ok || !user.Registered {
			bh.handleStart(ev)
			return
		}
		bh.sendMainMenu(ev.ChatID, 0, user.Locale)
	}
}

// handleStart обрабатывает /start: для администратора — панель, для
// пользователя — создание аккаунта, реферальный каскад и регистрация.
func (bh *BotHandler) handleStart(ev Event) {
	if ev.Role == constants.ROLE_ADMIN {
		bh.Deps.SessionManager.Clear(ev.ChatID)
		bh.sendAdminPanel(ev.ChatID, 0)
		return
	}

	_, existed := bh.getAccount(ev.ChatID)

	// Реферальная нагрузка учитывается только при первом контакте.
	var inviterRef sql.NullInt64
	inviterID, hasRef := referral.ParsePayload(ev.CommandPayload)
	if !existed && hasRef && inviterID != ev.ChatID {
		if exists, err := bh.Deps.Store.AccountExists(inviterID); err == nil && exists {
			inviterRef = sql.NullInt64{Int64: inviterID, Valid: true}
		}
	}

	if err := bh.Deps.Store.CreateAccount(ev.ChatID, ev.SenderName, inviterRef); err != nil {
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	if !existed && inviterRef.Valid {
		bh.processReferral(ev.ChatID, inviterRef.Int64)
	}

	user, ok := bh.getAccount(ev.ChatID)
	if !ok {
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	if user.Registered {
		bh.Deps.SessionManager.Clear(ev.ChatID)
		bh.sendMainMenu(ev.ChatID, 0, user.Locale)
		return
	}

	bh.Deps.SessionManager.SetState(ev.ChatID, constants.STATE_REG_LANGUAGE)
	bh.sendWithKeyboard(ev.ChatID, t(constants.DEFAULT_LOCALE, "choose_language", nil), languageKeyboard())
}

// processReferral начисляет бонус пригласившему и уведомляет обе стороны.
// Сбои уведомлений не откатывают проводку: бонус уже в леджере.
func (bh *BotHandler) processReferral(newUserID, inviterID int64) {
	res, err := bh.Deps.Referrals.Process(newUserID, inviterID)
	if err != nil {
		log.Printf("processReferral: ошибка начисления бонуса chatID %d: %v", inviterID, err)
		return
	}
	if !res.Recognized {
		return
	}

	bh.sendText(newUserID, t(constants.DEFAULT_LOCALE, "referral_success_user", nil))

	if res.Bonus > 0 {
		bh.sendText(inviterID, t(bh.localeOf(inviterID), "referral_success_inviter", map[string]string{
			"bonus":   utils.FormatNumber(res.Bonus),
			"balance": utils.FormatNumber(res.NewBalance),
		}))
	}
}

// handleCancel прерывает текущий поток без побочных эффектов.
func (bh *BotHandler) handleCancel(ev Event) {
	bh.Deps.SessionManager.Clear(ev.ChatID)
	if ev.Role == constants.ROLE_ADMIN {
		bh.stopBroadcast()
		bh.sendAdminPanel(ev.ChatID, 0)
		return
	}
	bh.sendMainMenu(ev.ChatID, 0, bh.localeOf(ev.ChatID))
}

// --- Шаги регистрации ---

func (bh *BotHandler) processRegistrationName(ev Event) {
	locale := bh.sessionLocale(ev.ChatID)

	name, err := utils.ValidateName(ev.Text)
	if err != nil {
		// Остаёмся в том же состоянии и просим ввести заново.
		bh.sendText(ev.ChatID, t(locale, "name_too_short", nil))
		return
	}

	if err := bh.Deps.Store.SetDisplayName(ev.ChatID, name); err != nil {
		bh.sendText(ev.ChatID, t(locale, "admin_error", nil))
		return
	}

	bh.Deps.SessionManager.SetState(ev.ChatID, constants.STATE_REG_PHONE)

	msg := tgbotapi.NewMessage(ev.ChatID, t(locale, "share_phone", nil))
	msg.ReplyMarkup = phoneKeyboard(locale)
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("processRegistrationName: ошибка отправки запроса телефона chatID %d: %v", ev.ChatID, err)
	}
}

func (bh *BotHandler) processRegistrationPhone(ev Event) {
	locale := bh.sessionLocale(ev.ChatID)

	// Телефон принимается только через structured contact-share,
	// свободный текст не считается номером.
	if ev.Kind != EventContact {
		bh.sendText(ev.ChatID, t(locale, "invalid_phone", nil))
		return
	}

	if err := bh.Deps.Store.CompleteRegistration(ev.ChatID, ev.ContactPhone); err != nil {
		bh.sendText(ev.ChatID, t(locale, "admin_error", nil))
		return
	}
	bh.Deps.SessionManager.Clear(ev.ChatID)

	// Убираем reply-клавиатуру с кнопкой контакта.
	done := tgbotapi.NewMessage(ev.ChatID, t(locale, "registered", nil))
	done.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := bh.Deps.BotClient.Send(done); err != nil {
		log.Printf("processRegistrationPhone: ошибка отправки подтверждения chatID %d: %v", ev.ChatID, err)
	}

	bh.sendMainMenu(ev.ChatID, 0, locale)
}

// sessionLocale — локаль из сессии (во время регистрации аккаунт ещё может
// не иметь сохраненной локали), иначе из аккаунта.
func (bh *BotHandler) sessionLocale(chatID int64) string {
	if data := bh.Deps.SessionManager.GetData(chatID); data.Locale != "" {
		return data.Locale
	}
	return bh.localeOf(chatID)
}
