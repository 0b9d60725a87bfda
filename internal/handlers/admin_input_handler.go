// Файл: internal/handlers/admin_input_handler.go
// Текстовый ввод администратора: процент бонуса, сумма вычета,
// содержимое рассылки.

package handlers

import (
	"errors"
	"log"

	"spkbot/internal/broadcast"
	"spkbot/internal/constants"
	"spkbot/internal/db"
	"spkbot/internal/session"
	"spkbot/internal/utils"
)

func (bh *BotHandler) handleAdminInput(ev Event, state string) {
	switch state {
	case constants.STATE_ADMIN_BONUS_PERCENT:
		bh.processAdminBonusPercent(ev)
	case constants.STATE_ADMIN_DEDUCT_AMOUNT:
		bh.processAdminDeductAmount(ev)
	case constants.STATE_ADMIN_BROADCAST_CONTENT:
		bh.processBroadcastContent(ev)
	case constants.STATE_ADMIN_BROADCAST_CONFIRM:
		// Решение принимается кнопками, свободный ввод игнорируем.
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_broadcast_ask", nil))
	default:
		bh.sendAdminPanel(ev.ChatID, 0)
	}
}

func (bh *BotHandler) processAdminBonusPercent(ev Event) {
	percent, err := utils.ParseBonusPercent(ev.Text)
	if err != nil {
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_invalid_percent", nil))
		return
	}

	targetID := bh.Deps.SessionManager.GetData(ev.ChatID).AdminTargetChatID
	if targetID == 0 {
		bh.Deps.SessionManager.Clear(ev.ChatID)
		bh.sendAdminPanel(ev.ChatID, 0)
		return
	}

	newBalance, bonus, err := bh.Deps.Store.GrantPercentBonus(targetID, percent)
	if err != nil {
		log.Printf("processAdminBonusPercent: ошибка начисления бонуса chatID %d: %v", targetID, err)
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}
	bh.Deps.SessionManager.Clear(ev.ChatID)

	if bonus == 0 {
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_bonus_zero", nil))
		bh.sendAdminUserCard(ev.ChatID, 0, targetID)
		return
	}

	bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_bonus_success", map[string]string{
		"old_balance": utils.FormatNumber(newBalance - bonus),
		"percent":     utils.FormatNumber(int64(percent)),
		"bonus":       utils.FormatNumber(bonus),
		"new_balance": utils.FormatNumber(newBalance),
	}))

	targetLocale := bh.localeOf(targetID)
	bh.sendText(targetID, t(targetLocale, "bonus_received", map[string]string{
		"bonus":   utils.FormatNumber(bonus),
		"balance": utils.FormatNumber(newBalance),
	}))

	bh.sendAdminUserCard(ev.ChatID, 0, targetID)
}

func (bh *BotHandler) processAdminDeductAmount(ev Event) {
	targetID := bh.Deps.SessionManager.GetData(ev.ChatID).AdminTargetChatID
	if targetID == 0 {
		bh.Deps.SessionManager.Clear(ev.ChatID)
		bh.sendAdminPanel(ev.ChatID, 0)
		return
	}

	target, ok := bh.getAccount(targetID)
	if !ok {
		bh.Deps.SessionManager.Clear(ev.ChatID)
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_user_not_found", nil))
		return
	}

	amount, err := utils.ParseDeductAmount(ev.Text, target.Balance)
	if err != nil {
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_deduct_invalid", nil))
		return
	}

	newBalance, err := bh.Deps.Store.PostTransaction(targetID, 0, 0, -amount, constants.ENTRY_KIND_ADMIN_DEDUCT)
	if err != nil {
		if errors.Is(err, db.ErrInsufficientBalance) {
			// Баланс изменился между проверкой и транзакцией.
			bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_deduct_too_much", map[string]string{
				"balance": utils.FormatNumber(target.Balance),
			}))
			return
		}
		log.Printf("processAdminDeductAmount: ошибка вычета chatID %d: %v", targetID, err)
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}
	bh.Deps.SessionManager.Clear(ev.ChatID)

	bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_deduct_success", map[string]string{
		"old_balance": utils.FormatNumber(newBalance + amount),
		"amount":      utils.FormatNumber(amount),
		"new_balance": utils.FormatNumber(newBalance),
	}))
	bh.sendAdminUserCard(ev.ChatID, 0, targetID)
}

// processBroadcastContent запоминает содержимое рассылки и просит
// подтверждение. Принимаются текст, фото и видео.
func (bh *BotHandler) processBroadcastContent(ev Event) {
	var kind, content, caption string
	switch ev.Kind {
	case EventText:
		kind, content = broadcast.KindText, ev.Text
	case EventPhoto:
		kind, content, caption = broadcast.KindPhoto, ev.PhotoFileID, ev.Caption
	case EventVideo:
		kind, content, caption = broadcast.KindVideo, ev.VideoFileID, ev.Caption
	default:
		bh.sendText(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_broadcast_title", nil))
		return
	}

	bh.Deps.SessionManager.UpdateData(ev.ChatID, func(data *session.Data) {
		data.BroadcastKind = kind
		data.BroadcastContent = content
		data.BroadcastCaption = caption
	})
	bh.Deps.SessionManager.SetState(ev.ChatID, constants.STATE_ADMIN_BROADCAST_CONFIRM)

	bh.sendWithKeyboard(ev.ChatID, t(constants.DEFAULT_LOCALE, "admin_broadcast_ask", nil), broadcastConfirmKeyboard())
}
