// Файл: internal/handlers/claim_handlers.go
// Поток заявки на кешбэк: прием суммы и фото, пересылка администратору,
// обработка решения по кнопкам.

package handlers

import (
	"errors"
	"log"
	"strconv"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"spkbot/internal/claims"
	"spkbot/internal/constants"
	"spkbot/internal/session"
	"spkbot/internal/telegram_api"
	"spkbot/internal/utils"
)

// processClaimAmount проверяет введенную сумму покупки.
func (bh *BotHandler) processClaimAmount(ev Event) {
	locale := bh.localeOf(ev.ChatID)

	amount, err := utils.ParseClaimAmount(ev.Text)
	if err != nil {
		bh.sendText(ev.ChatID, t(locale, "invalid_amount", nil))
		return
	}

	bh.Deps.SessionManager.UpdateData(ev.ChatID, func(data *session.Data) {
		data.ClaimAmount = amount
	})
	bh.Deps.SessionManager.SetState(ev.ChatID, constants.STATE_CLAIM_PHOTO)
	bh.sendText(ev.ChatID, t(locale, "claim_photo_prompt", nil))
}

// processClaimPhoto принимает фото чека/товара и пересылает заявку
// администратору. Заявка попадает в реестр только если пересылка удалась.
func (bh *BotHandler) processClaimPhoto(ev Event) {
	locale := bh.localeOf(ev.ChatID)

	if ev.Kind != EventPhoto {
		bh.sendText(ev.ChatID, t(locale, "claim_photo_only", nil))
		return
	}

	data := bh.Deps.SessionManager.GetData(ev.ChatID)
	if data.ClaimAmount <= 0 {
		// Сумма потеряна (например, сессия истекла) — начинаем заново.
		bh.sendCashbackPrompt(ev.ChatID, 0)
		return
	}

	user, ok := bh.getAccount(ev.ChatID)
	if !ok {
		bh.sendText(ev.ChatID, t(locale, "admin_error", nil))
		return
	}

	claim := bh.Deps.Claims.Add(ev.ChatID, data.ClaimAmount, ev.PhotoFileID)

	caption := t(constants.DEFAULT_LOCALE, "claim_admin_caption", map[string]string{
		"name":    user.DisplayName(),
		"user_id": strconv.FormatInt(ev.ChatID, 10),
		"phone":   user.Phone.String,
		"amount":  utils.FormatNumber(data.ClaimAmount),
	})

	photo := tgbotapi.NewPhoto(bh.Deps.Config.AdminChatID, tgbotapi.FileID(ev.PhotoFileID))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = claimDecisionKeyboard(claim.Token)

	if _, err := bh.Deps.BotClient.Send(photo); err != nil {
		log.Printf("processClaimPhoto: ошибка пересылки заявки %s администратору: %v", claim.Token, err)
		bh.Deps.Claims.Remove(claim.Token)
		bh.Deps.SessionManager.Clear(ev.ChatID)
		bh.sendText(ev.ChatID, t(locale, "claim_send_failed", nil))
		return
	}

	bh.Deps.SessionManager.Clear(ev.ChatID)
	bh.sendText(ev.ChatID, t(locale, "claim_sent", nil))
}

// handleClaimApprove обрабатывает нажатие "Tasdiqlash" под заявкой.
func (bh *BotHandler) handleClaimApprove(ev Event, token string) {
	decision, err := bh.Deps.ClaimWorkflow.Approve(token)
	if err != nil {
		if errors.Is(err, claims.ErrClaimNotFound) {
			// Повторное нажатие или заявка другого запуска процесса.
			bh.answerCallback(ev.CallbackID, t(constants.DEFAULT_LOCALE, "admin_claim_resolved", nil), true)
			return
		}
		log.Printf("handleClaimApprove: ошибка проводки по заявке %s: %v", token, err)
		bh.answerCallback(ev.CallbackID, t(constants.DEFAULT_LOCALE, "admin_error", nil), true)
		return
	}
	bh.answerCallback(ev.CallbackID, "", false)

	// Приписываем итог к подписи заявки и убираем кнопки.
	bh.annotateClaimMessage(ev, t(constants.DEFAULT_LOCALE, "admin_claim_approved", map[string]string{
		"cashback": utils.FormatNumber(decision.Cashback),
		"percent":  utils.FormatNumber(int64(decision.Percent)),
	}))

	claimantLocale := bh.localeOf(decision.Claim.ClaimantID)
	bh.sendText(decision.Claim.ClaimantID, t(claimantLocale, "claim_approved", map[string]string{
		"amount":   utils.FormatNumber(decision.Claim.Amount),
		"percent":  utils.FormatNumber(int64(decision.Percent)),
		"cashback": utils.FormatNumber(decision.Cashback),
		"balance":  utils.FormatNumber(decision.NewBalance),
	}))
}

// handleClaimReject обрабатывает нажатие "Bekor qilish" под заявкой.
func (bh *BotHandler) handleClaimReject(ev Event, token string) {
	claim, err := bh.Deps.ClaimWorkflow.Reject(token)
	if err != nil {
		bh.answerCallback(ev.CallbackID, t(constants.DEFAULT_LOCALE, "admin_claim_resolved", nil), true)
		return
	}
	bh.answerCallback(ev.CallbackID, "", false)

	bh.annotateClaimMessage(ev, t(constants.DEFAULT_LOCALE, "admin_claim_rejected", nil))

	claimantLocale := bh.localeOf(claim.ClaimantID)
	bh.sendText(claim.ClaimantID, t(claimantLocale, "claim_rejected", nil))
}

// annotateClaimMessage дописывает итог решения к подписи сообщения с
// заявкой. Ошибка не критична: проводка уже выполнена.
func (bh *BotHandler) annotateClaimMessage(ev Event, suffix string) {
	if err := telegram_api.AppendToCaption(bh.Deps.BotClient, ev.ChatID, ev.MessageID, ev.Caption, suffix); err != nil {
		log.Printf("annotateClaimMessage: ошибка редактирования подписи заявки: %v", err)
	}
}

// answerCallback закрывает "часики" на кнопке.
func (bh *BotHandler) answerCallback(callbackID, text string, showAlert bool) {
	telegram_api.AnswerCallback(bh.Deps.BotClient, callbackID, text, showAlert)
}
