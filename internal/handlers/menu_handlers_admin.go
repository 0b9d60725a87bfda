// Файл: internal/handlers/menu_handlers_admin.go
// Экраны административной панели: пользователи, операции над балансом,
// статистика, Excel-отчет и рассылка.

package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/xuri/excelize/v2"

	"spkbot/internal/broadcast"
	"spkbot/internal/constants"
	"spkbot/internal/session"
	"spkbot/internal/utils"
)

func broadcastConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Ha / Да", constants.CALLBACK_BROADCAST_CONFIRM),
			tgbotapi.NewInlineKeyboardButtonData("❌ Yo'q / Нет", constants.CALLBACK_BROADCAST_CANCEL),
		),
	)
}

// sendAdminPanel показывает главное меню администратора.
func (bh *BotHandler) sendAdminPanel(chatID int64, messageIDToEdit int) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_IDLE)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Foydalanuvchilar", constants.CALLBACK_ADMIN_USERS),
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistika", constants.CALLBACK_ADMIN_STATS),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📢 Xabar yuborish", constants.CALLBACK_ADMIN_BROADCAST),
			tgbotapi.NewInlineKeyboardButtonData("📑 Excel hisobot", constants.CALLBACK_ADMIN_EXCEL),
		),
	)
	bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_panel", nil), &keyboard)
}

// sendAdminUsersList показывает список зарегистрированных пользователей,
// по кнопке на пользователя.
func (bh *BotHandler) sendAdminUsersList(chatID int64, messageIDToEdit int) {
	users, err := bh.Deps.Store.ListRegistered()
	if err != nil {
		log.Printf("sendAdminUsersList: ошибка чтения списка пользователей: %v", err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	if len(users) == 0 {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Admin Panel", constants.CALLBACK_ADMIN_MAIN),
			),
		)
		bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_no_users", nil), &keyboard)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, user := range users {
		label := fmt.Sprintf("%s — %s so'm", user.DisplayName(), utils.FormatNumber(user.Balance))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, constants.CALLBACK_PREFIX_ADMIN_USER+strconv.FormatInt(user.ChatID, 10)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Admin Panel", constants.CALLBACK_ADMIN_MAIN),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_users_title", nil), &keyboard)
}

// sendAdminUserCard показывает карточку пользователя с операциями.
func (bh *BotHandler) sendAdminUserCard(chatID int64, messageIDToEdit int, targetID int64) {
	target, ok := bh.getAccount(targetID)
	if !ok {
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_user_not_found", nil))
		return
	}

	text := t(constants.DEFAULT_LOCALE, "admin_user_info", map[string]string{
		"name":    target.DisplayName(),
		"phone":   target.Phone.String,
		"balance": utils.FormatNumber(target.Balance),
		"user_id": strconv.FormatInt(targetID, 10),
	})

	id := strconv.FormatInt(targetID, 10)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "admin_bonus_button", nil), constants.CALLBACK_PREFIX_ADMIN_BONUS+id),
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "admin_deduct_button", nil), constants.CALLBACK_PREFIX_ADMIN_DEDUCT+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "admin_reset_button", nil), constants.CALLBACK_PREFIX_ADMIN_RESET+id),
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "admin_history_button", nil), constants.CALLBACK_PREFIX_ADMIN_HISTORY+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "admin_delete_button", nil), constants.CALLBACK_PREFIX_ADMIN_DELETE+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "admin_back_to_users", nil), constants.CALLBACK_ADMIN_USERS),
		),
	)
	bh.editOrSend(chatID, messageIDToEdit, text, &keyboard)
}

// startAdminBonus переводит администратора в режим ввода процента бонуса.
func (bh *BotHandler) startAdminBonus(chatID int64, messageIDToEdit int, targetID int64) {
	bh.Deps.SessionManager.UpdateData(chatID, func(data *session.Data) {
		data.AdminTargetChatID = targetID
	})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_BONUS_PERCENT)
	bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_enter_percent", nil), nil)
}

// startAdminDeduct переводит администратора в режим ввода суммы вычета.
func (bh *BotHandler) startAdminDeduct(chatID int64, messageIDToEdit int, targetID int64) {
	target, ok := bh.getAccount(targetID)
	if !ok {
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_user_not_found", nil))
		return
	}
	bh.Deps.SessionManager.UpdateData(chatID, func(data *session.Data) {
		data.AdminTargetChatID = targetID
	})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_DEDUCT_AMOUNT)
	bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_deduct_title", map[string]string{
		"balance": utils.FormatNumber(target.Balance),
	}), nil)
}

// handleAdminReset обнуляет баланс и историю пользователя.
func (bh *BotHandler) handleAdminReset(chatID int64, messageIDToEdit int, targetID int64) {
	if err := bh.Deps.Store.ResetAccount(targetID); err != nil {
		log.Printf("handleAdminReset: ошибка обнуления chatID %d: %v", targetID, err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}
	bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_reset_success", nil))
	bh.sendAdminUserCard(chatID, messageIDToEdit, targetID)
}

// sendAdminDeleteConfirm спрашивает подтверждение удаления аккаунта.
func (bh *BotHandler) sendAdminDeleteConfirm(chatID int64, messageIDToEdit int, targetID int64) {
	id := strconv.FormatInt(targetID, 10)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Ha", constants.CALLBACK_PREFIX_DELETE_YES+id),
			tgbotapi.NewInlineKeyboardButtonData("❌ Yo'q", constants.CALLBACK_PREFIX_DELETE_NO+id),
		),
	)
	bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_delete_confirm", nil), &keyboard)
}

// handleAdminDeleteYes удаляет аккаунт вместе с историей.
func (bh *BotHandler) handleAdminDeleteYes(chatID int64, messageIDToEdit int, targetID int64) {
	if err := bh.Deps.Store.DeleteAccount(targetID); err != nil {
		log.Printf("handleAdminDeleteYes: ошибка удаления chatID %d: %v", targetID, err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}
	bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_delete_success", nil))
	bh.sendAdminUsersList(chatID, messageIDToEdit)
}

func (bh *BotHandler) handleAdminDeleteNo(chatID int64, messageIDToEdit int, targetID int64) {
	bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_delete_cancel", nil))
	bh.sendAdminUserCard(chatID, messageIDToEdit, targetID)
}

// sendAdminUserHistory показывает историю проводок пользователя.
func (bh *BotHandler) sendAdminUserHistory(chatID int64, messageIDToEdit int, targetID int64) {
	entries, err := bh.Deps.Store.History(targetID)
	if err != nil {
		log.Printf("sendAdminUserHistory: ошибка чтения истории chatID %d: %v", targetID, err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	id := strconv.FormatInt(targetID, 10)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t(constants.DEFAULT_LOCALE, "menu_back", nil), constants.CALLBACK_PREFIX_ADMIN_USER+id),
		),
	)

	if len(entries) == 0 {
		bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_history_empty", nil), &keyboard)
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(t(constants.DEFAULT_LOCALE, "history_item", map[string]string{
			"date":    utils.FormatDate(e.CreatedAt),
			"amount":  utils.FormatNumber(e.Amount),
			"percent": strconv.Itoa(e.Percent),
			"delta":   utils.FormatSignedNumber(e.Delta),
			"type":    t(constants.DEFAULT_LOCALE, "type_"+e.Kind, nil),
		}))
	}
	bh.editOrSend(chatID, messageIDToEdit, sb.String(), &keyboard)
}

// sendAdminStats показывает агрегированную статистику и срез за 7 дней.
func (bh *BotHandler) sendAdminStats(chatID int64, messageIDToEdit int) {
	stats, err := bh.Deps.Store.AggregateStats()
	if err != nil {
		log.Printf("sendAdminStats: ошибка агрегации статистики: %v", err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	var sb strings.Builder
	sb.WriteString(t(constants.DEFAULT_LOCALE, "admin_stats_title", nil))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("👥 Foydalanuvchilar: <b>%d</b>\n", stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("🆕 Bugun qo'shilganlar: <b>%d</b>\n", stats.TodayUsers))
	sb.WriteString(fmt.Sprintf("💰 Umumiy balans: <b>%s so'm</b>\n", utils.FormatNumber(stats.TotalBalance)))
	sb.WriteString(fmt.Sprintf("🧾 Tranzaksiyalar: <b>%d</b>\n", stats.TotalTransactions))
	sb.WriteString(fmt.Sprintf("💸 Berilgan cashback: <b>%s so'm</b>\n", utils.FormatNumber(stats.TotalCashbackGiven)))

	if len(stats.Last7Days) > 0 {
		sb.WriteString("\n")
		sb.WriteString(t(constants.DEFAULT_LOCALE, "admin_stats_weekly", nil))
		sb.WriteString("\n")
		for _, day := range stats.Last7Days {
			sb.WriteString(fmt.Sprintf("  %s — %d\n", day.Date.Format("02.01.2006"), day.Count))
		}
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Admin Panel", constants.CALLBACK_ADMIN_MAIN),
		),
	)
	bh.editOrSend(chatID, messageIDToEdit, sb.String(), &keyboard)
}

// generateAndSendUsersExcel выгружает всех пользователей в xlsx и
// отправляет файл администратору.
func (bh *BotHandler) generateAndSendUsersExcel(chatID int64) {
	users, err := bh.Deps.Store.ListRegistered()
	if err != nil {
		log.Printf("generateAndSendUsersExcel: ошибка получения данных пользователей: %v", err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	f := excelize.NewFile()
	sheetName := "Foydalanuvchilar"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Chat ID", "Ism", "Telefon", "Til", "Balans", "Takliflar soni", "Ro'yxatdan o'tgan sana"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, user := range users {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), user.ChatID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), user.DisplayName())
		if user.Phone.Valid {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), user.Phone.String)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), user.Locale)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), user.Balance)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), user.ReferralCount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), user.CreatedAt.Format("02.01.2006 15:04"))
		rowIndex++
	}

	filePath := fmt.Sprintf("users_report_%s.xlsx", time.Now().Format("20060102_150405"))
	if errSave := f.SaveAs(filePath); errSave != nil {
		log.Printf("generateAndSendUsersExcel: ошибка сохранения Excel файла: %v", errSave)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = fmt.Sprintf("Foydalanuvchilar hisoboti, %s", time.Now().Format("02.01.2006"))
	if _, err := bh.Deps.BotClient.Send(doc); err != nil {
		log.Printf("generateAndSendUsersExcel: ошибка отправки Excel файла %s: %v", filePath, err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
	}

	// Временный файл больше не нужен.
	if errRemove := os.Remove(filePath); errRemove != nil {
		log.Printf("generateAndSendUsersExcel: ошибка удаления временного файла %s: %v", filePath, errRemove)
	}
}

// startBroadcast переводит администратора в режим ввода содержимого рассылки.
func (bh *BotHandler) startBroadcast(chatID int64, messageIDToEdit int) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_BROADCAST_CONTENT)
	bh.editOrSend(chatID, messageIDToEdit, t(constants.DEFAULT_LOCALE, "admin_broadcast_title", nil), nil)
}

// runBroadcast запускает подтвержденную рассылку в фоне и по завершении
// отчитывается количеством доставленных и недоставленных сообщений.
func (bh *BotHandler) runBroadcast(chatID int64) {
	data := bh.Deps.SessionManager.GetData(chatID)
	if data.BroadcastKind == "" {
		bh.Deps.SessionManager.Clear(chatID)
		bh.sendAdminPanel(chatID, 0)
		return
	}

	users, err := bh.Deps.Store.ListRegistered()
	if err != nil {
		log.Printf("runBroadcast: ошибка получения получателей: %v", err)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_error", nil))
		return
	}

	recipients := make([]int64, 0, len(users))
	for _, user := range users {
		recipients = append(recipients, user.ChatID)
	}

	msg := broadcast.Message{
		Kind:    data.BroadcastKind,
		Content: data.BroadcastContent,
		Caption: data.BroadcastCaption,
	}
	bh.Deps.SessionManager.Clear(chatID)

	ctx, cancel := context.WithCancel(context.Background())
	bh.setBroadcastCancel(cancel)

	go func() {
		defer cancel()
		report := bh.Deps.Broadcaster.Run(ctx, recipients, msg)
		bh.setBroadcastCancel(nil)
		bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_broadcast_sent", map[string]string{
			"sent":   strconv.Itoa(report.Sent),
			"failed": strconv.Itoa(report.Failed),
		}))
	}()
}

// cancelBroadcastFlow отменяет рассылку: как еще не подтвержденную, так
// и уже идущую.
func (bh *BotHandler) cancelBroadcastFlow(chatID int64) {
	bh.stopBroadcast()
	bh.Deps.SessionManager.Clear(chatID)
	bh.sendText(chatID, t(constants.DEFAULT_LOCALE, "admin_broadcast_cancel", nil))
	bh.sendAdminPanel(chatID, 0)
}
