package telegram_api

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendOrEditMessage пытается отредактировать существующее сообщение или
// отправляет новое. "message is not modified" не считается ошибкой.
// Возвращает отправленное сообщение (для последующих редактирований).
func SendOrEditMessage(
	botClient *BotClient,
	chatID int64,
	messageIDToTryEdit int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	if botClient == nil || botClient.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}

	if messageIDToTryEdit != 0 {
		var editMsg tgbotapi.EditMessageTextConfig
		if keyboard != nil {
			editMsg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageIDToTryEdit, text, *keyboard)
		} else {
			editMsg = tgbotapi.NewEditMessageText(chatID, messageIDToTryEdit, text)
		}
		editMsg.ParseMode = tgbotapi.ModeHTML

		_, err := botClient.Request(editMsg)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			placeholder := tgbotapi.Message{MessageID: messageIDToTryEdit}
			placeholder.Chat.ID = chatID
			return placeholder, nil
		}
		if !strings.Contains(err.Error(), "message to edit not found") {
			log.Printf("SendOrEditMessage: ошибка редактирования сообщения chatID=%d, MessageID=%d: %v. Будет отправлено новое.",
				chatID, messageIDToTryEdit, err)
		}
	}

	newMsg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		newMsg.ReplyMarkup = keyboard
	}
	newMsg.ParseMode = tgbotapi.ModeHTML

	sent, err := botClient.Send(newMsg)
	if err != nil {
		log.Printf("SendOrEditMessage: ошибка отправки нового сообщения для chatID %d: %v", chatID, err)
		return tgbotapi.Message{}, err
	}
	return sent, nil
}

// AppendToCaption дописывает строку к подписи сообщения (аннотация решения
// администратора на пересланной заявке).
func AppendToCaption(botClient *BotClient, chatID int64, messageID int, currentCaption, suffix string) error {
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, currentCaption+"\n\n"+suffix)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := botClient.Request(edit)
	if err != nil && !strings.Contains(err.Error(), "message is not modified") {
		log.Printf("AppendToCaption: ошибка редактирования подписи chatID=%d, MessageID=%d: %v", chatID, messageID, err)
		return err
	}
	return nil
}

// AnswerCallback отвечает на callback query (с алертом или без).
func AnswerCallback(botClient *BotClient, queryID, text string, showAlert bool) {
	answer := tgbotapi.NewCallback(queryID, text)
	answer.ShowAlert = showAlert
	if _, err := botClient.Request(answer); err != nil {
		log.Printf("AnswerCallback: ошибка ответа на CallbackQuery %s: %v", queryID, err)
	}
}
