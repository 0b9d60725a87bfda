package handlers

import (
	"errors"
	"log"
	"sync"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"spkbot/internal/broadcast"
	"spkbot/internal/claims"
	"spkbot/internal/config"
	"spkbot/internal/constants"
	"spkbot/internal/db"
	"spkbot/internal/models"
	"spkbot/internal/referral"
	"spkbot/internal/session"
	"spkbot/internal/telegram_api"
	"spkbot/internal/texts"
)

// HandlerDependencies содержит все зависимости, необходимые обработчикам.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.Manager
	Store          *db.Store
	Claims         *claims.Registry
	ClaimWorkflow  *claims.Workflow
	Referrals      *referral.Engine
	Broadcaster    *broadcast.Dispatcher
}

// BotHandler инкапсулирует обработку входящих сообщений и коллбэков.
type BotHandler struct {
	Deps HandlerDependencies

	// Отмена активной рассылки. Каждое обновление обрабатывается в своей
	// горутине, поэтому доступ только под мьютексом.
	broadcastMu     sync.Mutex
	cancelBroadcast func()
}

// NewBotHandler создает BotHandler и проверяет зависимости.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.SessionManager == nil ||
		deps.Store == nil || deps.Claims == nil || deps.ClaimWorkflow == nil ||
		deps.Referrals == nil || deps.Broadcaster == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// setBroadcastCancel запоминает функцию отмены активной рассылки.
func (bh *BotHandler) setBroadcastCancel(cancel func()) {
	bh.broadcastMu.Lock()
	bh.cancelBroadcast = cancel
	bh.broadcastMu.Unlock()
}

// stopBroadcast снимает и вызывает функцию отмены активной рассылки,
// если она есть. Повторный вызов — no-op.
func (bh *BotHandler) stopBroadcast() {
	bh.broadcastMu.Lock()
	cancel := bh.cancelBroadcast
	bh.cancelBroadcast = nil
	bh.broadcastMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// isAdmin проверяет, что отправитель — сконфигурированный администратор.
func (bh *BotHandler) isAdmin(chatID int64) bool {
	return chatID == bh.Deps.Config.AdminChatID
}

// senderRole возвращает роль отправителя для классификации событий.
func (bh *BotHandler) senderRole(chatID int64) string {
	if bh.isAdmin(chatID) {
		return constants.ROLE_ADMIN
	}
	return constants.ROLE_USER
}

// getAccount извлекает аккаунт из БД; false, если аккаунта нет или БД недоступна.
func (bh *BotHandler) getAccount(chatID int64) (models.User, bool) {
	user, err := bh.Deps.Store.GetAccount(chatID)
	if err != nil {
		if !errors.Is(err, db.ErrAccountNotFound) {
			log.Printf("Ошибка получения аккаунта %d из БД: %v", chatID, err)
		}
		return models.User{}, false
	}
	return user, true
}

// localeOf возвращает локаль аккаунта или локаль по умолчанию.
func (bh *BotHandler) localeOf(chatID int64) string {
	if user, ok := bh.getAccount(chatID); ok && user.Locale != "" {
		return user.Locale
	}
	return constants.DEFAULT_LOCALE
}

// sendText отправляет HTML-сообщение без клавиатуры, логируя ошибку.
func (bh *BotHandler) sendText(chatID int64, text string) {
	if err := bh.Deps.BotClient.SendText(chatID, text); err != nil {
		log.Printf("sendText: ошибка отправки chatID %d: %v", chatID, err)
	}
}

// sendWithKeyboard отправляет HTML-сообщение с inline-клавиатурой.
func (bh *BotHandler) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("sendWithKeyboard: ошибка отправки chatID %d: %v", chatID, err)
	}
}

// editOrSend редактирует указанное сообщение или шлет новое.
func (bh *BotHandler) editOrSend(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	if _, err := telegram_api.SendOrEditMessage(bh.Deps.BotClient, chatID, messageID, text, keyboard); err != nil {
		log.Printf("editOrSend: ошибка для chatID %d: %v", chatID, err)
	}
}

// t — сокращение для texts.T.
func t(locale, key string, params map[string]string) string {
	return texts.T(locale, key, params)
}
