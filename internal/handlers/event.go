package handlers

import (
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// EventKind — вид входящего события после классификации.
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventContact
	EventPhoto
	EventVideo
	EventCallback
	EventOther
)

// Event — типизированное входящее событие. Сырые обновления Telegram
// приводятся к нему до того, как попадут в маршрутизацию по состояниям:
// дальше никто не разбирает форму сообщения заново.
type Event struct {
	Kind      EventKind
	ChatID    int64
	MessageID int
	Role      string

	Command        string // без слэша
	CommandPayload string // аргумент команды (реферальная нагрузка /start)

	Text    string
	Caption string

	PhotoFileID  string
	VideoFileID  string
	ContactPhone string

	CallbackID   string
	CallbackData string

	SenderName string
}

// classify приводит обновление Telegram к типизированному событию.
// Возвращает false для обновлений, которые бот не обрабатывает.
func (bh *BotHandler) classify(update tgbotapi.Update) (Event, bool) {
	if update.CallbackQuery != nil {
		q := update.CallbackQuery
		if q.Message == nil {
			return Event{}, false
		}
		return Event{
			Kind:         EventCallback,
			ChatID:       q.Message.Chat.ID,
			MessageID:    q.Message.MessageID,
			Role:         bh.senderRole(q.From.ID),
			Caption:      q.Message.Caption,
			CallbackID:   q.ID,
			CallbackData: q.Data,
			SenderName:   q.From.FirstName,
		}, true
	}

	if update.Message == nil {
		return Event{}, false
	}
	m := update.Message

	ev := Event{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Role:      bh.senderRole(m.Chat.ID),
		Caption:   m.Caption,
	}
	if m.From != nil {
		ev.SenderName = strings.TrimSpace(m.From.FirstName + " " + m.From.LastName)
	}

	switch {
	case m.IsCommand():
		ev.Kind = EventCommand
		ev.Command = m.Command()
		ev.CommandPayload = m.CommandArguments()
	case m.Contact != nil:
		ev.Kind = EventContact
		ev.ContactPhone = m.Contact.PhoneNumber
	case len(m.Photo) > 0:
		ev.Kind = EventPhoto
		// Последний элемент — максимальное разрешение.
		ev.PhotoFileID = m.Photo[len(m.Photo)-1].FileID
	case m.Video != nil:
		ev.Kind = EventVideo
		ev.VideoFileID = m.Video.FileID
	case m.Text != "":
		ev.Kind = EventText
		ev.Text = strings.TrimSpace(m.Text)
	default:
		ev.Kind = EventOther
	}
	return ev, true
}
