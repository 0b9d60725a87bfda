package broadcast

import (
	"context"
	"log"
	"time"
)

// Виды рассылаемого сообщения.
const (
	KindText  = "text"
	KindPhoto = "photo"
	KindVideo = "video"
)

// Message — одно сообщение рассылки: текст либо file_id вложения с подписью.
type Message struct {
	Kind    string
	Content string
	Caption string
}

// Report — итог рассылки. Счётчики независимы: неудачная доставка одному
// получателю не прерывает обход списка.
type Report struct {
	Sent   int
	Failed int
}

// Sender — срез шлюза, нужный рассылке.
type Sender interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, fileID, caption string) error
	SendVideo(chatID int64, fileID, caption string) error
}

// Dispatcher последовательно доставляет одно сообщение всем получателям.
// Пауза между отправками сглаживает нагрузку на Telegram API; это
// механизм backpressure, а не условие корректности.
type Dispatcher struct {
	sender Sender
	delay  time.Duration
}

// NewDispatcher создает Dispatcher с заданной паузой между отправками.
func NewDispatcher(sender Sender, delay time.Duration) *Dispatcher {
	return &Dispatcher{sender: sender, delay: delay}
}

// Run обходит получателей и возвращает счётчики успехов и неудач.
// Отмена контекста прекращает дальнейшие отправки; уже отправленное
// не откатывается. Неудачи логируются и считаются, повторов нет.
func (d *Dispatcher) Run(ctx context.Context, recipients []int64, msg Message) Report {
	var report Report
	for i, chatID := range recipients {
		if ctx.Err() != nil {
			log.Printf("broadcast.Run: рассылка отменена после %d из %d получателей.", i, len(recipients))
			return report
		}

		var err error
		switch msg.Kind {
		case KindPhoto:
			err = d.sender.SendPhoto(chatID, msg.Content, msg.Caption)
		case KindVideo:
			err = d.sender.SendVideo(chatID, msg.Content, msg.Caption)
		default:
			err = d.sender.SendText(chatID, msg.Content)
		}
		if err != nil {
			report.Failed++
			log.Printf("broadcast.Run: ошибка доставки chatID %d: %v", chatID, err)
		} else {
			report.Sent++
		}

		if d.delay > 0 && i < len(recipients)-1 {
			select {
			case <-ctx.Done():
				log.Printf("broadcast.Run: рассылка отменена после %d из %d получателей.", i+1, len(recipients))
				return report
			case <-time.After(d.delay):
			}
		}
	}
	log.Printf("broadcast.Run: рассылка завершена, отправлено %d, не доставлено %d.", report.Sent, report.Failed)
	return report
}
