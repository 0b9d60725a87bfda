package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sentItem struct {
	chatID int64
	kind   string
}

// fakeSender отказывает в доставке перечисленным получателям.
type fakeSender struct {
	failFor map[int64]bool
	sent    []sentItem
}

func (f *fakeSender) deliver(chatID int64, kind string) error {
	if f.failFor[chatID] {
		return errors.New("blocked")
	}
	f.sent = append(f.sent, sentItem{chatID, kind})
	return nil
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	return f.deliver(chatID, KindText)
}

func (f *fakeSender) SendPhoto(chatID int64, fileID, caption string) error {
	return f.deliver(chatID, KindPhoto)
}

func (f *fakeSender) SendVideo(chatID int64, fileID, caption string) error {
	return f.deliver(chatID, KindVideo)
}

func TestRunCountsSentAndFailed(t *testing.T) {
	sender := &fakeSender{failFor: map[int64]bool{2: true, 4: true}}
	dispatcher := NewDispatcher(sender, 0)

	report := dispatcher.Run(context.Background(), []int64{1, 2, 3, 4, 5}, Message{Kind: KindText, Content: "salom"})

	assert.Equal(t, 3, report.Sent)
	assert.Equal(t, 2, report.Failed)
	// Неудачные получатели не прерывают обход.
	assert.Equal(t, []sentItem{{1, KindText}, {3, KindText}, {5, KindText}}, sender.sent)
}

func TestRunDispatchesByKind(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender, 0)

	dispatcher.Run(context.Background(), []int64{1}, Message{Kind: KindPhoto, Content: "file-id", Caption: "rasm"})
	dispatcher.Run(context.Background(), []int64{1}, Message{Kind: KindVideo, Content: "file-id"})
	dispatcher.Run(context.Background(), []int64{1}, Message{Kind: KindText, Content: "matn"})

	assert.Equal(t, []sentItem{{1, KindPhoto}, {1, KindVideo}, {1, KindText}}, sender.sent)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := dispatcher.Run(ctx, []int64{1, 2, 3}, Message{Kind: KindText, Content: "matn"})

	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, sender.sent)
}

func TestRunEmptyRecipientList(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender, 0)

	report := dispatcher.Run(context.Background(), nil, Message{Kind: KindText, Content: "matn"})

	assert.Equal(t, Report{}, report)
}
