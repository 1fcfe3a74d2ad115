package telegramnotifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/tucnak/telebot.v2"

	"github.com/ladderbot/ladderbot/pkg/types"
)

type sent struct {
	chatID int64
	what   interface{}
}

type fakeSender struct {
	sentC chan sent
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, options ...interface{}) (*telebot.Message, error) {
	f.sentC <- sent{chatID: to.(*telebot.Chat).ID, what: what}
	return &telebot.Message{}, nil
}

type plainText string

func (p plainText) PlainText() string { return string(p) }

func receive(t *testing.T, sender *fakeSender) sent {
	select {
	case s := <-sender.sentC:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("telegram message was not sent")
	}
	return sent{}
}

func TestNotifier_Notify(t *testing.T) {
	sender := &fakeSender{sentC: make(chan sent, 10)}
	notifier := New(sender, 4242)

	notifier.Notify("Moving Stop Loss (%d), symbol=%s", 2, "BTCUSDT")
	s := receive(t, sender)
	assert.Equal(t, int64(4242), s.chatID)
	assert.Equal(t, "Moving Stop Loss (2), symbol=BTCUSDT", s.what)

	notifier.Notify("order %s", "BTCUSDT", plainText("details"), &types.SubmitOrder{Symbol: "BTCUSDT"})
	assert.Equal(t, "order BTCUSDT", receive(t, sender).what)
	assert.Equal(t, "details", receive(t, sender).what)
}
