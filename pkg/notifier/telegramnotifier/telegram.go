package telegramnotifier

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/tucnak/telebot.v2"

	"github.com/ladderbot/ladderbot/pkg/types"
)

var log = logrus.WithField("service", "telegram")

// telegram allows about one message per second to the same chat
var limiter = rate.NewLimiter(rate.Every(1*time.Second), 3)

// Sender is the part of *telebot.Bot the notifier needs.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, options ...interface{}) (*telebot.Message, error)
}

type Notifier struct {
	sender Sender
	chat   telebot.Recipient

	taskC chan string
}

type NotifyOption func(notifier *Notifier)

// New starts the delivery worker. Messages are sent to the chat in order.
func New(sender Sender, chatID int64, options ...NotifyOption) *Notifier {
	notifier := &Notifier{
		sender: sender,
		chat:   &telebot.Chat{ID: chatID},
		taskC:  make(chan string, 100),
	}

	for _, o := range options {
		o(notifier)
	}

	go notifier.worker()

	return notifier
}

func (n *Notifier) worker() {
	ctx := context.Background()
	for message := range n.taskC {
		_ = limiter.Wait(ctx)

		if _, err := n.sender.Send(n.chat, message); err != nil {
			log.WithError(err).Error("failed to send telegram message")
		}
	}
}

func (n *Notifier) Notify(obj interface{}, args ...interface{}) {
	var texts []string
	var textArgsOffset = -1

	for idx, arg := range args {
		switch a := arg.(type) {

		case types.PlainText:
			texts = append(texts, a.PlainText())
			if textArgsOffset == -1 {
				textArgsOffset = idx
			}

		case types.SlackAttachmentCreator:
			if textArgsOffset == -1 {
				textArgsOffset = idx
			}
		}
	}

	var simpleArgs = args
	if textArgsOffset > -1 {
		simpleArgs = args[:textArgsOffset]
	}

	var message string
	switch a := obj.(type) {
	case string:
		message = fmt.Sprintf(a, simpleArgs...)

	case types.PlainText:
		message = a.PlainText()

	case fmt.Stringer:
		message = a.String()

	default:
		log.Errorf("telegram message conversion error, unsupported object: %T %+v", a, a)
		return
	}

	for _, text := range append([]string{message}, texts...) {
		select {
		case n.taskC <- text:
		case <-time.After(50 * time.Millisecond):
			log.Warnf("telegram queue is full, message dropped: %s", text)
			return
		}
	}
}
