package slacklog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"golang.org/x/time/rate"

	"github.com/ladderbot/ladderbot/pkg/slack/slackstyle"
)

var limiter = rate.NewLimiter(rate.Every(time.Minute), 3)

// LogHook posts error level entries to a slack channel.
type LogHook struct {
	Slack        *slack.Client
	ErrorChannel string

	limiter *rate.Limiter
}

func NewLogHook(client *slack.Client, channel string) *LogHook {
	return &LogHook{
		Slack:        client,
		ErrorChannel: channel,
		limiter:      limiter,
	}
}

func (t *LogHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}
}

func (t *LogHook) Fire(e *logrus.Entry) error {
	if !t.limiter.Allow() {
		return nil
	}

	var color string
	switch e.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		color = slackstyle.Red
	default:
		color = slackstyle.Yellow
	}

	var fields []slack.AttachmentField
	for k, d := range e.Data {
		fields = append(fields, slack.AttachmentField{
			Title: k,
			Value: fmt.Sprintf("%v", d),
			Short: true,
		})
	}

	attachment := slack.Attachment{
		Color:  color,
		Title:  strings.ToUpper(e.Level.String()),
		Fields: fields,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err := t.Slack.PostMessageContext(ctx, t.ErrorChannel,
		slack.MsgOptionText(":balloon: "+e.Message, true),
		slack.MsgOptionAttachments(attachment))
	return err
}
