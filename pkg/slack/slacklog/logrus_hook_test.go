package slacklog

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLogHook_Fire(t *testing.T) {
	var channel, text string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		channel = r.Form.Get("channel")
		text = r.Form.Get("text")
		fmt.Fprint(w, `{"ok":true,"channel":"C1","ts":"1.1"}`)
	}))
	defer server.Close()

	hook := NewLogHook(slack.New("xoxb-test", slack.OptionAPIURL(server.URL+"/")), "#errors")
	hook.limiter = rate.NewLimiter(rate.Inf, 1)

	assert.Contains(t, hook.Levels(), logrus.ErrorLevel)
	assert.NotContains(t, hook.Levels(), logrus.InfoLevel)

	entry := logrus.WithField("symbol", "SOLUSDT")
	entry.Message = "stop loss submission failed"
	entry.Level = logrus.ErrorLevel

	assert.NoError(t, hook.Fire(entry))
	assert.Equal(t, "#errors", channel)
	assert.Equal(t, ":balloon: stop loss submission failed", text)
}
