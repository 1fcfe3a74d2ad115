package slacknotifier

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladderbot/ladderbot/pkg/types"
)

func Test_filterSlackAttachments(t *testing.T) {
	order := &types.SubmitOrder{Symbol: "BTCUSDT", Side: types.SideTypeBuy, Quantity: 1}

	attachments, pureArgs := filterSlackAttachments([]interface{}{"BTCUSDT", 2, order, slack.Attachment{Title: "extra"}})
	assert.Equal(t, []interface{}{"BTCUSDT", 2}, pureArgs)
	require.Len(t, attachments, 2)
	assert.Equal(t, "extra", attachments[1].Title)

	attachments, pureArgs = filterSlackAttachments([]interface{}{"a"})
	assert.Empty(t, attachments)
	assert.Equal(t, []interface{}{"a"}, pureArgs)
}

func TestNotifier_Notify(t *testing.T) {
	type posted struct {
		channel, text string
	}

	postedC := make(chan posted, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		postedC <- posted{channel: r.Form.Get("channel"), text: r.Form.Get("text")}
		fmt.Fprint(w, `{"ok":true,"channel":"C1","ts":"1.1"}`)
	}))
	defer server.Close()

	client := slack.New("xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	notifier := New(client, "#trades")
	notifier.Notify("Total Loss/Profit: %s, symbol: %s", "$12.00", "ETHUSDT")

	select {
	case p := <-postedC:
		assert.Equal(t, "#trades", p.channel)
		assert.Equal(t, "Total Loss/Profit: $12.00, symbol: ETHUSDT", p.text)
	case <-time.After(5 * time.Second):
		t.Fatal("slack message was not posted")
	}
}
