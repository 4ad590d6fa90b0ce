// Package slackclient wraps the Slack Web API calls the bot needs: posting
// messages (optionally into a thread) and opening modal views.
package slackclient

import (
	"github.com/slack-go/slack"
)

type Client struct {
	api *slack.Client
}

func New(botToken string) *Client {
	return &Client{api: slack.New(botToken)}
}

// PostMessage sends text to a channel. threadTS may be empty for a top-level
// message; the returned timestamp identifies the message and doubles as the
// thread token for later replies.
func (c *Client) PostMessage(channelID, threadTS, text string) (string, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	_, ts, err := c.api.PostMessage(channelID, opts...)
	return ts, err
}

// OpenModal presents a modal view against a short-lived trigger id. There is
// no usable synchronous result beyond the error.
func (c *Client) OpenModal(triggerID string, view slack.ModalViewRequest) error {
	_, err := c.api.OpenView(triggerID, view)
	return err
}
