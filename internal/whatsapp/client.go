package whatsapp

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// messageAPI is the slice of the Twilio REST API the client uses.
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Client sends WhatsApp messages through Twilio.
// It satisfies bot.Sender and scheduler.Sender.
type Client struct {
	api  messageAPI
	from string
	log  *zap.Logger
}

// NewClient builds a Twilio-backed client. Every HTTP call is bounded by timeout.
func NewClient(accountSID, authToken, from string, timeout time.Duration, log *zap.Logger) *Client {
	rc := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	rc.SetTimeout(timeout)
	return &Client{api: rc.Api, from: from, log: log}
}

// SendMessage delivers text to the given address, e.g. "whatsapp:+911234567890".
// Failures are returned, not retried.
func (c *Client) SendMessage(ctx context.Context, to, text string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(c.from)
	params.SetTo(to)
	params.SetBody(text)

	type result struct {
		sid string
		err error
	}
	done := make(chan result, 1)
	go func() {
		m, err := c.api.CreateMessage(params)
		var sid string
		if err == nil && m != nil && m.Sid != nil {
			sid = *m.Sid
		}
		done <- result{sid: sid, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send to %s: %w", to, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("send to %s: %w", to, r.err)
		}
		c.log.Debug("message queued", zap.String("to", to), zap.String("sid", r.sid))
		return nil
	}
}
