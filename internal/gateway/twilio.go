// internal/gateway/twilio.go
package gateway

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
)

// Message is one outbound WhatsApp message. Either Body (free-form, optional
// media) or ContentSid (approved template with positional variables) is set.
type Message struct {
	To               string
	Body             string
	MediaURL         string
	ContentSid       string
	ContentVariables map[string]string
}

type SendResult struct {
	SID    string
	Status string
}

// Sender is what the worker and inbound handler send through.
type Sender interface {
	Send(ctx context.Context, msg Message) (*SendResult, error)
}

// TwilioGateway sends over the Twilio REST API. With missing credentials the
// client stays nil and every send fails fast with ErrGatewayNotConfigured.
type TwilioGateway struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioGateway(sid, token, from string) *TwilioGateway {
	g := &TwilioGateway{from: NormalizeWhatsApp(from)}
	if sid != "" && token != "" {
		g.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: token,
		})
	}
	return g
}

// NormalizeWhatsApp prefixes a plain E.164 address with the whatsapp: channel.
func NormalizeWhatsApp(addr string) string {
	if addr == "" || strings.HasPrefix(addr, "whatsapp:") {
		return addr
	}
	return "whatsapp:" + addr
}

func (g *TwilioGateway) IsConfigured() bool {
	return g.client != nil && g.from != ""
}

func (g *TwilioGateway) Send(_ context.Context, msg Message) (*SendResult, error) {
	if g.client == nil {
		return nil, appErrors.ErrGatewayNotConfigured
	}
	if g.from == "" {
		return nil, appErrors.ErrSenderNotConfigured
	}

	params := &api.CreateMessageParams{}
	params.SetFrom(g.from)
	params.SetTo(NormalizeWhatsApp(msg.To))

	if msg.ContentSid != "" {
		params.SetContentSid(msg.ContentSid)
		if len(msg.ContentVariables) > 0 {
			// Twilio wants content variables as a JSON string keyed "1","2",...
			vars, err := json.Marshal(msg.ContentVariables)
			if err != nil {
				return nil, err
			}
			params.SetContentVariables(string(vars))
		}
	} else {
		params.SetBody(msg.Body)
	}
	if msg.MediaURL != "" {
		params.SetMediaUrl([]string{msg.MediaURL})
	}

	resp, err := g.client.Api.CreateMessage(params)
	if err != nil {
		return nil, err
	}

	res := &SendResult{Status: "queued"}
	if resp.Sid != nil {
		res.SID = *resp.Sid
	}
	if resp.Status != nil {
		res.Status = *resp.Status
	}
	return res, nil
}

var _ Sender = (*TwilioGateway)(nil)
