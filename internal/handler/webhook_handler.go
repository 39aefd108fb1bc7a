// internal/handler/webhook_handler.go
package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go/twiml"
)

const internalErrorText = "Ups, hubo un error. Intenta de nuevo 🙏"

// InboundProcessor defines what the webhook needs from the inbound service
type InboundProcessor interface {
	HandleInbound(ctx context.Context, from, body string) (string, error)
}

// WebhookHandler receives Twilio inbound-message callbacks. It always answers
// success-shaped TwiML; a failure response would make the gateway retry-storm
// the webhook.
type WebhookHandler struct {
	Inbound InboundProcessor
	Log     zerolog.Logger
}

// TwilioInbound handles POST /twilio/inbound (form-encoded From/Body).
func (h *WebhookHandler) TwilioInbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Log.Error().Err(err).Msg("invalid webhook form body")
		h.replyTwiML(w, internalErrorText)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")

	reply, err := h.Inbound.HandleInbound(r.Context(), from, body)
	if err != nil {
		h.Log.Error().Err(err).Str("from", from).Msg("inbound processing failed")
		reply = internalErrorText
	}

	h.replyTwiML(w, reply)
}

func (h *WebhookHandler) replyTwiML(w http.ResponseWriter, text string) {
	var verbs []twiml.Element
	if text != "" {
		verbs = append(verbs, &twiml.MessagingMessage{Body: text})
	}

	xml, err := twiml.Messages(verbs)
	if err != nil {
		xml = "<Response></Response>"
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(xml))
}
