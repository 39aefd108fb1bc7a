package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubac/wasender-backend/internal/handler"
)

type stubInbound struct {
	reply    string
	err      error
	lastFrom string
	lastBody string
}

func (s *stubInbound) HandleInbound(_ context.Context, from, body string) (string, error) {
	s.lastFrom = from
	s.lastBody = body
	return s.reply, s.err
}

func postInbound(h *handler.WebhookHandler, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/twilio/inbound", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.TwilioInbound(rec, req)
	return rec
}

func TestTwilioInboundEmptyAck(t *testing.T) {
	stub := &stubInbound{reply: ""}
	h := &handler.WebhookHandler{Inbound: stub, Log: zerolog.Nop()}

	rec := postInbound(h, "From=whatsapp%3A%2B5215500000000&Body=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<Response")
	assert.NotContains(t, rec.Body.String(), "<Message")

	assert.Equal(t, "whatsapp:+5215500000000", stub.lastFrom)
	assert.Equal(t, "1", stub.lastBody)
}

func TestTwilioInboundFallbackMessageAck(t *testing.T) {
	stub := &stubInbound{reply: "No reconocido."}
	h := &handler.WebhookHandler{Inbound: stub, Log: zerolog.Nop()}

	rec := postInbound(h, "From=%2B5215500000001&Body=hola")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Message>")
	assert.Contains(t, rec.Body.String(), "No reconocido.")
}

func TestTwilioInboundInternalErrorStaysSuccessShaped(t *testing.T) {
	stub := &stubInbound{err: errors.New("state lookup failed")}
	h := &handler.WebhookHandler{Inbound: stub, Log: zerolog.Nop()}

	rec := postInbound(h, "From=%2B5215500000001&Body=1")

	require.Equal(t, http.StatusOK, rec.Code, "a failure response would make Twilio retry-storm the webhook")
	assert.Contains(t, rec.Body.String(), "Ups, hubo un error")
	assert.NotContains(t, rec.Body.String(), "state lookup failed")
}
