// internal/service/inbound.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
	"github.com/nubac/wasender-backend/internal/gateway"
	"github.com/nubac/wasender-backend/internal/model"
	"github.com/nubac/wasender-backend/internal/repository"
)

// FallbackMode selects what happens when an inbound message arrives with no
// active campaign state.
type FallbackMode string

const (
	// FallbackMinimal replies with a static prompt and leaves state alone.
	FallbackMinimal FallbackMode = "minimal"
	// FallbackTwoStepOptIn offers its own 1/2 opt-in choice.
	FallbackTwoStepOptIn FallbackMode = "two_step"
)

// maxInvalidReplies terminates the flow for unresponsive or confused
// recipients instead of looping on error text forever.
const maxInvalidReplies = 3

const (
	fallbackPromptText = "Hola 👋 En breve te contactamos. Si recibes una campaña, responde 1 o 2."
	fallbackChoiceText = "Hola 👋 Responde 1 si quieres recibir información, o 2 si prefieres que no te escribamos."
	fallbackOptInText  = "¡Perfecto! Te mandamos información en breve."
	fallbackOptOutText = "Entendido, no te volveremos a escribir."
	defaultRejectText  = "Listo 👍"
	defaultErrorText   = "No entendí 😅 Responde 1 o 2."
	unknownSenderText  = "No reconocido."
	campaignGoneText   = "Campaña no encontrada."
)

// InboundService advances the per-recipient state machine on webhook input.
type InboundService struct {
	Contacts  repository.ContactRepositoryInterface
	Campaigns repository.CampaignRepositoryInterface
	States    repository.StateRepositoryInterface
	Media     repository.MediaRepositoryInterface
	Outbound  repository.OutboundRecordRepositoryInterface
	Logs      repository.LogRepositoryInterface
	Gateway   gateway.Sender
	Mode      FallbackMode
	Log       zerolog.Logger
}

// HandleInbound processes one inbound message and returns the text for the
// synchronous webhook acknowledgment, which may be empty. Replies that can
// carry media go out through the gateway instead of the ack channel.
func (s *InboundService) HandleInbound(ctx context.Context, from, body string) (string, error) {
	from = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(from), "whatsapp:"))
	body = strings.TrimSpace(body)

	contact, err := s.Contacts.FindByPhone(ctx, from)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return unknownSenderText, nil
	}
	uid := contact.UID

	// Open the 24h messaging window first, whatever the outcome below.
	if err := s.Contacts.TouchInbound(ctx, contact.ID, time.Now()); err != nil {
		return "", err
	}

	st, err := s.States.Get(ctx, uid, from)
	if err != nil {
		return "", err
	}

	switch {
	case st != nil && st.State == model.StateWaitingFallbackChoice:
		return s.handleFallbackChoice(ctx, uid, from, body, st)
	case st != nil && st.State == model.StateWaitingChoice && st.ActiveCampaignID != "":
		return s.handleChoice(ctx, uid, from, body, st)
	default:
		// idle, DONE, or a WAITING_CHOICE orphaned without a campaign
		return s.handleFallback(ctx, uid, from, body)
	}
}

func (s *InboundService) handleFallback(ctx context.Context, uid, from, body string) (string, error) {
	if s.Mode == FallbackTwoStepOptIn {
		if err := s.States.Upsert(ctx, &model.ConversationState{
			ID:        model.PhoneHash(uid, from),
			UID:       uid,
			State:     model.StateWaitingFallbackChoice,
			UpdatedAt: time.Now(),
		}); err != nil {
			return "", err
		}
		s.appendLog(ctx, uid, "inbound_processed", map[string]any{
			"from": from, "body": body, "result": model.StateWaitingFallbackChoice,
		})
		return fallbackChoiceText, nil
	}

	s.appendLog(ctx, uid, "inbound_processed", map[string]any{
		"from": from, "body": body, "result": "fallback",
	})
	return fallbackPromptText, nil
}

func (s *InboundService) handleFallbackChoice(ctx context.Context, uid, from, body string, st *model.ConversationState) (string, error) {
	reply := fallbackChoiceText
	newState := model.StateWaitingFallbackChoice
	invalid := st.InvalidCount

	switch body {
	case "1":
		reply = fallbackOptInText
		newState = model.StateDone
	case "2":
		reply = fallbackOptOutText
		newState = model.StateDone
	default:
		invalid++
		if invalid >= maxInvalidReplies {
			newState = model.StateDone
		}
	}

	if err := s.States.Upsert(ctx, &model.ConversationState{
		ID:           model.PhoneHash(uid, from),
		UID:          uid,
		State:        newState,
		InvalidCount: invalid,
		UpdatedAt:    time.Now(),
	}); err != nil {
		return "", err
	}
	s.appendLog(ctx, uid, "inbound_processed", map[string]any{
		"from": from, "body": body, "result": newState,
	})
	return reply, nil
}

func (s *InboundService) handleChoice(ctx context.Context, uid, from, body string, st *model.ConversationState) (string, error) {
	campaign, err := s.Campaigns.GetByID(ctx, uid, st.ActiveCampaignID)
	if err != nil {
		var nf *appErrors.ErrCampaignNotFound
		if errors.As(err, &nf) {
			return campaignGoneText, nil
		}
		return "", err
	}

	var replyText, mediaID, category string
	newState := model.StateWaitingChoice
	invalid := st.InvalidCount

	switch body {
	case "1":
		replyText = campaign.DetailText
		mediaID = campaign.DetailMediaID
		newState = model.StateDone
		category = model.OutboundTypeDetail
	case "2":
		replyText = campaign.RejectText
		if replyText == "" {
			replyText = defaultRejectText
		}
		newState = model.StateDone
		category = model.OutboundTypeReject
	default:
		invalid++
		replyText = campaign.ErrorText
		if replyText == "" {
			replyText = defaultErrorText
		}
		if invalid >= maxInvalidReplies {
			newState = model.StateDone
		}
		category = model.OutboundTypeError
	}

	mediaURL, err := s.Media.GetURL(ctx, uid, mediaID)
	if err != nil {
		return "", err
	}

	// The reply goes out as a normal message, not in the ack, so media can
	// ride along.
	sent, err := s.Gateway.Send(ctx, gateway.Message{To: from, Body: replyText, MediaURL: mediaURL})
	if err != nil {
		if !appErrors.IsSendConfigError(err) {
			return "", err
		}
		s.appendLog(ctx, uid, "inbound_reply_skipped", map[string]any{
			"reason": appErrors.ErrGatewayNotConfigured.Error(), "from": from, "body": body,
		})
	} else {
		if uerr := s.recordReply(ctx, uid, st.ActiveCampaignID, from, category, sent); uerr != nil {
			s.Log.Error().Err(uerr).Str("from", from).Msg("failed to record reply")
		}
	}

	if err := s.States.Upsert(ctx, &model.ConversationState{
		ID:               model.PhoneHash(uid, from),
		UID:              uid,
		ActiveCampaignID: st.ActiveCampaignID,
		State:            newState,
		InvalidCount:     invalid,
		UpdatedAt:        time.Now(),
	}); err != nil {
		return "", err
	}

	s.appendLog(ctx, uid, "inbound_processed", map[string]any{
		"from": from, "body": body, "result": newState,
	})

	// empty ack; the real reply already went out above
	return "", nil
}

func (s *InboundService) recordReply(ctx context.Context, uid, campaignID, to, category string, sent *gateway.SendResult) error {
	return s.Outbound.Upsert(ctx, &model.OutboundRecord{
		SID:        sent.SID,
		UID:        uid,
		CampaignID: campaignID,
		To:         to,
		Type:       category,
		Status:     sent.Status,
		CreatedAt:  time.Now(),
	})
}

func (s *InboundService) appendLog(ctx context.Context, uid, logType string, payload map[string]any) {
	if err := s.Logs.Append(ctx, uid, logType, payload); err != nil {
		s.Log.Error().Err(err).Str("type", logType).Msg("failed to append log entry")
	}
}
