// internal/service/policy.go
package service

import (
	"context"
	"time"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
	"github.com/nubac/wasender-backend/internal/gateway"
	"github.com/nubac/wasender-backend/internal/model"
	"github.com/nubac/wasender-backend/internal/repository"
)

// MessagingWindow is the provider-enforced period after a recipient's last
// inbound message during which free-form sends are allowed.
const MessagingWindow = 24 * time.Hour

// SendPolicy decides free-form vs. template and assembles the payload.
// It has no side effects.
type SendPolicy struct {
	Media repository.MediaRepositoryInterface
}

// InsideWindow reports whether the contact messaged in within the last 24h.
// A contact that never messaged in is outside the window.
func (p *SendPolicy) InsideWindow(contact *model.Contact, now time.Time) bool {
	if contact.LastInboundAt == nil {
		return false
	}
	return now.Sub(*contact.LastInboundAt) < MessagingWindow
}

// ComposeTeaser builds the campaign teaser for one contact. Inside the window
// it is the free-form teaser text plus resolved media; outside, the campaign's
// approved template with the contact name as variable "1". No template means
// a hard failure for this recipient only.
func (p *SendPolicy) ComposeTeaser(ctx context.Context, uid string, contact *model.Contact, campaign *model.Campaign, now time.Time) (*gateway.Message, error) {
	if p.InsideWindow(contact, now) {
		msg := &gateway.Message{
			To:   contact.PhoneE164,
			Body: campaign.TeaserText,
		}
		url, err := p.Media.GetURL(ctx, uid, campaign.TeaserMediaID)
		if err != nil {
			return nil, err
		}
		msg.MediaURL = url
		return msg, nil
	}

	if campaign.ContentSid == "" {
		return nil, appErrors.ErrOutsideWindowNoTemplate
	}

	name := contact.Name
	if name == "" {
		name = "hola"
	}
	return &gateway.Message{
		To:               contact.PhoneE164,
		ContentSid:       campaign.ContentSid,
		ContentVariables: map[string]string{"1": name},
	}, nil
}
