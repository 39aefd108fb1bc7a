// internal/model/state.go
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	StateWaitingChoice         = "WAITING_CHOICE"
	StateWaitingFallbackChoice = "WAITING_FALLBACK_CHOICE"
	StateDone                  = "DONE"
)

// ConversationState tracks where a recipient is in the 1/2 reply flow.
// Keyed by PhoneHash so raw phone numbers never become document ids.
type ConversationState struct {
	ID               string    `bson:"_id" json:"id"`
	UID              string    `bson:"uid" json:"uid"`
	ActiveCampaignID string    `bson:"activeCampaignId,omitempty" json:"activeCampaignId,omitempty"`
	State            string    `bson:"state" json:"state"`
	InvalidCount     int       `bson:"invalidCount" json:"invalidCount"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PhoneHash derives the state document id from tenant and phone number.
func PhoneHash(uid, phoneE164 string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", uid, phoneE164)))
	return hex.EncodeToString(sum[:])
}
