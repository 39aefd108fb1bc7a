// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID            string    `bson:"_id" json:"id"`
	UID           string    `bson:"uid" json:"uid"`
	Title         string    `bson:"title" json:"title"`
	TeaserText    string    `bson:"teaserText" json:"teaserText"`
	TeaserMediaID string    `bson:"teaserMediaId,omitempty" json:"teaserMediaId,omitempty"`
	DetailText    string    `bson:"detailText" json:"detailText"`
	DetailMediaID string    `bson:"detailMediaId,omitempty" json:"detailMediaId,omitempty"`
	RejectText    string    `bson:"rejectText,omitempty" json:"rejectText,omitempty"`
	ErrorText     string    `bson:"errorText,omitempty" json:"errorText,omitempty"`
	ContentSid    string    `bson:"contentSid,omitempty" json:"contentSid,omitempty"` // approved template, required outside the 24h window
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
