// internal/model/outbound.go
package model

import "time"

const (
	OutboundTypeTeaser = "teaser"
	OutboundTypeDetail = "detail"
	OutboundTypeReject = "reject"
	OutboundTypeError  = "error"
)

// OutboundRecord is keyed by the gateway message SID, so writing the same
// send twice overwrites instead of duplicating.
type OutboundRecord struct {
	SID        string    `bson:"_id" json:"sid"`
	UID        string    `bson:"uid" json:"uid"`
	ScheduleID string    `bson:"scheduleId,omitempty" json:"scheduleId,omitempty"`
	CampaignID string    `bson:"campaignId" json:"campaignId"`
	To         string    `bson:"to" json:"to"`
	Type       string    `bson:"type" json:"type"` // teaser, detail, reject, error
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
