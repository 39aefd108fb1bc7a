// internal/model/schedule.go
package model

import "time"

const (
	ScheduleStatusPending    = "pending"
	ScheduleStatusProcessing = "processing"
	ScheduleStatusSent       = "sent"
	ScheduleStatusFailed     = "failed"
	ScheduleStatusCancelled  = "cancelled"
)

const (
	TargetTypeAll  = "all"
	TargetTypeTags = "tags"
)

// ScheduleTarget selects the audience: every active contact, or active
// contacts matching any of the given tags.
type ScheduleTarget struct {
	Type string   `bson:"type" json:"type"` // all, tags
	Tags []string `bson:"tags,omitempty" json:"tags,omitempty"`
}

type Schedule struct {
	ID             string         `bson:"_id" json:"id"`
	UID            string         `bson:"uid" json:"uid"`
	CampaignID     string         `bson:"campaignId" json:"campaignId"`
	Target         ScheduleTarget `bson:"target" json:"target"`
	ScheduledAt    time.Time      `bson:"scheduledAt" json:"scheduledAt"`
	Status         string         `bson:"status" json:"status"`
	Cursor         string         `bson:"cursor,omitempty" json:"cursor,omitempty"` // last processed contact id, pagination resumes strictly after it
	ProcessedCount int            `bson:"processedCount" json:"processedCount"`
	Error          string         `bson:"error,omitempty" json:"error,omitempty"`
	ProcessingAt   *time.Time     `bson:"processingAt,omitempty" json:"processingAt,omitempty"`
	DoneAt         *time.Time     `bson:"doneAt,omitempty" json:"doneAt,omitempty"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}
