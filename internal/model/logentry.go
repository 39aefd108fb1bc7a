// internal/model/logentry.go
package model

import "time"

// LogEntry is append-only audit output; the core never mutates or deletes it.
type LogEntry struct {
	ID      string         `bson:"_id" json:"id"`
	UID     string         `bson:"uid" json:"uid"`
	Type    string         `bson:"type" json:"type"`
	Payload map[string]any `bson:"payload,omitempty" json:"payload,omitempty"`
	TS      time.Time      `bson:"ts" json:"ts"`
}
