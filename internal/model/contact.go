// internal/model/contact.go
package model

import "time"

const (
	ContactStatusActive   = "active"
	ContactStatusInactive = "inactive"
)

type Contact struct {
	ID            string     `bson:"_id" json:"id"`
	UID           string     `bson:"uid" json:"uid"`
	Name          string     `bson:"name" json:"name"`
	PhoneE164     string     `bson:"phoneE164" json:"phoneE164"`
	Tags          []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Status        string     `bson:"status" json:"status"` // active, inactive
	LastInboundAt *time.Time `bson:"lastInboundAt,omitempty" json:"lastInboundAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}
