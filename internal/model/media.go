// internal/model/media.go
package model

import "time"

type Media struct {
	ID        string    `bson:"_id" json:"id"`
	UID       string    `bson:"uid" json:"uid"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	URL       string    `bson:"url" json:"url"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
