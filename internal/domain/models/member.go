// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClubMember is a current member shown in the public team section.
type ClubMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Position  string             `bson:"position" json:"position"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
