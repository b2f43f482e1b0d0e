// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. Every stored event is in exactly one of these states;
// anything else is normalized to StatusUpcoming when decoded.
const (
	StatusUpcoming  = "upcoming"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// Event is a club activity shown on the public site and managed by admins.
//
// Optional fields always decode to usable zero values (empty string, empty
// slice, zero counter) so templates and handlers never need to null-check.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Status      string             `bson:"status" json:"status"`

	// Free-text extras shown on the event detail view.
	Agenda           string   `bson:"agenda,omitempty" json:"agenda,omitempty"`
	Details          string   `bson:"details,omitempty" json:"details,omitempty"`
	Rules            []string `bson:"rules,omitempty" json:"rules,omitempty"`
	Coordinators     []string `bson:"coordinators,omitempty" json:"coordinators,omitempty"`
	RegistrationLink string   `bson:"registration_link,omitempty" json:"registration_link,omitempty"`

	Likes     int64     `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidEventStatus reports whether s is one of the three event statuses.
func ValidEventStatus(s string) bool {
	return s == StatusUpcoming || s == StatusLive || s == StatusCompleted
}

// EventCounts is the per-status summary derived from the events collection.
type EventCounts struct {
	Upcoming  int64
	Live      int64
	Completed int64
	Total     int64
}
