// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership application statuses. Applications start "pending"; admins
// move them to "approved" or "rejected" from the review list.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// MembershipApplication is a prospective member's join request.
//
// MembershipID is a deterministic function of (Year, Department,
// RollNumber); two applications with identical inputs share the same
// MembershipID and are stored as distinct documents.
type MembershipApplication struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MembershipID   string             `bson:"membership_id" json:"membership_id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	RollNumber     string             `bson:"roll_number" json:"roll_number"`
	RegisterNumber string             `bson:"register_number" json:"register_number"`
	Year           string             `bson:"year" json:"year"`
	Section        string             `bson:"section" json:"section"`
	Department     string             `bson:"department" json:"department"`
	Participation  string             `bson:"participation,omitempty" json:"participation,omitempty"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
