// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact submission statuses. Status is recorded for the admin view but no
// code path currently advances it past "new".
const (
	ContactNew       = "new"
	ContactRead      = "read"
	ContactResponded = "responded"
)

// ContactSubmission is a visitor inquiry from the public contact form.
type ContactSubmission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
