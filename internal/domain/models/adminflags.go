// internal/domain/models/adminflags.go
package models

import "time"

// AdminFlagsDocID is the fixed _id of the singleton admin_flags document.
const AdminFlagsDocID = "global"

// AdminFlags is the single global record controlling whether new
// submissions are accepted. Shared, last-writer-wins; toggled only by an
// authenticated admin.
type AdminFlags struct {
	ID                   string     `bson:"_id" json:"id"`
	LiveResponsesEnabled bool       `bson:"live_responses_enabled" json:"live_responses_enabled"`
	UpdatedAt            *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedByName        string     `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}

// DefaultAdminFlags are the flags assumed when the singleton document does
// not exist yet: submissions are accepted.
func DefaultAdminFlags() AdminFlags {
	return AdminFlags{ID: AdminFlagsDocID, LiveResponsesEnabled: true}
}
