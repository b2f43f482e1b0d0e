// internal/app/store/events/decode.go
package eventstore

import (
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// decode converts a raw event document into a fully-populated model.
// Older documents were written by hand and by earlier tools, so field
// presence and types vary: dates may be stored as strings, list fields as
// bare scalars, and optional fields may be missing entirely. Every field
// gets a usable value here so downstream code never branches on absence.
func (s *Store) decode(raw bson.M) models.Event {
	ev := models.Event{
		Title:            asString(raw["title"]),
		Description:      asString(raw["description"]),
		Location:         asString(raw["location"]),
		ImageURL:         asString(raw["image_url"]),
		Agenda:           asString(raw["agenda"]),
		Details:          asString(raw["details"]),
		RegistrationLink: asString(raw["registration_link"]),
		Rules:            asStringSlice(raw["rules"]),
		Coordinators:     asStringSlice(raw["coordinators"]),
		Likes:            asInt64(raw["likes"]),
	}

	if id, ok := raw["_id"].(primitive.ObjectID); ok {
		ev.ID = id
	}

	ev.Status = asString(raw["status"])
	if !models.ValidEventStatus(ev.Status) {
		ev.Status = models.StatusUpcoming
	}

	ev.Date = s.asTime(raw["date"], "date", ev.ID)
	ev.CreatedAt = s.asTime(raw["created_at"], "created_at", ev.ID)
	ev.UpdatedAt = s.asTime(raw["updated_at"], "updated_at", ev.ID)

	return ev
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asStringSlice accepts both a proper array and a bare scalar. Some legacy
// documents stored a single rule or coordinator as a plain string.
func asStringSlice(v any) []string {
	switch t := v.(type) {
	case bson.A:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}

// asTime handles native datetimes and string-encoded dates. Anything
// unparseable falls back to the current instant with a warning rather than
// failing the whole read.
func (s *Store) asTime(v any, field string, id primitive.ObjectID) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time()
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case nil:
		return time.Now().UTC()
	}
	s.log.Warn("event document has unparseable field, substituting current time",
		zap.String("field", field),
		zap.String("event_id", id.Hex()))
	return time.Now().UTC()
}
