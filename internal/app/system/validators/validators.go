// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/auraclub/aurahub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("events", eventsSchema())
	ensure("membership_applications", applicationsSchema())
	ensure("contact_submissions", contactsSchema())
	ensure("club_members", membersSchema())
	ensure("admin_users", adminUsersSchema())

	// Single-document collection; no validator needed.
	ensure("admin_flags", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func eventsSchema() bson.M {
	// Validation stays loose on purpose: legacy event documents predate this
	// schema and store dates as strings and list fields as scalars. The read
	// path normalizes; the validator only enforces what every document has.
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "status"},
			"properties": bson.M{
				"title":  bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"status": bson.M{"enum": bson.A{models.StatusUpcoming, models.StatusLive, models.StatusCompleted}},
				"likes":  bson.M{"bsonType": bson.A{"long", "int", "double"}},
			},
		},
	}
}

func applicationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"membership_id", "name", "email", "department", "year", "status"},
			"properties": bson.M{
				"membership_id": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name":          bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":         bson.M{"bsonType": "string", "minLength": 1},
				"department":    bson.M{"bsonType": "string", "minLength": 1},
				"year":          bson.M{"bsonType": "string", "minLength": 1},
				"status":        bson.M{"enum": bson.A{models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected}},
				"created_at":    bson.M{"bsonType": "date"},
			},
		},
	}
}

func contactsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "message", "status"},
			"properties": bson.M{
				"name":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":      bson.M{"bsonType": "string", "minLength": 1},
				"message":    bson.M{"bsonType": "string", "minLength": 1},
				"status":     bson.M{"enum": bson.A{models.ContactNew, models.ContactRead, models.ContactResponded}},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func membersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "position"},
			"properties": bson.M{
				"name":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"position":   bson.M{"bsonType": "string", "minLength": 1},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func adminUsersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "password_hash", "role", "status"},
			"properties": bson.M{
				"email":         bson.M{"bsonType": "string", "minLength": 3},
				"password_hash": bson.M{"bsonType": "string", "minLength": 1},
				"role":          bson.M{"enum": bson.A{"admin"}},
				"status":        bson.M{"enum": bson.A{"active", "disabled"}},
			},
		},
	}
}
