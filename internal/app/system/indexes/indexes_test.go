package indexes_test

import (
	"testing"

	"github.com/auraclub/aurahub/internal/app/system/indexes"
	"github.com/auraclub/aurahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesEventIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	cur, err := db.Collection("events").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	indexNames := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			indexNames[name] = true
		}
	}

	expectedIndexes := []string{
		"idx_events_created_desc",
		"idx_events_status_created",
	}

	for _, name := range expectedIndexes {
		if !indexNames[name] {
			t.Errorf("expected index %q to exist on events collection", name)
		}
	}
}

func TestEnsureAll_CreatesApplicationIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	cur, err := db.Collection("membership_applications").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	indexNames := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			indexNames[name] = true
		}
	}

	expectedIndexes := []string{
		"idx_applications_created_desc",
		"idx_applications_membership_id",
		"idx_applications_status_created",
	}

	for _, name := range expectedIndexes {
		if !indexNames[name] {
			t.Errorf("expected index %q to exist on membership_applications collection", name)
		}
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Run EnsureAll to create indexes
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert an admin with an email
	_, err = db.Collection("admin_users").InsertOne(ctx, bson.M{"email": "coordinator@test.edu", "name": "One"})
	if err != nil {
		t.Fatalf("Insert admin failed: %v", err)
	}

	// A second account with the same email must be rejected
	_, err = db.Collection("admin_users").InsertOne(ctx, bson.M{"email": "coordinator@test.edu", "name": "Two"})
	if err == nil {
		t.Error("expected duplicate key error for unique index on admin_users.email")
	}
}
