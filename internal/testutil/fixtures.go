package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateEvent inserts a test event with the given title and status.
func (f *Fixtures) CreateEvent(ctx context.Context, title, status string) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Event{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Description:  "Test event description",
		Date:         now.Add(24 * time.Hour),
		Location:     "Seminar Hall",
		Status:       status,
		Rules:        []string{},
		Coordinators: []string{"Test Coordinator"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}

// CreateApplication inserts a test membership application.
func (f *Fixtures) CreateApplication(ctx context.Context, membershipID, name string) models.MembershipApplication {
	f.t.Helper()

	app := models.MembershipApplication{
		ID:           primitive.NewObjectID(),
		MembershipID: membershipID,
		Name:         name,
		Email:        "applicant@test.edu",
		RollNumber:   "21CS045",
		Year:         "2027",
		Section:      "A",
		Department:   "CSE",
		Status:       models.ApplicationPending,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("membership_applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

// CreateContact inserts a test contact submission.
func (f *Fixtures) CreateContact(ctx context.Context, name, message string) models.ContactSubmission {
	f.t.Helper()

	sub := models.ContactSubmission{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     "visitor@test.edu",
		Message:   message,
		Status:    models.ContactNew,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("contact_submissions").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("failed to create test contact submission: %v", err)
	}
	return sub
}

// CreateMember inserts a test club member.
func (f *Fixtures) CreateMember(ctx context.Context, name, position string) models.ClubMember {
	f.t.Helper()

	m := models.ClubMember{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("club_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateAdmin inserts a test admin account with the given password.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, password string) models.AdminUser {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}
	now := time.Now().UTC()
	admin := models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Name:         "Test Admin",
		PasswordHash: string(hash),
		Role:         "admin",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("admin_users").InsertOne(ctx, admin); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}
