// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned when no admin matches the given email.
var ErrNotFound = errors.New("admin not found")

// Store provides access to the admin_users collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_users")}
}

// FindByEmail looks up an active admin account. Email matching is
// case-insensitive via lowercase normalization at write time.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var admin models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"email": email, "status": "active"}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return models.AdminUser{}, ErrNotFound
	}
	if err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}

// EnsureSeed creates the initial admin account when the collection is
// empty. Called at startup with credentials from config; a no-op when any
// admin already exists or when no seed credentials are configured.
func (s *Store) EnsureSeed(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: string(hash),
		Role:         "admin",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = s.c.InsertOne(ctx, admin)
	return err
}

// CheckPassword compares a candidate password against the stored hash.
func CheckPassword(admin models.AdminUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}
