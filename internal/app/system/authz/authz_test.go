package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auraclub/aurahub/internal/app/system/auth"
	"github.com/auraclub/aurahub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestWithUser(u *auth.SessionUser) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	if u == nil {
		return r
	}
	return auth.WithTestUser(r, u)
}

func TestIsAdmin_True(t *testing.T) {
	r := requestWithUser(&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "admin"})
	if !authz.IsAdmin(r) {
		t.Error("expected IsAdmin to be true for admin")
	}
}

func TestIsAdmin_CaseInsensitive(t *testing.T) {
	r := requestWithUser(&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "Admin"})
	if !authz.IsAdmin(r) {
		t.Error("expected IsAdmin to be true for Admin")
	}
}

func TestIsAdmin_False_NoUser(t *testing.T) {
	r := requestWithUser(nil)
	if authz.IsAdmin(r) {
		t.Error("expected IsAdmin to be false when no user is present")
	}
}

func TestIsAdmin_False_MalformedID(t *testing.T) {
	r := requestWithUser(&auth.SessionUser{ID: "not-a-hex-id", Role: "admin"})
	if authz.IsAdmin(r) {
		t.Error("expected IsAdmin to fail closed on malformed user id")
	}
}

func TestUserCtx_ReturnsVisitorWhenAnonymous(t *testing.T) {
	role, name, id, ok := authz.UserCtx(requestWithUser(nil))
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("unexpected anonymous identity: %q %q %v", role, name, id)
	}
}

func TestUserCtx_ReturnsUser(t *testing.T) {
	oid := primitive.NewObjectID()
	r := requestWithUser(&auth.SessionUser{ID: oid.Hex(), Name: "Coordinator", Role: "ADMIN"})

	role, name, id, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("role: got %q, want %q", role, "admin")
	}
	if name != "Coordinator" {
		t.Errorf("name: got %q, want %q", name, "Coordinator")
	}
	if id != oid {
		t.Errorf("id: got %v, want %v", id, oid)
	}
}
