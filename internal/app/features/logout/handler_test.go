package logout_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/auraclub/aurahub/internal/app/features/logout"
	"github.com/auraclub/aurahub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	if err := auth.InitSessionStore(strings.Repeat("k", 32), "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore() error = %v", err)
	}
	return logout.NewHandler(zap.NewNop())
}

func TestHandleLogout_RedirectsToHome(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()

	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestHandleLogout_ExpiresSessionCookie(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()

	handler.HandleLogout(rec, req)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName {
			found = true
			if c.MaxAge >= 0 {
				t.Errorf("session cookie MaxAge = %d, want negative (deletion)", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected a deletion cookie for the session")
	}
}
