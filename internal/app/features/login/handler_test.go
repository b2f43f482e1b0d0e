package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/auraclub/aurahub/internal/app/features/login"
	adminstore "github.com/auraclub/aurahub/internal/app/store/admins"
	"github.com/auraclub/aurahub/internal/app/system/auth"
	"github.com/auraclub/aurahub/internal/app/system/ratelimit"
	"github.com/auraclub/aurahub/internal/testutil"
	"go.uber.org/zap"
)

func initSessions(t *testing.T) {
	t.Helper()
	if err := auth.InitSessionStore(strings.Repeat("k", 32), "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore() error = %v", err)
	}
}

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	initSessions(t)
	fx := testutil.NewFixtures(t, db)
	h := login.NewHandler(adminstore.New(db), ratelimit.NewLoginLimiter(), zap.NewNop())
	return h, fx
}

func postLogin(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Failure paths re-render the form, which needs the template engine;
	// the recover keeps those tests focused on the pre-render behavior.
	func() {
		defer func() { _ = recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateAdmin(ctx, "admin@example.edu", "hunter2hunter2")

	rec := postLogin(h, url.Values{
		"email":    {"admin@example.edu"},
		"password": {"hunter2hunter2"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateAdmin(ctx, "admin@example.edu", "hunter2hunter2")

	rec := postLogin(h, url.Values{
		"email":    {"admin@example.edu"},
		"password": {"hunter2hunter2"},
		"return":   {"/admin/events"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/events" {
		t.Errorf("Location = %q, want /admin/events", loc)
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateAdmin(ctx, "admin@example.edu", "hunter2hunter2")

	rec := postLogin(h, url.Values{
		"email":    {"admin@example.edu"},
		"password": {"wrong"},
	})

	if rec.Code == http.StatusSeeOther {
		t.Fatal("wrong password produced a redirect; want re-rendered form")
	}
}

func TestHandleLoginPost_UnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(h, url.Values{
		"email":    {"nobody@example.edu"},
		"password": {"whatever"},
	})

	if rec.Code == http.StatusSeeOther {
		t.Fatal("unknown email produced a redirect; want re-rendered form")
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateAdmin(ctx, "admin@example.edu", "hunter2hunter2")

	// Exhaust the per-email budget with bad passwords.
	for i := 0; i < 6; i++ {
		postLogin(h, url.Values{
			"email":    {"admin@example.edu"},
			"password": {"wrong"},
		})
	}

	rec := postLogin(h, url.Values{
		"email":    {"admin@example.edu"},
		"password": {"hunter2hunter2"},
	})
	if rec.Code == http.StatusSeeOther {
		t.Fatal("rate-limited login produced a redirect; want re-rendered form")
	}
}
