package join_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/auraclub/aurahub/internal/app/features/join"
	applicationstore "github.com/auraclub/aurahub/internal/app/store/applications"
	flagstore "github.com/auraclub/aurahub/internal/app/store/flags"
	"github.com/auraclub/aurahub/internal/testutil"
	"go.uber.org/zap"
)

type joinEnv struct {
	handler *join.Handler
	apps    *applicationstore.Store
	flags   *flagstore.Store
}

func newTestEnv(t *testing.T) joinEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	apps := applicationstore.New(db)
	flags := flagstore.New(db)
	return joinEnv{
		handler: join.NewHandler(apps, flags, nil, zap.NewNop()),
		apps:    apps,
		flags:   flags,
	}
}

func validForm() url.Values {
	return url.Values{
		"name":            {"Priya Menon"},
		"email":           {"priya@example.edu"},
		"roll_number":     {"21CS123"},
		"register_number": {"310621104123"},
		"year":            {"2028"},
		"section":         {"B"},
		"department":      {"CSE"},
		"participation":   {"Photography"},
	}
}

func submit(t *testing.T, env joinEnv, values url.Values) {
	t.Helper()
	req := httptest.NewRequest("POST", "/join", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Rendering needs the template engine booted, which tests don't do;
	// the store writes we assert on happen before the render call.
	func() {
		defer func() { _ = recover() }()
		env.handler.HandleSubmit(rec, req)
	}()
}

func TestHandleSubmit_CreatesApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	submit(t, env, validForm())

	apps, err := env.apps.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("List() returned %d applications, want 1", len(apps))
	}
	got := apps[0]
	if got.MembershipID != "28AURACS123" {
		t.Errorf("MembershipID = %q, want %q", got.MembershipID, "28AURACS123")
	}
	if got.Status != "pending" {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.Email != "priya@example.edu" {
		t.Errorf("Email = %q", got.Email)
	}
}

func TestHandleSubmit_MissingName(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := validForm()
	form.Set("name", "   ")
	submit(t, env, form)

	apps, err := env.apps.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("invalid submission stored %d applications, want 0", len(apps))
	}
}

func TestHandleSubmit_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := validForm()
	form.Set("email", "not-an-email")
	submit(t, env, form)

	apps, _ := env.apps.List(ctx)
	if len(apps) != 0 {
		t.Fatalf("invalid submission stored %d applications, want 0", len(apps))
	}
}

func TestHandleSubmit_SubmissionsClosed(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := env.flags.SetLiveResponses(ctx, false, "Test Admin"); err != nil {
		t.Fatalf("SetLiveResponses() error = %v", err)
	}

	submit(t, env, validForm())

	apps, _ := env.apps.List(ctx)
	if len(apps) != 0 {
		t.Fatalf("closed submissions stored %d applications, want 0", len(apps))
	}
}

func TestHandleSubmit_DuplicateInputsShareMembershipID(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	submit(t, env, validForm())
	submit(t, env, validForm())

	apps, err := env.apps.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("List() returned %d applications, want 2", len(apps))
	}
	if apps[0].MembershipID != apps[1].MembershipID {
		t.Errorf("membership ids differ: %q vs %q", apps[0].MembershipID, apps[1].MembershipID)
	}
}
