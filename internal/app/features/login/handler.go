// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	adminstore "github.com/auraclub/aurahub/internal/app/store/admins"
	"github.com/auraclub/aurahub/internal/app/system/auth"
	"github.com/auraclub/aurahub/internal/app/system/ratelimit"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

type Handler struct {
	Admins  *adminstore.Store
	Limiter *ratelimit.LoginLimiter
	Log     *zap.Logger
}

func NewHandler(admins *adminstore.Store, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Admins:  admins,
		Limiter: limiter,
		Log:     logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// ServeLogin renders the sign-in form.
// GET /login
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		ReturnURL: r.URL.Query().Get("return"),
	})
}

// HandleLoginPost checks credentials and starts a session.
// POST /login
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if allowed, reason := h.Limiter.Check(r, email); !allowed {
		h.Log.Warn("login rate limited",
			zap.String("email", email),
			zap.String("reason", reason))
		h.renderFormWithError(w, r, "Too many attempts. Please wait a few minutes and try again.", email, returnURL)
		return
	}

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Email and password are required.", email, returnURL)
		return
	}

	admin, err := h.Admins.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, adminstore.ErrNotFound) {
		h.Log.Error("admin lookup failed", zap.String("email", email), zap.Error(err))
		h.renderFormWithError(w, r, "Something went wrong. Please try again.", email, returnURL)
		return
	}
	// Same message for unknown email and wrong password.
	if errors.Is(err, adminstore.ErrNotFound) || !adminstore.CheckPassword(admin, password) {
		h.renderFormWithError(w, r, "Invalid email or password.", email, returnURL)
		return
	}

	if err := auth.SignIn(w, r, admin); err != nil {
		h.Log.Error("session save failed", zap.String("email", email), zap.Error(err))
		h.renderFormWithError(w, r, "Could not start a session. Please try again.", email, returnURL)
		return
	}

	h.Limiter.ResetEmail(email)
	h.Log.Info("admin signed in", zap.String("email", email))

	dest := urlutil.SafeReturn(returnURL, "", "/admin")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	})
}
