// internal/app/features/join/handler.go
package join

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	applicationstore "github.com/auraclub/aurahub/internal/app/store/applications"
	flagstore "github.com/auraclub/aurahub/internal/app/store/flags"
	"github.com/auraclub/aurahub/internal/app/system/memberid"
	"github.com/auraclub/aurahub/internal/app/system/sheets"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
)

type Handler struct {
	Applications *applicationstore.Store
	Flags        *flagstore.Store
	Mirror       *sheets.Mirror
	Log          *zap.Logger
}

func NewHandler(apps *applicationstore.Store, flags *flagstore.Store, mirror *sheets.Mirror, logger *zap.Logger) *Handler {
	return &Handler{
		Applications: apps,
		Flags:        flags,
		Mirror:       mirror,
		Log:          logger,
	}
}

type formData struct {
	viewdata.BaseVM
	Error template.HTML

	Name           string
	Email          string
	RollNumber     string
	RegisterNumber string
	Year           string
	Section        string
	Department     string
	Participation  string
}

type successData struct {
	viewdata.BaseVM
	Name         string
	MembershipID string
}

type closedData struct {
	viewdata.BaseVM
	Message string
}

// ServeForm renders the membership application form.
// GET /join
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if h.submissionsClosed(r) {
		h.renderClosed(w, r)
		return
	}
	templates.Render(w, r, "join", formData{
		BaseVM: viewdata.NewBaseVM(r, "Join the Club", "/"),
	})
}

// HandleSubmit processes the application form POST.
// POST /join
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if h.submissionsClosed(r) {
		h.renderClosed(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := formData{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Email:          strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		RollNumber:     strings.TrimSpace(r.FormValue("roll_number")),
		RegisterNumber: strings.TrimSpace(r.FormValue("register_number")),
		Year:           strings.TrimSpace(r.FormValue("year")),
		Section:        strings.TrimSpace(r.FormValue("section")),
		Department:     strings.TrimSpace(r.FormValue("department")),
		Participation:  strings.TrimSpace(r.FormValue("participation")),
	}

	// Inline validation with specific messages.
	switch {
	case form.Name == "":
		h.reRenderWithError(w, r, form, "Name is required.")
		return
	case form.Email == "" || !validate.SimpleEmailValid(form.Email):
		h.reRenderWithError(w, r, form, "A valid email address is required.")
		return
	case form.RollNumber == "":
		h.reRenderWithError(w, r, form, "Roll number is required.")
		return
	case form.Year == "":
		h.reRenderWithError(w, r, form, "Year is required.")
		return
	case form.Department == "":
		h.reRenderWithError(w, r, form, "Department is required.")
		return
	}

	app := models.MembershipApplication{
		MembershipID:   memberid.Derive(form.Year, form.Department, form.RollNumber),
		Name:           form.Name,
		Email:          form.Email,
		RollNumber:     form.RollNumber,
		RegisterNumber: form.RegisterNumber,
		Year:           form.Year,
		Section:        form.Section,
		Department:     form.Department,
		Participation:  form.Participation,
	}

	created, err := h.Applications.Create(ctx, app)
	if err != nil {
		h.Log.Error("create application failed", zap.String("email", form.Email), zap.Error(err))
		h.reRenderWithError(w, r, form, "Something went wrong saving your application. Please try again.")
		return
	}

	// Mirroring to the spreadsheet is fire-and-forget; the application is
	// already persisted.
	if h.Mirror != nil {
		h.Mirror.Enqueue(created)
	}

	templates.Render(w, r, "join_success", successData{
		BaseVM:       viewdata.NewBaseVM(r, "Application Received", "/"),
		Name:         created.Name,
		MembershipID: created.MembershipID,
	})
}

// submissionsClosed reports whether the admin flag has disabled new
// submissions. A flag read failure keeps the form open.
func (h *Handler) submissionsClosed(r *http.Request) bool {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	flags, err := h.Flags.Get(ctx)
	if err != nil {
		h.Log.Warn("read admin flags failed", zap.Error(err))
		return false
	}
	return !flags.LiveResponsesEnabled
}

func (h *Handler) renderClosed(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "join_closed", closedData{
		BaseVM:  viewdata.NewBaseVM(r, "Applications Closed", "/"),
		Message: "Membership applications are closed right now. Check back soon or reach us through the contact page.",
	})
}

func (h *Handler) reRenderWithError(w http.ResponseWriter, r *http.Request, form formData, msg string) {
	form.BaseVM = viewdata.NewBaseVM(r, "Join the Club", "/")
	form.Error = template.HTML(template.HTMLEscapeString(msg))
	templates.Render(w, r, "join", form)
}
