// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	contactstore "github.com/auraclub/aurahub/internal/app/store/contacts"
	flagstore "github.com/auraclub/aurahub/internal/app/store/flags"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
)

type Handler struct {
	Contacts *contactstore.Store
	Flags    *flagstore.Store
	Log      *zap.Logger
}

func NewHandler(contacts *contactstore.Store, flags *flagstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Contacts: contacts,
		Flags:    flags,
		Log:      logger,
	}
}

type formData struct {
	viewdata.BaseVM
	Error  template.HTML
	Sent   bool
	Closed bool

	Name    string
	Email   string
	Subject string
	Message string
}

// ServeForm renders the contact form.
// GET /contact
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "contact", formData{
		BaseVM: viewdata.NewBaseVM(r, "Contact Us", "/"),
		Closed: h.submissionsClosed(r),
	})
}

// HandleSubmit processes the contact form POST.
// POST /contact
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if h.submissionsClosed(r) {
		templates.Render(w, r, "contact", formData{
			BaseVM: viewdata.NewBaseVM(r, "Contact Us", "/"),
			Closed: true,
		})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := formData{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	switch {
	case form.Name == "":
		h.reRenderWithError(w, r, form, "Name is required.")
		return
	case form.Email == "" || !validate.SimpleEmailValid(form.Email):
		h.reRenderWithError(w, r, form, "A valid email address is required.")
		return
	case form.Message == "":
		h.reRenderWithError(w, r, form, "A message is required.")
		return
	}

	sub := models.ContactSubmission{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}
	if _, err := h.Contacts.Create(ctx, sub); err != nil {
		h.Log.Error("create contact submission failed", zap.String("email", form.Email), zap.Error(err))
		h.reRenderWithError(w, r, form, "Something went wrong sending your message. Please try again.")
		return
	}

	templates.Render(w, r, "contact", formData{
		BaseVM: viewdata.NewBaseVM(r, "Contact Us", "/"),
		Sent:   true,
	})
}

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

func (h *Handler) reRenderWithError(w http.ResponseWriter, r *http.Request, form formData, msg string) {
	form.BaseVM = viewdata.NewBaseVM(r, "Contact Us", "/")
	form.Error = template.HTML(template.HTMLEscapeString(msg))
	templates.Render(w, r, "contact", form)
}
