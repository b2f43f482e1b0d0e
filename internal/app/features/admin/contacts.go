// internal/app/features/admin/contacts.go
package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/auraclub/aurahub/internal/app/system/csvutil"
	"github.com/auraclub/aurahub/internal/app/system/navigation"
	"github.com/auraclub/aurahub/internal/app/system/paging"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type contactListData struct {
	viewdata.BaseVM
	Contacts  []models.ContactSubmission
	Page      paging.Range
	HasPrev   bool
	HasNext   bool
	ReturnURL string
}

// ServeContacts renders the contact submissions table, newest first, one
// page at a time.
// GET /admin/contacts
func (h *Handler) ServeContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	start := paging.ParseStart(r)
	subs, err := h.Contacts.ListPage(ctx, int64(start-1), paging.LimitPlusOne())
	if err != nil {
		h.Log.Error("admin: list contacts failed", zap.Error(err))
		http.Error(w, "could not load contact submissions", http.StatusInternalServerError)
		return
	}
	hasNext := paging.Trim(&subs)

	templates.Render(w, r, "admin_contacts", contactListData{
		BaseVM:    viewdata.NewBaseVM(r, "Contact Submissions", "/admin"),
		Contacts:  subs,
		Page:      paging.ComputeRange(start, len(subs)),
		HasPrev:   start > 1,
		HasNext:   hasNext,
		ReturnURL: r.URL.RequestURI(),
	})
}

// HandleContactStatus marks a submission read or responded.
// POST /admin/contacts/{id}/status
func (h *Handler) HandleContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	status := strings.TrimSpace(r.FormValue("status"))
	switch status {
	case models.ContactNew, models.ContactRead, models.ContactResponded:
	default:
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	if err := h.Contacts.SetStatus(ctx, id, status); err != nil {
		h.Log.Error("admin: set contact status failed",
			zap.String("contact_id", id.Hex()),
			zap.String("status", status),
			zap.Error(err))
		http.Error(w, "could not update submission", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.ContactsBackURL), http.StatusSeeOther)
}

// ExportContactsCSV streams every contact submission as a CSV download.
// GET /admin/contacts/export
func (h *Handler) ExportContactsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	subs, err := h.Contacts.List(ctx)
	if err != nil {
		h.Log.Error("admin: export contacts failed", zap.Error(err))
		http.Error(w, "could not export contact submissions", http.StatusInternalServerError)
		return
	}

	csvutil.SetDownloadHeaders(w, "contact_submissions.csv")
	if err := csvutil.WriteContacts(w, subs); err != nil {
		h.Log.Error("admin: write contacts csv failed", zap.Error(err))
	}
}
