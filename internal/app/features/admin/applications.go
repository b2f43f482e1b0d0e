// internal/app/features/admin/applications.go
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

type applicationListData struct {
	viewdata.BaseVM
	Applications []models.MembershipApplication
	Page         paging.Range
	HasPrev      bool
	HasNext      bool
	ReturnURL    string
}

// ServeApplications renders the membership applications review table,
// newest first, one page at a time.
// GET /admin/applications
func (h *Handler) ServeApplications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	start := paging.ParseStart(r)
	apps, err := h.Applications.ListPage(ctx, int64(start-1), paging.LimitPlusOne())
	if err != nil {
		h.Log.Error("admin: list applications failed", zap.Error(err))
		http.Error(w, "could not load applications", http.StatusInternalServerError)
		return
	}
	hasNext := paging.Trim(&apps)

	templates.Render(w, r, "admin_applications", applicationListData{
		BaseVM:       viewdata.NewBaseVM(r, "Membership Applications", "/admin"),
		Applications: apps,
		Page:         paging.ComputeRange(start, len(apps)),
		HasPrev:      start > 1,
		HasNext:      hasNext,
		ReturnURL:    r.URL.RequestURI(),
	})
}

// HandleApplicationStatus records an approve/reject decision and returns
// to the list page the admin was on.
// POST /admin/applications/{id}/status
func (h *Handler) HandleApplicationStatus(w http.ResponseWriter, r *http.Request) {
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
	case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
	default:
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	if err := h.Applications.SetStatus(ctx, id, status); err != nil {
		h.Log.Error("admin: set application status failed",
			zap.String("application_id", id.Hex()),
			zap.String("status", status),
			zap.Error(err))
		http.Error(w, "could not update application", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.ApplicationsBackURL), http.StatusSeeOther)
}

// ExportApplicationsCSV streams every application as a CSV download.
// GET /admin/applications/export
func (h *Handler) ExportApplicationsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	apps, err := h.Applications.List(ctx)
	if err != nil {
		h.Log.Error("admin: export applications failed", zap.Error(err))
		http.Error(w, "could not export applications", http.StatusInternalServerError)
		return
	}

	csvutil.SetDownloadHeaders(w, "membership_applications.csv")
	if err := csvutil.WriteApplications(w, apps); err != nil {
		h.Log.Error("admin: write applications csv failed", zap.Error(err))
	}
}
