// internal/app/features/admin/members.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	memberstore "github.com/auraclub/aurahub/internal/app/store/members"
	"github.com/auraclub/aurahub/internal/app/system/formutil"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memberListData struct {
	viewdata.BaseVM
	Members []models.ClubMember
}

type memberFormData struct {
	formutil.Base
	Name     string
	Position string
	Bio      string
	ImageURL string
}

// ServeMembers renders the club members management page.
// GET /admin/members
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	members, err := h.Members.List(ctx)
	if err != nil {
		h.Log.Error("admin: list members failed", zap.Error(err))
		http.Error(w, "could not load members", http.StatusInternalServerError)
		return
	}
	templates.Render(w, r, "admin_members", memberListData{
		BaseVM:  viewdata.NewBaseVM(r, "Club Members", "/admin"),
		Members: members,
	})
}

// ServeNewMember renders the add-member form.
// GET /admin/members/new
func (h *Handler) ServeNewMember(w http.ResponseWriter, r *http.Request) {
	data := memberFormData{}
	formutil.SetBase(&data.Base, r, "Add Member", "/admin/members")
	templates.Render(w, r, "admin_member_form", data)
}

// HandleCreateMember processes the add-member form.
// POST /admin/members
func (h *Handler) HandleCreateMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := memberFormData{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Position: strings.TrimSpace(r.FormValue("position")),
		Bio:      strings.TrimSpace(r.FormValue("bio")),
		ImageURL: strings.TrimSpace(r.FormValue("image_url")),
	}
	if form.Name == "" {
		h.reRenderMemberForm(w, r, form, "Name is required.")
		return
	}
	if form.Position == "" {
		h.reRenderMemberForm(w, r, form, "Position is required.")
		return
	}

	m := models.ClubMember{
		Name:     form.Name,
		Position: form.Position,
		Bio:      form.Bio,
		ImageURL: form.ImageURL,
	}
	if _, err := h.Members.Create(ctx, m); err != nil {
		h.Log.Error("admin: create member failed", zap.Error(err))
		h.reRenderMemberForm(w, r, form, "Something went wrong saving the member.")
		return
	}
	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

// HandleDeleteMember removes a member from the public roster.
// POST /admin/members/{id}/delete
func (h *Handler) HandleDeleteMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.Members.Delete(ctx, id); err != nil && !errors.Is(err, memberstore.ErrNotFound) {
		h.Log.Error("admin: delete member failed", zap.String("member_id", id.Hex()), zap.Error(err))
		http.Error(w, "could not delete member", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

func (h *Handler) reRenderMemberForm(w http.ResponseWriter, r *http.Request, form memberFormData, msg string) {
	formutil.SetBase(&form.Base, r, "Add Member", "/admin/members")
	form.SetError(msg)
	templates.Render(w, r, "admin_member_form", form)
}
