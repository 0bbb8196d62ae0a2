package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/pcbuild"
)

// PCBuildsTable renders the build list and the editor of the selected build.
func (h *Handlers) PCBuildsTable(w http.ResponseWriter, r *http.Request) {
	h.renderPCBuilds(w, r, workspace(r), success(""))
}

// CreatePCBuild creates a draft build and opens it in the editor.
func (h *Handlers) CreatePCBuild(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	ws := workspace(r)
	build, err := h.pcbuilds.Create(r.Context(), pcbuilds.CreateRequest{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	})
	if err == nil {
		ws = ws.Select(build.ID)
	}
	h.renderPCBuilds(w, r, ws, outcomeFor(r, "pcbuilds.create", err, "Đã tạo cấu hình "+build.Name+"."))
}

// SetPCBuildComponent installs or replaces a part of a draft build.
func (h *Handlers) SetPCBuildComponent(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := chi.URLParam(r, "buildID")
	form := r.PostForm
	v := apperrors.NewValidation()
	component := pcbuilds.Component{
		Slot:        pcbuilds.Slot(strings.TrimSpace(form.Get("slot"))),
		ProductName: form.Get("productName"),
		Price:       formInt(form, "price", v, "Giá phải là số."),
		Quantity:    int(formInt(form, "quantity", v, "Số lượng phải là số nguyên.")),
	}
	ws := workspace(r).Select(id)
	if err := v.OrNil(); err != nil {
		h.renderPCBuilds(w, r, ws, invalid(r, v))
		return
	}
	_, err := h.pcbuilds.SetComponent(r.Context(), id, component)
	h.renderPCBuilds(w, r, ws, outcomeFor(r, "pcbuilds.set_component", err, "Đã cập nhật "+strings.ToLower(component.Slot.Label())+"."))
}

// RemovePCBuildComponent empties one slot of a draft build.
func (h *Handlers) RemovePCBuildComponent(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := chi.URLParam(r, "buildID")
	slot := pcbuilds.Slot(chi.URLParam(r, "slot"))
	_, err := h.pcbuilds.RemoveComponent(r.Context(), id, slot)
	h.renderPCBuilds(w, r, workspace(r).Select(id), outcomeFor(r, "pcbuilds.remove_component", err, "Đã gỡ "+strings.ToLower(slot.Label())+"."))
}

// PublishPCBuild makes a complete build visible to customers.
func (h *Handlers) PublishPCBuild(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := chi.URLParam(r, "buildID")
	build, err := h.pcbuilds.Publish(r.Context(), id)
	h.renderPCBuilds(w, r, workspace(r).Select(id), outcomeFor(r, "pcbuilds.publish", err, "Đã đăng bán "+build.Name+"."))
}

// UnpublishPCBuild returns a published build to draft.
func (h *Handlers) UnpublishPCBuild(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := chi.URLParam(r, "buildID")
	build, err := h.pcbuilds.Unpublish(r.Context(), id)
	h.renderPCBuilds(w, r, workspace(r).Select(id), outcomeFor(r, "pcbuilds.unpublish", err, "Đã ngừng bán "+build.Name+"."))
}

// DeletePCBuild removes a draft build and clears the selection.
func (h *Handlers) DeletePCBuild(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := chi.URLParam(r, "buildID")
	ws := workspace(r)
	err := h.pcbuilds.Delete(r.Context(), id)
	if err == nil {
		ws = ws.Select("")
	} else {
		ws = ws.Select(id)
	}
	h.renderPCBuilds(w, r, ws, outcomeFor(r, "pcbuilds.delete", err, "Đã xóa cấu hình."))
}

func (h *Handlers) renderPCBuilds(w http.ResponseWriter, r *http.Request, ws pcbuilds.Workspace, out outcome) {
	ctx := r.Context()
	params := readListParams(r)
	result, err := h.pcbuilds.List(ctx, pcbuilds.Query{Search: ws.Search, Status: ws.Status, Page: params.page})
	if err != nil {
		out = listFailed(r, "pcbuilds.list", err, out)
		result = pcbuilds.ListResult{}
	}

	var selected *pcbuilds.Build
	if ws.SelectedID != "" {
		build, err := h.pcbuilds.Get(ctx, ws.SelectedID)
		switch {
		case err == nil:
			selected = &build
		case errors.Is(err, apperrors.ErrNotFound):
			ws = ws.Select("")
		default:
			observability.FromContext(ctx).Warn("pc build lookup failed", zap.String("build_id", ws.SelectedID), zap.Error(err))
			ws = ws.Select("")
		}
	}

	state := h.fragmentState(r, params, string(ws.Status), out)
	state.RawQuery = params.rawQuery(ws.Values())
	writeFragment(w, r, out, pcbuild.Fragment(pcbuild.NewTableData(state, ws, result, selected)))
}

// workspace reads the editing state that htmx sends from the filter and state forms.
func workspace(r *http.Request) pcbuilds.Workspace {
	if r.Form == nil {
		_ = r.ParseForm()
	}
	return pcbuilds.WorkspaceFromValues(r.Form)
}
