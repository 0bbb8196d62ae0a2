package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/subcategory"
)

// SubcategoriesTable renders the subcategory list fragment.
func (h *Handlers) SubcategoriesTable(w http.ResponseWriter, r *http.Request) {
	h.renderSubcategories(w, r, success(""))
}

// CreateSubcategory handles the new-subcategory form.
func (h *Handlers) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	sc, err := h.subcategories.Create(r.Context(), subcategories.CreateRequest{
		Parent:      r.PostForm.Get("parent"),
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	})
	h.renderSubcategories(w, r, outcomeFor(r, "subcategories.create", err, "Đã thêm danh mục con "+sc.Name+"."))
}

// ToggleSubcategory flips whether a subcategory is shown on the storefront.
func (h *Handlers) ToggleSubcategory(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "subcategoryID")
	sc, err := h.subcategories.Get(ctx, id)
	if err == nil {
		sc, err = h.subcategories.SetActive(ctx, id, !sc.Active)
	}
	notice := "Đã ẩn danh mục con " + sc.Name + "."
	if sc.Active {
		notice = "Đã hiển thị danh mục con " + sc.Name + "."
	}
	h.renderSubcategories(w, r, outcomeFor(r, "subcategories.toggle", err, notice))
}

// DeleteSubcategory removes an empty subcategory.
func (h *Handlers) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	err := h.subcategories.Delete(r.Context(), chi.URLParam(r, "subcategoryID"))
	h.renderSubcategories(w, r, outcomeFor(r, "subcategories.delete", err, "Đã xóa danh mục con."))
}

func (h *Handlers) renderSubcategories(w http.ResponseWriter, r *http.Request, out outcome) {
	params := readListParams(r)
	status, _ := subcategories.ParseStatus(params.status)
	category := strings.TrimSpace(r.Form.Get("category"))
	result, err := h.subcategories.List(r.Context(), subcategories.Query{
		Search: params.search,
		Parent: category,
		Status: status,
		Page:   params.page,
	})
	if err != nil {
		out = listFailed(r, "subcategories.list", err, out)
		result = subcategories.ListResult{}
	}
	state := h.fragmentState(r, params, string(status), out)
	if category != "" {
		state.RawQuery = params.rawQuery(url.Values{"category": {category}})
	}
	writeFragment(w, r, out, subcategory.Fragment(subcategory.NewTableData(state, result)))
}
