package ui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/productunits"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/productunit"
)

// ProductUnitsTable renders the serial-number inventory fragment.
func (h *Handlers) ProductUnitsTable(w http.ResponseWriter, r *http.Request) {
	h.renderProductUnits(w, r, success(""))
}

// RegisterProductUnit adds an imported unit to stock.
func (h *Handlers) RegisterProductUnit(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := r.PostForm
	v := apperrors.NewValidation()
	req := productunits.RegisterRequest{
		Serial:         form.Get("serial"),
		SKU:            form.Get("sku"),
		ProductName:    form.Get("productName"),
		SubcategoryID:  form.Get("subcategoryId"),
		WarrantyMonths: int(formInt(form, "warrantyMonths", v, "Thời hạn bảo hành phải là số tháng.")),
	}
	if err := v.OrNil(); err != nil {
		h.renderProductUnits(w, r, invalid(r, v))
		return
	}
	unit, err := h.productUnits.Register(r.Context(), req)
	h.renderProductUnits(w, r, outcomeFor(r, "productunits.register", err, "Đã nhập kho serial "+unit.Serial+"."))
}

// UpdateProductUnitStatus moves a unit along its lifecycle.
func (h *Handlers) UpdateProductUnitStatus(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	status, ok := productunits.ParseStatus(r.PostForm.Get("toStatus"))
	if !ok {
		v := apperrors.NewValidation()
		v.Add("toStatus", "Vui lòng chọn trạng thái mới.")
		h.renderProductUnits(w, r, invalid(r, v))
		return
	}
	unit, err := h.productUnits.UpdateStatus(r.Context(), chi.URLParam(r, "unitID"), productunits.StatusUpdate{
		Status:      status,
		OrderNumber: r.PostForm.Get("orderNumber"),
	})
	h.renderProductUnits(w, r, outcomeFor(r, "productunits.update_status", err,
		"Serial "+unit.Serial+" chuyển sang "+strings.ToLower(status.Label())+"."))
}

func (h *Handlers) renderProductUnits(w http.ResponseWriter, r *http.Request, out outcome) {
	ctx := r.Context()
	params := readListParams(r)
	status, _ := productunits.ParseStatus(params.status)
	result, err := h.productUnits.List(ctx, productunits.Query{Search: params.search, Status: status, Page: params.page})
	if err != nil {
		out = listFailed(r, "productunits.list", err, out)
		result = productunits.ListResult{}
	}

	var cats []subcategories.Subcategory
	catalog, err := h.subcategories.List(ctx, subcategories.Query{Page: pagination.Params{Page: 1, PageSize: pagination.MaxPageSize}})
	if err != nil {
		observability.FromContext(ctx).Warn("subcategory options unavailable", zap.Error(err))
	} else {
		cats = catalog.Subcategories
	}

	state := h.fragmentState(r, params, string(status), out)
	writeFragment(w, r, out, productunit.Fragment(productunit.NewTableData(state, result, cats)))
}
