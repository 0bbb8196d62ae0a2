package ui

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/warranty"
	adminwarranty "github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

const dateLayout = "2006-01-02"

// WarrantyTable renders the warranty records fragment.
func (h *Handlers) WarrantyTable(w http.ResponseWriter, r *http.Request) {
	h.renderWarranty(w, r, success(""))
}

// RegisterWarranty handles the new-warranty form. Blank product and duration fields are
// filled from the serial-number inventory.
func (h *Handlers) RegisterWarranty(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := r.PostForm
	v := apperrors.NewValidation()
	req := adminwarranty.RegisterRequest{
		Serial:      form.Get("serial"),
		ProductName: form.Get("productName"),
		Customer: adminwarranty.Customer{
			Name:  form.Get("customerName"),
			Phone: form.Get("customerPhone"),
		},
		Months: int(formInt(form, "months", v, "Số tháng bảo hành phải là số nguyên.")),
	}
	if raw := strings.TrimSpace(form.Get("startDate")); raw != "" {
		start, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			v.Add("startDate", "Ngày bắt đầu không hợp lệ.")
		}
		req.StartDate = start
	}
	if err := v.OrNil(); err != nil {
		h.renderWarranty(w, r, invalid(r, v))
		return
	}
	rec, err := h.warranty.Register(r.Context(), req)
	h.renderWarranty(w, r, outcomeFor(r, "warranty.register", err, "Đã đăng ký bảo hành "+rec.Code+"."))
}

// OpenWarrantyClaim files a repair claim against an active record.
func (h *Handlers) OpenWarrantyClaim(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	rec, err := h.warranty.OpenClaim(r.Context(), chi.URLParam(r, "warrantyID"), r.PostForm.Get("issue"))
	h.renderWarranty(w, r, outcomeFor(r, "warranty.open_claim", err, "Đã tiếp nhận yêu cầu bảo hành "+rec.Code+"."))
}

// ResolveWarrantyClaim closes an open claim.
func (h *Handlers) ResolveWarrantyClaim(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	rec, err := h.warranty.ResolveClaim(r.Context(), chi.URLParam(r, "warrantyID"), chi.URLParam(r, "claimID"), r.PostForm.Get("resolution"))
	h.renderWarranty(w, r, outcomeFor(r, "warranty.resolve_claim", err, "Đã hoàn tất yêu cầu bảo hành "+rec.Code+"."))
}

// VoidWarranty cancels coverage.
func (h *Handlers) VoidWarranty(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	rec, err := h.warranty.Void(r.Context(), chi.URLParam(r, "warrantyID"), r.PostForm.Get("reason"))
	h.renderWarranty(w, r, outcomeFor(r, "warranty.void", err, "Đã hủy bảo hành "+rec.Code+"."))
}

func (h *Handlers) renderWarranty(w http.ResponseWriter, r *http.Request, out outcome) {
	params := readListParams(r)
	status, _ := adminwarranty.ParseStatus(params.status)
	result, err := h.warranty.List(r.Context(), adminwarranty.Query{Search: params.search, Status: status, Page: params.page})
	if err != nil {
		out = listFailed(r, "warranty.list", err, out)
		result = adminwarranty.ListResult{}
	}
	state := h.fragmentState(r, params, string(status), out)
	writeFragment(w, r, out, warranty.Fragment(warranty.NewTableData(state, result)))
}
