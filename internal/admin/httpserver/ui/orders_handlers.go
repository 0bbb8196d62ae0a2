package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/createorder"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/orderpreparation"
)

// CreateOrderTable renders the order list fragment of the create-order page.
func (h *Handlers) CreateOrderTable(w http.ResponseWriter, r *http.Request) {
	h.renderCreateOrders(w, r, success(""))
}

// CreateOrder handles the create-order form.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	req, v := buildCreateOrderRequest(r)
	if err := v.OrNil(); err != nil {
		h.renderCreateOrders(w, r, invalid(r, v))
		return
	}
	order, err := h.orders.Create(r.Context(), req)
	h.renderCreateOrders(w, r, outcomeFor(r, "orders.create", err, "Đã tạo đơn hàng "+order.Number+"."))
}

// ConfirmOrder moves a draft order to confirmed.
func (h *Handlers) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	order, err := h.orders.Confirm(r.Context(), chi.URLParam(r, "orderID"))
	h.renderCreateOrders(w, r, outcomeFor(r, "orders.confirm", err, "Đã xác nhận đơn hàng "+order.Number+"."))
}

// CancelOrder cancels an order that has not been handed to shipping.
func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	order, err := h.orders.Cancel(r.Context(), chi.URLParam(r, "orderID"))
	h.renderCreateOrders(w, r, outcomeFor(r, "orders.cancel", err, "Đã hủy đơn hàng "+order.Number+"."))
}

func (h *Handlers) renderCreateOrders(w http.ResponseWriter, r *http.Request, out outcome) {
	params := readListParams(r)
	query := orders.Query{Search: params.search, Page: params.page}
	status, ok := orders.ParseStatus(params.status)
	if ok {
		query.Statuses = []orders.Status{status}
	}
	result, err := h.orders.List(r.Context(), query)
	if err != nil {
		out = listFailed(r, "orders.list", err, out)
		result = orders.ListResult{}
	}
	state := h.fragmentState(r, params, string(status), out)
	writeFragment(w, r, out, createorder.Fragment(createorder.NewTableData(state, result)))
}

// PreparationTable renders the warehouse preparation queue.
func (h *Handlers) PreparationTable(w http.ResponseWriter, r *http.Request) {
	h.renderPreparation(w, r, success(""))
}

// AdvanceOrder moves an order one step through preparation.
func (h *Handlers) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	order, err := h.orders.Advance(r.Context(), chi.URLParam(r, "orderID"))
	notice := ""
	if err == nil {
		notice = "Đơn hàng " + order.Number + " chuyển sang " + strings.ToLower(order.Status.Label()) + "."
	}
	h.renderPreparation(w, r, outcomeFor(r, "orders.advance", err, notice))
}

func (h *Handlers) renderPreparation(w http.ResponseWriter, r *http.Request, out outcome) {
	params := readListParams(r)
	query := orders.Query{Search: params.search, Page: params.page}
	status, ok := orders.ParseStatus(params.status)
	if ok {
		query.Statuses = []orders.Status{status}
	}
	result, err := h.orders.PreparationQueue(r.Context(), query)
	if err != nil {
		out = listFailed(r, "orders.preparation", err, out)
		result = orders.ListResult{}
	}
	state := h.fragmentState(r, params, string(status), out)
	writeFragment(w, r, out, orderpreparation.Fragment(orderpreparation.NewTableData(state, result)))
}

// buildCreateOrderRequest reads the customer block and the fixed item lines. Lines keep their
// form index so field errors land on the right inputs.
func buildCreateOrderRequest(r *http.Request) (orders.CreateRequest, *apperrors.ValidationError) {
	form := r.PostForm
	v := apperrors.NewValidation()
	req := orders.CreateRequest{
		Customer: orders.Customer{
			Name:    form.Get("customerName"),
			Phone:   form.Get("customerPhone"),
			Address: form.Get("customerAddress"),
		},
		Note: strings.TrimSpace(form.Get("note")),
	}
	for i := 0; i < createorder.ItemLines; i++ {
		prefix := "items." + strconv.Itoa(i)
		req.Items = append(req.Items, orders.Item{
			SKU:       form.Get(prefix + ".sku"),
			Name:      form.Get(prefix + ".name"),
			Quantity:  int(formInt(form, prefix+".quantity", v, "Số lượng phải là số nguyên.")),
			UnitPrice: formInt(form, prefix+".unitPrice", v, "Đơn giá phải là số."),
		})
	}
	return req, v
}
