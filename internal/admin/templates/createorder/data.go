package createorder

import (
	"strconv"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

// ItemLines is the number of item rows offered by the create form.
const ItemLines = 3

// TableData is the view model of the create-order fragment.
type TableData struct {
	partials.FragmentState
	Rows          []Row
	Page          pagination.Page
	StatusOptions []partials.Option
}

// Row is one order.
type Row struct {
	ID            string
	Number        string
	CustomerName  string
	CustomerPhone string
	Items         string
	Total         string
	StatusLabel   string
	StatusTone    string
	Created       string
	CanConfirm    bool
	CanCancel     bool
}

// NewTableData maps a page of orders into the view model.
func NewTableData(state partials.FragmentState, result orders.ListResult) TableData {
	data := TableData{
		FragmentState: state,
		Page:          result.Page,
		StatusOptions: partials.StatusOptions(orders.Statuses, orders.Status.Label, result.Counts, state.Status),
	}
	for _, o := range result.Orders {
		data.Rows = append(data.Rows, Row{
			ID:            o.ID,
			Number:        o.Number,
			CustomerName:  o.Customer.Name,
			CustomerPhone: o.Customer.Phone,
			Items:         itemSummary(o),
			Total:         helpers.Currency(o.Total),
			StatusLabel:   o.Status.Label(),
			StatusTone:    o.Status.Tone(),
			Created:       helpers.Relative(o.CreatedAt, state.Now),
			CanConfirm:    orders.CanTransition(o.Status, orders.StatusConfirmed),
			CanCancel:     orders.CanTransition(o.Status, orders.StatusCancelled),
		})
	}
	return data
}

func itemSummary(o orders.Order) string {
	if len(o.Items) == 0 {
		return ""
	}
	summary := o.Items[0].Name
	if len(o.Items) > 1 {
		summary += " và " + strconv.Itoa(len(o.Items)-1) + " sản phẩm khác"
	}
	return summary + " (" + strconv.Itoa(o.ItemCount()) + " món)"
}

// FieldLabels names the create form fields in error summaries.
var FieldLabels = func() map[string]string {
	labels := map[string]string{
		"customerName":    "Khách hàng",
		"customerPhone":   "Số điện thoại",
		"customerAddress": "Địa chỉ",
		"note":            "Ghi chú",
		"items":           "Sản phẩm",
	}
	for i := 0; i < ItemLines; i++ {
		n := strconv.Itoa(i + 1)
		prefix := "items." + strconv.Itoa(i)
		labels[prefix+".name"] = "Sản phẩm " + n
		labels[prefix+".quantity"] = "Số lượng " + n
		labels[prefix+".unitPrice"] = "Đơn giá " + n
	}
	return labels
}()
