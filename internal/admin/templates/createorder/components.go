package createorder

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const (
	// ComponentName is the data-component value of the create-order table.
	ComponentName = "CreateOrderTable"
	BodyID        = "create-orders-table"
	FiltersID     = "create-orders-filters"
	route         = "/orders/create"
)

var columns = []string{"Mã đơn", "Khách hàng", "Sản phẩm", "Tổng tiền", "Trạng thái", "Tạo lúc", ""}

// Table renders the create-order container.
func Table() templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		fragment := helpers.Route(helpers.BasePath(ctx), route+"/table")
		w.Component(ctx, partials.TableShell(partials.ShellData{
			Component:   ComponentName,
			BodyID:      BodyID,
			FragmentURL: fragment,
			Include:     "#" + FiltersID,
			Columns:     columns,
			Filters: partials.FilterData{
				FormID:        FiltersID,
				FragmentURL:   fragment,
				Target:        "#" + BodyID,
				Placeholder:   "Mã đơn, tên hoặc số điện thoại khách…",
				StatusOptions: partials.StatusOptions(orders.Statuses, orders.Status.Label, nil, ""),
			},
		}))
	})
}

// Fragment renders the new-order form, the order rows and the pager.
func Fragment(data TableData) templ.Component {
	return partials.TableFragment(partials.FragmentData{
		Columns:      columns,
		Rows:         rows(data),
		RowCount:     len(data.Rows),
		EmptyMessage: "Chưa có đơn hàng nào.",
		Error:        data.Error,
		Notice:       data.Notice,
		Warning:      data.Warning,
		FormErrors:   data.FormErrors,
		FieldLabels:  FieldLabels,
		Form:         createForm(data),
		Pagination: &partials.PaginationData{
			Page:        data.Page,
			FragmentURL: helpers.Route(data.BasePath, route+"/table"),
			RawQuery:    data.RawQuery,
			Target:      "#" + BodyID,
			Include:     "#" + FiltersID,
		},
	})
}

func createForm(data TableData) templ.Component {
	field := func(name, label, typ string, required bool) partials.FormField {
		return partials.FormField{
			Name:     name,
			Label:    label,
			Type:     typ,
			Value:    data.Value(name),
			Required: required,
			Error:    data.FormErrors[name],
		}
	}
	fields := []partials.FormField{
		field("customerName", "Khách hàng", "", true),
		field("customerPhone", "Số điện thoại", "tel", true),
		field("customerAddress", "Địa chỉ giao hàng", "", false),
	}
	for i := 0; i < ItemLines; i++ {
		prefix := "items." + strconv.Itoa(i)
		n := strconv.Itoa(i + 1)
		fields = append(fields,
			field(prefix+".name", "Sản phẩm "+n, "", i == 0),
			field(prefix+".quantity", "Số lượng", "number", false),
			field(prefix+".unitPrice", "Đơn giá (₫)", "number", false),
		)
	}
	note := field("note", "Ghi chú", "textarea", false)
	note.Wide = true
	fields = append(fields, note)

	return partials.Form(partials.InlineForm{
		ID:      "order-create",
		Title:   "Tạo đơn hàng mới",
		URL:     helpers.Route(data.BasePath, route),
		Target:  "#" + BodyID,
		Include: "#" + FiltersID,
		CSRF:    data.CSRF,
		Submit:  "Lưu đơn nháp",
		Open:    data.FormOpen(),
		Fields:  fields,
	})
}

func rows(data TableData) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		for _, row := range data.Rows {
			base := helpers.Route(data.BasePath, "/orders/"+url.PathEscape(row.ID))
			w.Raw(`<tr data-row`)
			w.Attr("data-order-id", row.ID)
			w.Raw(`><td class="px-4 py-3 text-sm font-medium text-slate-900">`)
			w.Highlight(row.Number, data.Search)
			w.Raw(`</td><td class="px-4 py-3 text-sm"><p>`)
			w.Highlight(row.CustomerName, data.Search)
			w.Raw(`</p><p class="text-xs text-slate-500">`)
			w.Text(row.CustomerPhone)
			w.Raw(`</p></td><td class="px-4 py-3 text-sm">`)
			w.Text(row.Items)
			w.Raw(`</td><td class="px-4 py-3 text-sm font-medium">`)
			w.Text(row.Total)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Component(ctx, partials.StatusBadge(row.StatusLabel, row.StatusTone))
			w.Raw(`</td><td class="px-4 py-3 text-sm text-slate-500">`)
			w.Text(row.Created)
			w.Raw(`</td><td class="flex justify-end gap-2 px-4 py-3">`)
			if row.CanConfirm {
				w.Component(ctx, partials.Button(partials.ActionButton{
					Label:   "Xác nhận",
					URL:     base + "/confirm",
					Target:  "#" + BodyID,
					Include: "#" + FiltersID,
					Variant: "primary",
				}))
			}
			if row.CanCancel {
				w.Component(ctx, partials.Button(partials.ActionButton{
					Label:   "Hủy",
					URL:     base + "/cancel",
					Target:  "#" + BodyID,
					Include: "#" + FiltersID,
					Variant: "danger",
					Confirm: "Hủy đơn " + row.Number + "?",
				}))
			}
			w.Raw(`</td></tr>`)
		}
	})
}
