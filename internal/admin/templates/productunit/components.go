package productunit

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/productunits"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const (
	// ComponentName is the data-component value of the product-units table.
	ComponentName = "ProductUnitTable"
	BodyID        = "product-units-table"
	FiltersID     = "product-units-filters"
	route         = "/product-units"
)

var columns = []string{"Serial", "Sản phẩm", "Danh mục con", "Trạng thái", "Đơn hàng", "Bảo hành", "Nhập kho", "Cập nhật trạng thái"}

// Table renders the product-units container.
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
				Placeholder:   "Serial, SKU, tên sản phẩm, mã đơn…",
				StatusOptions: partials.StatusOptions(productunits.Statuses, productunits.Status.Label, nil, ""),
			},
		}))
	})
}

// Fragment renders the import form, unit rows and pager.
func Fragment(data TableData) templ.Component {
	registerOpen := false
	for _, f := range []string{"serial", "sku", "productName", "subcategoryId", "warrantyMonths"} {
		if data.FormErrors[f] != "" {
			registerOpen = true
		}
	}
	months := data.Value("warrantyMonths")
	if months == "" {
		months = "36"
	}
	return partials.TableFragment(partials.FragmentData{
		Columns:      columns,
		Rows:         rows(data),
		RowCount:     len(data.Rows),
		EmptyMessage: "Không có sản phẩm nào khớp bộ lọc.",
		Error:        data.Error,
		Notice:       data.Notice,
		Warning:      data.Warning,
		FormErrors:   data.FormErrors,
		FieldLabels:  FieldLabels,
		Form: partials.Form(partials.InlineForm{
			ID:      "product-unit-register",
			Title:   "Nhập kho sản phẩm",
			URL:     helpers.Route(data.BasePath, route),
			Target:  "#" + BodyID,
			Include: "#" + FiltersID,
			CSRF:    data.CSRF,
			Submit:  "Nhập kho",
			Open:    registerOpen,
			Fields: []partials.FormField{
				{Name: "serial", Label: "Số serial", Value: data.Value("serial"), Required: true, Error: data.FormErrors["serial"]},
				{Name: "sku", Label: "Mã SKU", Value: data.Value("sku"), Required: true, Error: data.FormErrors["sku"]},
				{Name: "productName", Label: "Tên sản phẩm", Value: data.Value("productName"), Required: true, Error: data.FormErrors["productName"]},
				{Name: "subcategoryId", Label: "Danh mục con", Type: "select", Value: data.Value("subcategoryId"), Options: data.SubcategoryOptions, Error: data.FormErrors["subcategoryId"]},
				{Name: "warrantyMonths", Label: "Bảo hành (tháng)", Type: "number", Value: months, Error: data.FormErrors["warrantyMonths"]},
			},
		}),
		Pagination: &partials.PaginationData{
			Page:        data.Page,
			FragmentURL: helpers.Route(data.BasePath, route+"/table"),
			RawQuery:    data.RawQuery,
			Target:      "#" + BodyID,
			Include:     "#" + FiltersID,
		},
	})
}

func rows(data TableData) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		for _, row := range data.Rows {
			w.Raw(`<tr data-row class="align-top"`)
			w.Attr("data-unit-id", row.ID)
			w.Raw(`><td class="px-4 py-3 font-mono text-sm text-slate-900">`)
			w.Highlight(row.Serial, data.Search)
			w.Raw(`</td><td class="px-4 py-3 text-sm"><p>`)
			w.Highlight(row.ProductName, data.Search)
			w.Raw(`</p><p class="text-xs text-slate-500">`)
			w.Text(row.SKU)
			w.Raw(`</p></td><td class="px-4 py-3 text-sm">`)
			w.Text(row.Subcategory)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Component(ctx, partials.StatusBadge(row.StatusLabel, row.StatusTone))
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Text(row.OrderNumber)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Text(row.Warranty)
			w.Raw(`</td><td class="px-4 py-3 text-sm text-slate-500">`)
			w.Text(row.Imported)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			if len(row.Next) > 0 {
				writeStatusForm(ctx, w, data, row)
			}
			w.Raw(`</td></tr>`)
		}
	})
}

func writeStatusForm(ctx context.Context, w *helpers.Writer, data TableData, row Row) {
	action := helpers.Route(data.BasePath, route+"/"+url.PathEscape(row.ID)+"/status")
	w.Raw(`<form data-status-form class="flex flex-wrap items-center gap-2" method="post"`)
	w.Attr("action", action)
	w.Attr("hx-post", action)
	w.Attr("hx-target", "#"+BodyID)
	w.Attr("hx-swap", "innerHTML")
	w.Attr("hx-include", "#"+FiltersID)
	w.Raw(`>`)
	w.Component(ctx, partials.CSRFInput(data.CSRF))
	w.Raw(`<select name="toStatus" aria-label="Trạng thái mới"`)
	w.Attr("class", helpers.InputClass)
	w.Raw(`>`)
	for _, opt := range row.Next {
		w.Raw(`<option`)
		w.Attr("value", opt.Value)
		w.Raw(`>`)
		w.Text(opt.Label)
		w.Raw(`</option>`)
	}
	w.Raw(`</select><input type="text" name="orderNumber" placeholder="Mã đơn (khi giữ hàng/bán)"`)
	w.Attr("class", helpers.InputClass)
	w.Attr("value", row.OrderNumber)
	w.Raw(`><button type="submit"`)
	w.Attr("class", helpers.ButtonClass(""))
	w.Raw(`>Cập nhật</button></form>`)
}
