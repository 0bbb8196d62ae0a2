package warranty

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
	adminwarranty "github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

const (
	// ComponentName is the data-component value of the warranty table.
	ComponentName = "WarrantyTable"
	// BodyID is the element swapped by fragment and mutation responses.
	BodyID    = "warranty-table"
	FiltersID = "warranty-filters"
	route     = "/warranty"
)

var columns = []string{"Mã BH", "Sản phẩm", "Khách hàng", "Thời hạn", "Trạng thái", "Yêu cầu", "Thao tác"}

// Table renders the warranty table container. Rows load from the fragment route.
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
				Placeholder:   "Mã bảo hành, serial, khách hàng…",
				StatusOptions: partials.StatusOptions(adminwarranty.Statuses, adminwarranty.Status.Label, nil, ""),
			},
		}))
	})
}

// Fragment renders the register form, rows and pager.
func Fragment(data TableData) templ.Component {
	base := data.BasePath
	return partials.TableFragment(partials.FragmentData{
		Columns:      columns,
		Rows:         rows(data),
		RowCount:     len(data.Rows),
		EmptyMessage: "Chưa có phiếu bảo hành phù hợp.",
		Error:        data.Error,
		Notice:       data.Notice,
		Warning:      data.Warning,
		FormErrors:   data.FormErrors,
		FieldLabels:  FieldLabels,
		Form:         registerForm(data),
		Pagination: &partials.PaginationData{
			Page:        data.Page,
			FragmentURL: helpers.Route(base, route+"/table"),
			RawQuery:    data.RawQuery,
			Target:      "#" + BodyID,
			Include:     "#" + FiltersID,
		},
	})
}

func registerForm(data TableData) templ.Component {
	months := data.Value("months")
	if months == "" {
		months = "12"
	}
	return partials.Form(partials.InlineForm{
		ID:      "warranty-register",
		Title:   "Tạo phiếu bảo hành",
		URL:     helpers.Route(data.BasePath, route),
		Target:  "#" + BodyID,
		Include: "#" + FiltersID,
		CSRF:    data.CSRF,
		Submit:  "Lưu phiếu",
		Open:    data.FormOpen(),
		Fields: []partials.FormField{
			{Name: "serial", Label: "Số serial", Value: data.Value("serial"), Required: true, Error: data.FormErrors["serial"]},
			{Name: "productName", Label: "Sản phẩm", Value: data.Value("productName"), Placeholder: "Tự điền theo serial nếu để trống", Error: data.FormErrors["productName"]},
			{Name: "months", Label: "Số tháng", Type: "number", Value: months, Error: data.FormErrors["months"]},
			{Name: "customerName", Label: "Khách hàng", Value: data.Value("customerName"), Required: true, Error: data.FormErrors["customerName"]},
			{Name: "customerPhone", Label: "Số điện thoại", Type: "tel", Value: data.Value("customerPhone"), Required: true, Error: data.FormErrors["customerPhone"]},
			{Name: "startDate", Label: "Ngày bắt đầu", Type: "date", Value: data.Value("startDate"), Error: data.FormErrors["startDate"]},
		},
	})
}

func rows(data TableData) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		for _, row := range data.Rows {
			w.Raw(`<tr data-row class="align-top"`)
			w.Attr("data-warranty-id", row.ID)
			w.Raw(`><td class="px-4 py-3 text-sm font-medium text-slate-900">`)
			w.Highlight(row.Code, data.Search)
			w.Raw(`</td><td class="px-4 py-3 text-sm"><p class="text-slate-900">`)
			w.Highlight(row.ProductName, data.Search)
			w.Raw(`</p><p class="font-mono text-xs text-slate-500">`)
			w.Highlight(row.Serial, data.Search)
			w.Raw(`</p></td><td class="px-4 py-3 text-sm"><p>`)
			w.Highlight(row.CustomerName, data.Search)
			w.Raw(`</p><p class="text-xs text-slate-500">`)
			w.Text(row.CustomerPhone)
			w.Raw(`</p></td><td class="px-4 py-3 text-sm"><p>`)
			w.Text(row.Start + " → " + row.End)
			w.Raw(`</p><p class="text-xs text-slate-500">`)
			w.Text(strconv.Itoa(row.Months) + " tháng")
			if row.Coverage != "" {
				w.Text(" · " + row.Coverage)
			}
			w.Raw(`</p></td><td class="px-4 py-3 text-sm">`)
			w.Component(ctx, partials.StatusBadge(row.StatusLabel, row.StatusTone))
			if row.VoidReason != "" {
				w.Raw(`<p class="mt-1 text-xs text-slate-500">`)
				w.Text(row.VoidReason)
				w.Raw(`</p>`)
			}
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			writeClaims(ctx, w, data, row)
			w.Raw(`</td><td class="space-y-2 px-4 py-3 text-sm">`)
			if row.CanClaim {
				w.Component(ctx, partials.ActionForm(action(data, row.ID+"/claims", partials.InlineAction{
					InputName:   "issue",
					Placeholder: "Mô tả lỗi",
					Label:       "Tiếp nhận",
				})))
			}
			if row.CanVoid {
				w.Component(ctx, partials.ActionForm(action(data, row.ID+"/void", partials.InlineAction{
					InputName:   "reason",
					Placeholder: "Lý do hủy",
					Label:       "Hủy phiếu",
					Variant:     "danger",
					Confirm:     "Hủy phiếu bảo hành " + row.Code + "?",
					Optional:    true,
				})))
			}
			w.Raw(`</td></tr>`)
		}
	})
}

func writeClaims(ctx context.Context, w *helpers.Writer, data TableData, row Row) {
	if row.ClaimCount == 0 {
		w.Raw(`<span class="text-slate-400">—</span>`)
		return
	}
	w.Raw(`<p class="text-xs text-slate-500">`)
	w.Text(strconv.Itoa(row.ClaimCount) + " yêu cầu")
	w.Raw(`</p>`)
	for _, claim := range row.OpenClaims {
		w.Raw(`<div data-open-claim class="mt-2 rounded border border-amber-200 bg-amber-50 p-2"`)
		w.Attr("data-claim-id", claim.ID)
		w.Raw(`><p class="text-xs text-amber-800">`)
		w.Text(claim.Issue + " · " + claim.Opened)
		w.Raw(`</p>`)
		w.Component(ctx, partials.ActionForm(action(data, row.ID+"/claims/"+claim.ID+"/resolve", partials.InlineAction{
			InputName:   "resolution",
			Placeholder: "Kết quả xử lý",
			Label:       "Hoàn tất",
			Variant:     "primary",
		})))
		w.Raw(`</div>`)
	}
}

func action(data TableData, suffix string, a partials.InlineAction) partials.InlineAction {
	a.URL = helpers.Route(data.BasePath, route+"/"+suffix)
	a.Target = "#" + BodyID
	a.Include = "#" + FiltersID
	a.CSRF = data.CSRF
	return a
}
