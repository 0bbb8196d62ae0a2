package pcbuild

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const (
	// ProviderName is the data-component value of the workspace provider.
	ProviderName = "PcBuildsProvider"
	// ComponentName is the data-component value of the builds table.
	ComponentName = "PcBuildTable"
	// StateID is the hidden form mirroring the workspace.
	StateID   = "pc-builds-state"
	BodyID    = "pc-builds-table"
	FiltersID = "pc-builds-filters"
	route     = "/pc-builds"
)

var columns = []string{"Cấu hình", "Linh kiện", "Tổng giá", "Trạng thái", "Cập nhật", ""}

// Provider scopes ws to child and renders the state form its htmx requests include.
func Provider(ws pcbuilds.Workspace, child templ.Component) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<div`)
		w.Attr("data-component", ProviderName)
		w.Raw(`>`)
		w.Component(ctx, stateForm(ws, false))
		w.Component(pcbuilds.WithWorkspace(ctx, ws), child)
		w.Raw(`</div>`)
	})
}

func stateForm(ws pcbuilds.Workspace, oob bool) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		w.Raw(`<form hidden data-workspace-state`)
		w.Attr("id", StateID)
		w.AttrIf(oob, "hx-swap-oob", "true")
		w.Raw(`><input type="hidden" name="selected"`)
		w.Attr("value", ws.SelectedID)
		w.Raw(`></form>`)
	})
}

// Table renders the builds table container. It must be rendered inside Provider.
func Table() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		ws, ok := pcbuilds.WorkspaceFromContext(ctx)
		if !ok {
			return pcbuilds.ErrNoWorkspace
		}
		fragment := helpers.Route(helpers.BasePath(ctx), route+"/table")
		return partials.TableShell(partials.ShellData{
			Component:   ComponentName,
			BodyID:      BodyID,
			FragmentURL: helpers.BuildURL(fragment, ws.Values().Encode()),
			Columns:     columns,
			Filters: partials.FilterData{
				FormID:        FiltersID,
				FragmentURL:   fragment,
				Target:        "#" + BodyID,
				Include:       "#" + StateID,
				Search:        ws.Search,
				Placeholder:   "Tên cấu hình hoặc linh kiện…",
				StatusOptions: partials.StatusOptions([]pcbuilds.Status{pcbuilds.StatusDraft, pcbuilds.StatusPublished}, pcbuilds.Status.Label, nil, string(ws.Status)),
			},
		}).Render(ctx, out)
	})
}

// Fragment renders the build list, the editor of the selected build and an out-of-band update
// of the workspace state form.
func Fragment(data TableData) templ.Component {
	createOpen := data.FormErrors["name"] != "" || data.FormErrors["description"] != ""
	return partials.TableFragment(partials.FragmentData{
		Columns:      columns,
		Rows:         rows(data),
		RowCount:     len(data.Rows),
		EmptyMessage: "Chưa có cấu hình nào.",
		Error:        data.Error,
		Notice:       data.Notice,
		Warning:      data.Warning,
		FormErrors:   data.FormErrors,
		FieldLabels:  FieldLabels,
		Form: partials.Form(partials.InlineForm{
			ID:      "pc-build-create",
			Title:   "Tạo cấu hình mới",
			URL:     helpers.Route(data.BasePath, route),
			Target:  "#" + BodyID,
			Include: "#" + FiltersID,
			CSRF:    data.CSRF,
			Submit:  "Tạo cấu hình",
			Open:    createOpen,
			Fields: []partials.FormField{
				{Name: "name", Label: "Tên cấu hình", Value: data.Value("name"), Required: true, Error: data.FormErrors["name"]},
				{Name: "description", Label: "Mô tả (Markdown)", Type: "textarea", Value: data.Value("description"), Wide: true, Error: data.FormErrors["description"]},
			},
		}),
		Pagination: &partials.PaginationData{
			Page:        data.Page,
			FragmentURL: helpers.Route(data.BasePath, route+"/table"),
			RawQuery:    data.RawQuery,
			Target:      "#" + BodyID,
			Include:     "#" + FiltersID + ", #" + StateID,
		},
		Footer: helpers.Render(func(ctx context.Context, w *helpers.Writer) {
			w.Component(ctx, detail(data))
			w.Component(ctx, stateForm(data.Workspace, true))
		}),
	})
}

func rows(data TableData) templ.Component {
	fragment := helpers.Route(data.BasePath, route+"/table")
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		for _, row := range data.Rows {
			class := "align-top"
			if row.Selected {
				class = "align-top bg-slate-50"
			}
			w.Raw(`<tr data-row`)
			w.Attr("class", class)
			w.Attr("data-build-id", row.ID)
			w.AttrIf(row.Selected, "aria-selected", "true")
			w.Raw(`><td class="px-4 py-3 text-sm"><p class="font-medium text-slate-900">`)
			w.Highlight(row.Name, data.Search)
			w.Raw(`</p>`)
			if row.Excerpt != "" {
				w.Raw(`<p class="text-xs text-slate-500">`)
				w.Text(row.Excerpt)
				w.Raw(`</p>`)
			}
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Text(row.Filled)
			if !row.Complete {
				w.Raw(` <span class="text-xs text-amber-600">thiếu</span>`)
			}
			w.Raw(`</td><td class="px-4 py-3 text-sm font-medium">`)
			w.Text(row.Total)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Component(ctx, partials.StatusBadge(row.StatusLabel, row.StatusTone))
			w.Raw(`</td><td class="px-4 py-3 text-sm text-slate-500">`)
			w.Text(row.Updated)
			w.Raw(`</td><td class="px-4 py-3 text-right text-sm"><button type="button" data-select-build`)
			w.Attr("class", helpers.ButtonClass(""))
			w.Attr("hx-get", fragment)
			w.Attr("hx-target", "#"+BodyID)
			w.Attr("hx-swap", "innerHTML")
			w.Attr("hx-include", "#"+FiltersID)
			w.Attr("hx-vals", selectVals(row.ID))
			w.Raw(`>Chi tiết</button></td></tr>`)
		}
	})
}

func selectVals(id string) string {
	raw, err := json.Marshal(map[string]string{"selected": id})
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func detail(data TableData) templ.Component {
	d := data.Detail
	if d == nil {
		return nil
	}
	base := helpers.Route(data.BasePath, route+"/"+url.PathEscape(d.ID))
	include := "#" + FiltersID + ", #" + StateID
	post := func(suffix, label, variant, confirm string) partials.ActionButton {
		return partials.ActionButton{
			Label:   label,
			URL:     base + suffix,
			Target:  "#" + BodyID,
			Include: include,
			Variant: variant,
			Confirm: confirm,
		}
	}
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<section data-build-detail class="border-t border-slate-200 px-4 py-4"`)
		w.Attr("data-build-id", d.ID)
		w.Raw(`><div class="flex flex-wrap items-center justify-between gap-3"><div><h2 class="text-base font-semibold text-slate-900">`)
		w.Text(d.Name)
		w.Raw(`</h2><p class="text-sm text-slate-500">Tổng: <span data-build-total class="font-medium text-slate-900">`)
		w.Text(d.Total)
		w.Raw(`</span></p></div><div class="flex items-center gap-2">`)
		w.Component(ctx, partials.StatusBadge(d.StatusLabel, d.StatusTone))
		if d.CanPublish {
			w.Component(ctx, partials.Button(post("/publish", "Đăng bán", "primary", "")))
		} else if d.Editable {
			b := post("/publish", "Đăng bán", "primary", "")
			b.Disabled = true
			b.Title = "Cấu hình còn thiếu linh kiện bắt buộc"
			w.Component(ctx, partials.Button(b))
		}
		if d.CanUnpublish {
			w.Component(ctx, partials.Button(post("/unpublish", "Ngừng bán", "", "")))
		}
		if d.CanDelete {
			w.Component(ctx, partials.Button(post("/delete", "Xóa", "danger", "Xóa cấu hình "+d.Name+"?")))
		}
		w.Raw(`</div></div>`)
		if d.DescriptionHTML != "" {
			w.Raw(`<div data-build-description class="prose prose-sm mt-3 max-w-none text-slate-700">`)
			w.Raw(d.DescriptionHTML)
			w.Raw(`</div>`)
		}
		if len(d.Missing) > 0 {
			w.Raw(`<p data-missing-slots class="mt-3 text-sm text-amber-700">Còn thiếu: `)
			for i, label := range d.Missing {
				if i > 0 {
					w.Raw(`, `)
				}
				w.Text(label)
			}
			w.Raw(`</p>`)
		}
		w.Raw(`<table class="mt-4 min-w-full divide-y divide-slate-200 text-sm"><thead><tr>`)
		for _, col := range []string{"Vị trí", "Linh kiện", "Đơn giá", "SL", "Thành tiền", ""} {
			w.Raw(`<th class="px-3 py-2 text-left text-xs font-semibold text-slate-500">`)
			w.Text(col)
			w.Raw(`</th>`)
		}
		w.Raw(`</tr></thead><tbody class="divide-y divide-slate-100">`)
		for _, slot := range d.Slots {
			w.Raw(`<tr data-slot`)
			w.Attr("data-slot-key", slot.Slot)
			w.AttrIf(slot.Filled, "data-filled", "true")
			w.Raw(`><td class="px-3 py-2">`)
			w.Text(slot.Label)
			if slot.Required {
				w.Raw(`<span class="text-rose-600" aria-label="bắt buộc">*</span>`)
			}
			w.Raw(`</td>`)
			if !slot.Filled {
				w.Raw(`<td colspan="5" class="px-3 py-2 text-slate-400">Chưa chọn</td></tr>`)
				continue
			}
			w.Raw(`<td class="px-3 py-2">`)
			w.Text(slot.ProductName)
			w.Raw(`</td><td class="px-3 py-2">`)
			w.Text(slot.Price)
			w.Raw(`</td><td class="px-3 py-2">`)
			w.Text(strconv.Itoa(slot.Quantity))
			w.Raw(`</td><td class="px-3 py-2">`)
			w.Text(slot.Subtotal)
			w.Raw(`</td><td class="px-3 py-2 text-right">`)
			if d.Editable {
				w.Component(ctx, partials.Button(post("/components/"+slot.Slot+"/delete", "Gỡ", "danger", "")))
			}
			w.Raw(`</td></tr>`)
		}
		w.Raw(`</tbody></table>`)
		if d.Editable {
			w.Component(ctx, componentForm(data, base+"/components", include))
		}
		w.Raw(`</section>`)
	})
}

func componentForm(data TableData, action, include string) templ.Component {
	slots := make([]partials.Option, 0, len(pcbuilds.Slots))
	for _, s := range pcbuilds.Slots {
		slots = append(slots, partials.Option{Value: string(s), Label: s.Label()})
	}
	quantity := data.Value("quantity")
	if quantity == "" {
		quantity = "1"
	}
	open := data.FormErrors["slot"] != "" || data.FormErrors["productName"] != "" ||
		data.FormErrors["price"] != "" || data.FormErrors["quantity"] != ""
	return partials.Form(partials.InlineForm{
		ID:      "pc-build-component",
		Title:   "Lắp linh kiện",
		URL:     action,
		Target:  "#" + BodyID,
		Include: include,
		CSRF:    data.CSRF,
		Submit:  "Lưu linh kiện",
		Open:    open,
		Fields: []partials.FormField{
			{Name: "slot", Label: "Vị trí", Type: "select", Value: data.Value("slot"), Options: slots, Error: data.FormErrors["slot"]},
			{Name: "productName", Label: "Linh kiện", Value: data.Value("productName"), Required: true, Error: data.FormErrors["productName"]},
			{Name: "price", Label: "Đơn giá (₫)", Type: "number", Value: data.Value("price"), Required: true, Error: data.FormErrors["price"]},
			{Name: "quantity", Label: "Số lượng", Type: "number", Value: quantity, Error: data.FormErrors["quantity"]},
		},
	})
}
