package subcategory

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const (
	// ComponentName is the data-component value of the subcategories table.
	ComponentName = "SubCategoryTable"
	BodyID        = "subcategories-table"
	FiltersID     = "subcategories-filters"
	route         = "/subcategories"
)

var columns = []string{"Tên", "Đường dẫn", "Danh mục cha", "Sản phẩm", "Trạng thái", "Ngày tạo", ""}

// Table renders the subcategories container.
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
				Placeholder:   "Tên hoặc đường dẫn…",
				StatusOptions: partials.StatusOptions(statuses, subcategories.Status.Label, nil, ""),
				Selects: []partials.SelectFilter{
					{Name: "category", Label: "Danh mục cha", Options: parentOptions("", "")},
				},
			},
		}))
	})
}

// Fragment renders the create form, rows and pager.
func Fragment(data TableData) templ.Component {
	return partials.TableFragment(partials.FragmentData{
		Columns:      columns,
		Rows:         rows(data),
		RowCount:     len(data.Rows),
		EmptyMessage: "Chưa có danh mục con phù hợp.",
		Error:        data.Error,
		Notice:       data.Notice,
		Warning:      data.Warning,
		FormErrors:   data.FormErrors,
		FieldLabels:  FieldLabels,
		Form: partials.Form(partials.InlineForm{
			ID:      "subcategory-create",
			Title:   "Thêm danh mục con",
			URL:     helpers.Route(data.BasePath, route),
			Target:  "#" + BodyID,
			Include: "#" + FiltersID,
			CSRF:    data.CSRF,
			Submit:  "Thêm",
			Open:    data.FormOpen(),
			Fields: []partials.FormField{
				{Name: "parent", Label: "Danh mục cha", Type: "select", Value: data.Value("parent"), Options: parentOptions(data.Value("parent"), "Chọn danh mục cha"), Error: data.FormErrors["parent"]},
				{Name: "name", Label: "Tên danh mục con", Value: data.Value("name"), Required: true, Error: data.FormErrors["name"]},
				{Name: "description", Label: "Mô tả", Value: data.Value("description"), Error: data.FormErrors["description"]},
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
			base := helpers.Route(data.BasePath, route+"/"+url.PathEscape(row.ID))
			w.Raw(`<tr data-row`)
			w.Attr("data-subcategory-id", row.ID)
			w.Raw(`><td class="px-4 py-3 text-sm"><p class="font-medium text-slate-900">`)
			w.Highlight(row.Name, data.Search)
			w.Raw(`</p>`)
			if row.Description != "" {
				w.Raw(`<p class="text-xs text-slate-500">`)
				w.Text(row.Description)
				w.Raw(`</p>`)
			}
			w.Raw(`</td><td class="px-4 py-3 font-mono text-xs text-slate-600">`)
			w.Text(row.Slug)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Text(row.Parent)
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Text(strconv.Itoa(row.ProductCount))
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Component(ctx, partials.StatusBadge(row.StatusLabel, row.StatusTone))
			w.Raw(`</td><td class="px-4 py-3 text-sm text-slate-500">`)
			w.Text(row.Created)
			w.Raw(`</td><td class="flex justify-end gap-2 px-4 py-3">`)
			toggle := "Ẩn"
			if !row.Active {
				toggle = "Hiển thị"
			}
			w.Component(ctx, partials.Button(partials.ActionButton{
				Label:   toggle,
				URL:     base + "/toggle",
				Target:  "#" + BodyID,
				Include: "#" + FiltersID,
			}))
			del := partials.ActionButton{
				Label:   "Xóa",
				URL:     base + "/delete",
				Target:  "#" + BodyID,
				Include: "#" + FiltersID,
				Variant: "danger",
				Confirm: "Xóa danh mục con " + row.Name + "?",
			}
			if row.ProductCount > 0 {
				del.Disabled = true
				del.Title = "Danh mục con còn sản phẩm"
			}
			w.Component(ctx, partials.Button(del))
			w.Raw(`</td></tr>`)
		}
	})
}
