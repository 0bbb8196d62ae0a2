package orderpreparation

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const (
	// ComponentName is the data-component value of the preparation queue.
	ComponentName = "OrderPreparationTable"
	BodyID        = "order-preparation-table"
	FiltersID     = "order-preparation-filters"
	route         = "/order-preparation"
)

var columns = []string{"Mã đơn", "Giao tới", "Hàng cần soạn", "Trạng thái", "Chờ", ""}

// Table renders the preparation queue container.
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
				Placeholder:   "Mã đơn hoặc tên khách…",
				StatusOptions: partials.StatusOptions(orders.PreparationStatuses, orders.Status.Label, nil, ""),
			},
		}))
	})
}

// Fragment renders the queue rows, oldest first.
func Fragment(data TableData) templ.Component {
	return partials.TableFragment(partials.FragmentData{
		Columns:      columns,
		Rows:         rows(data),
		RowCount:     len(data.Rows),
		EmptyMessage: "Không còn đơn nào cần chuẩn bị.",
		Error:        data.Error,
		Notice:       data.Notice,
		Warning:      data.Warning,
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
			w.Attr("data-order-id", row.ID)
			w.Raw(`><td class="px-4 py-3 text-sm font-medium text-slate-900">`)
			w.Highlight(row.Number, data.Search)
			w.Raw(`</td><td class="px-4 py-3 text-sm"><p>`)
			w.Highlight(row.CustomerName, data.Search)
			w.Raw(`</p><p class="text-xs text-slate-500">`)
			w.Text(row.Address)
			w.Raw(`</p></td><td class="px-4 py-3 text-sm"><ul data-pick-list class="space-y-0.5">`)
			for _, line := range row.Lines {
				w.Raw(`<li>`)
				w.Text(line)
				w.Raw(`</li>`)
			}
			w.Raw(`</ul>`)
			if row.Note != "" {
				w.Raw(`<p class="mt-1 text-xs italic text-slate-500">`)
				w.Text(row.Note)
				w.Raw(`</p>`)
			}
			w.Raw(`</td><td class="px-4 py-3 text-sm">`)
			w.Component(ctx, partials.StatusBadge(row.StatusLabel, row.StatusTone))
			w.Raw(`</td><td class="px-4 py-3 text-sm text-slate-500">`)
			w.Text(row.Waiting)
			w.Raw(`</td><td class="px-4 py-3 text-right">`)
			if row.NextLabel != "" {
				w.Component(ctx, partials.Button(partials.ActionButton{
					Label:   row.NextLabel,
					URL:     helpers.Route(data.BasePath, route+"/"+url.PathEscape(row.ID)+"/advance"),
					Target:  "#" + BodyID,
					Include: "#" + FiltersID,
					Variant: "primary",
				}))
			}
			w.Raw(`</td></tr>`)
		}
	})
}
