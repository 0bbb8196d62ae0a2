package partials

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
)

// PaginationData drives the pager below a table fragment.
type PaginationData struct {
	Page        pagination.Page
	FragmentURL string
	RawQuery    string
	Target      string
	Include     string
}

// Pagination renders the result summary and previous/next controls.
func Pagination(data PaginationData) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		p := data.Page
		w.Raw(`<nav data-pagination aria-label="Phân trang" class="flex items-center justify-between border-t border-slate-200 px-4 py-3 text-sm text-slate-600">`)
		w.Raw(`<p data-pagination-summary>`)
		if p.TotalItems == 0 {
			w.Raw(`Không có kết quả`)
		} else {
			w.Text(fmt.Sprintf("Hiển thị %d–%d trên %s", p.From(), p.To(), helpers.Number(p.TotalItems)))
		}
		w.Raw(`</p><div class="flex gap-2">`)
		pageButton(w, data, p.PrevPage, "prev", "Trước")
		pageButton(w, data, p.NextPage, "next", "Sau")
		w.Raw(`</div></nav>`)
	})
}

func pageButton(w *helpers.Writer, data PaginationData, target *int, rel, label string) {
	w.Raw(`<button type="button"`)
	w.Attr("class", helpers.ButtonClass(""))
	w.Attr("data-page", rel)
	if target == nil {
		w.Raw(` disabled>`)
		w.Text(label)
		w.Raw(`</button>`)
		return
	}
	query := helpers.SetRawQuery(data.RawQuery, "page", strconv.Itoa(*target))
	w.Attr("hx-get", helpers.BuildURL(data.FragmentURL, query))
	w.Attr("hx-target", data.Target)
	w.Attr("hx-swap", "innerHTML")
	w.AttrIf(data.Include != "", "hx-include", data.Include)
	w.Raw(`>`)
	w.Text(label)
	w.Raw(`</button>`)
}

// TableMessage renders a full-width row for loading, empty and error states.
func TableMessage(colspan int, message, tone string) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		class := "px-4 py-8 text-center text-sm text-slate-500"
		if tone == "danger" {
			class = "px-4 py-8 text-center text-sm text-rose-700"
		}
		w.Raw(`<tr data-table-message`)
		w.AttrIf(tone != "", "data-tone", tone)
		w.Raw(`><td`)
		w.Attr("colspan", strconv.Itoa(colspan))
		w.Attr("class", class)
		w.Raw(`>`)
		w.Text(message)
		w.Raw(`</td></tr>`)
	})
}

// FormErrors renders the field messages of a rejected submission. Labels prefix each message
// when present; fields are listed in a stable order.
func FormErrors(fields map[string]string, labels map[string]string) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		if len(fields) == 0 {
			return
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		w.Raw(`<div data-form-errors role="alert" class="m-4 rounded-md border border-rose-200 bg-rose-50 px-4 py-3 text-sm text-rose-700"><ul class="list-disc space-y-1 pl-5">`)
		for _, k := range keys {
			w.Raw(`<li`)
			w.Attr("data-field", k)
			w.Raw(`>`)
			if label := labels[k]; label != "" {
				w.Raw(`<span class="font-medium">`)
				w.Text(label)
				w.Raw(`:</span> `)
			}
			w.Text(fields[k])
			w.Raw(`</li>`)
		}
		w.Raw(`</ul></div>`)
	})
}

// Alert renders a single inline message inside a fragment.
func Alert(tone, message string) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		if message == "" {
			return
		}
		w.Raw(`<div role="alert" data-alert`)
		w.Attr("data-tone", tone)
		w.Attr("class", alertClass(tone))
		w.Raw(`>`)
		w.Text(message)
		w.Raw(`</div>`)
	})
}

// Flashes renders one-shot session messages.
func Flashes(flashes []session.Flash) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		for _, f := range flashes {
			w.Component(ctx, Alert(string(f.Tone), f.Message))
		}
	})
}

// StatusBadge renders a pill with the given tone.
func StatusBadge(label, tone string) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		w.Raw(`<span data-status`)
		w.Attr("class", helpers.BadgeClass(tone))
		w.Raw(`>`)
		w.Text(label)
		w.Raw(`</span>`)
	})
}

// CSRFInput renders the hidden form field checked by the CSRF middleware.
func CSRFInput(token string) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		w.Raw(`<input type="hidden" name="_csrf"`)
		w.Attr("value", token)
		w.Raw(`>`)
	})
}

func alertClass(tone string) string {
	switch tone {
	case "success":
		return "mx-4 my-3 rounded-md border border-emerald-200 bg-emerald-50 px-4 py-3 text-sm text-emerald-800"
	case "error", "danger":
		return "mx-4 my-3 rounded-md border border-rose-200 bg-rose-50 px-4 py-3 text-sm text-rose-700"
	default:
		return "mx-4 my-3 rounded-md border border-sky-200 bg-sky-50 px-4 py-3 text-sm text-sky-800"
	}
}
