package partials

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
)

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Count    int
	Selected bool
}

// FilterData configures the search/status toolbar above a table.
type FilterData struct {
	FormID        string
	FragmentURL   string
	Target        string
	Include       string
	Search        string
	Placeholder   string
	StatusLabel   string
	StatusOptions []Option
	Selects       []SelectFilter
	Hidden        map[string]string
}

// SelectFilter is an additional select in the filter toolbar.
type SelectFilter struct {
	Name    string
	Label   string
	Options []Option
}

// ShellData configures the container a table component renders before its rows load.
type ShellData struct {
	Component   string
	BodyID      string
	FragmentURL string
	Include     string
	Columns     []string
	Filters     FilterData
}

// TableShell renders the component container with a toolbar and a body that loads the
// fragment over htmx.
func TableShell(data ShellData) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<section class="rounded-lg border border-slate-200 bg-white shadow-sm"`)
		w.Attr("data-component", data.Component)
		w.Raw(`>`)
		w.Component(ctx, FilterBar(data.Filters))
		w.Raw(`<div data-table-body`)
		w.Attr("id", data.BodyID)
		w.Attr("hx-get", data.FragmentURL)
		w.Attr("hx-trigger", "load")
		w.Attr("hx-swap", "innerHTML")
		w.AttrIf(data.Include != "", "hx-include", data.Include)
		w.Raw(`>`)
		w.Raw(`<table class="min-w-full divide-y divide-slate-200">`)
		writeHead(w, data.Columns)
		w.Raw(`<tbody>`)
		w.Component(ctx, TableMessage(len(data.Columns), "Đang tải dữ liệu…", "loading"))
		w.Raw(`</tbody></table></div></section>`)
	})
}

// FilterBar renders the search box and status select. Changes re-fetch the fragment.
func FilterBar(data FilterData) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		w.Raw(`<form data-table-filters class="flex flex-wrap items-end gap-3 border-b border-slate-200 px-4 py-3"`)
		w.Attr("id", data.FormID)
		w.Attr("hx-get", data.FragmentURL)
		w.Attr("hx-target", data.Target)
		w.Attr("hx-swap", "innerHTML")
		w.Attr("hx-trigger", "input changed delay:300ms, change, submit")
		w.AttrIf(data.Include != "", "hx-include", data.Include)
		w.Raw(`>`)
		w.Raw(`<label class="min-w-60 flex-1 text-xs font-medium text-slate-500">Tìm kiếm<input type="search" name="q"`)
		w.Attr("class", helpers.InputClass)
		w.Attr("value", data.Search)
		w.Attr("placeholder", data.Placeholder)
		w.Raw(`></label>`)
		if len(data.StatusOptions) > 0 {
			label := data.StatusLabel
			if label == "" {
				label = "Trạng thái"
			}
			w.Raw(`<label class="w-48 text-xs font-medium text-slate-500">`)
			w.Text(label)
			w.Raw(`<select name="status"`)
			w.Attr("class", helpers.InputClass)
			w.Raw(`><option value="">Tất cả</option>`)
			for _, opt := range data.StatusOptions {
				w.Raw(`<option`)
				w.Attr("value", opt.Value)
				w.AttrIf(opt.Selected, "selected", "")
				w.Raw(`>`)
				w.Text(opt.Label)
				w.Raw(`</option>`)
			}
			w.Raw(`</select></label>`)
		}
		for _, sel := range data.Selects {
			w.Raw(`<label class="w-48 text-xs font-medium text-slate-500">`)
			w.Text(sel.Label)
			w.Raw(`<select`)
			w.Attr("name", sel.Name)
			w.Attr("class", helpers.InputClass)
			w.Raw(`><option value="">Tất cả</option>`)
			for _, opt := range sel.Options {
				w.Raw(`<option`)
				w.Attr("value", opt.Value)
				w.AttrIf(opt.Selected, "selected", "")
				w.Raw(`>`)
				w.Text(opt.Label)
				w.Raw(`</option>`)
			}
			w.Raw(`</select></label>`)
		}
		names := make([]string, 0, len(data.Hidden))
		for name := range data.Hidden {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			w.Raw(`<input type="hidden"`)
			w.Attr("name", name)
			w.Attr("value", data.Hidden[name])
			w.Raw(`>`)
		}
		w.Raw(`</form>`)
	})
}

// FragmentData is the body of a table fragment response.
type FragmentData struct {
	Columns      []string
	Rows         templ.Component
	RowCount     int
	EmptyMessage string
	Error        string
	Notice       string
	Warning      string
	FormErrors   map[string]string
	FieldLabels  map[string]string
	Form         templ.Component
	Pagination   *PaginationData
	Footer       templ.Component
}

// TableFragment renders notices, the optional form, the rows and the pager.
func TableFragment(data FragmentData) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Component(ctx, Alert("success", data.Notice))
		w.Component(ctx, Alert("danger", data.Warning))
		w.Component(ctx, FormErrors(data.FormErrors, data.FieldLabels))
		w.Component(ctx, data.Form)
		w.Raw(`<div class="overflow-x-auto"><table class="min-w-full divide-y divide-slate-200">`)
		writeHead(w, data.Columns)
		w.Raw(`<tbody class="divide-y divide-slate-100" data-row-count="`)
		w.Raw(strconv.Itoa(data.RowCount))
		w.Raw(`">`)
		switch {
		case data.Error != "":
			w.Component(ctx, TableMessage(len(data.Columns), data.Error, "danger"))
		case data.RowCount == 0:
			msg := data.EmptyMessage
			if msg == "" {
				msg = "Không có dữ liệu phù hợp."
			}
			w.Component(ctx, TableMessage(len(data.Columns), msg, ""))
		default:
			w.Component(ctx, data.Rows)
		}
		w.Raw(`</tbody></table></div>`)
		if data.Pagination != nil && data.Error == "" {
			w.Component(ctx, Pagination(*data.Pagination))
		}
		w.Component(ctx, data.Footer)
	})
}

func writeHead(w *helpers.Writer, columns []string) {
	w.Raw(`<thead class="bg-slate-50"><tr>`)
	for _, col := range columns {
		w.Raw(`<th scope="col" class="px-4 py-2 text-left text-xs font-semibold uppercase tracking-wide text-slate-500">`)
		w.Text(col)
		w.Raw(`</th>`)
	}
	w.Raw(`</tr></thead>`)
}

// ActionButton renders a one-click htmx POST control refreshing the table body.
type ActionButton struct {
	Label    string
	URL      string
	Target   string
	Include  string
	Variant  string
	Confirm  string
	Disabled bool
	Title    string
}

// Button renders the action.
func Button(a ActionButton) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		w.Raw(`<button type="button"`)
		w.Attr("class", helpers.ButtonClass(a.Variant))
		w.Attr("hx-post", a.URL)
		w.Attr("hx-target", a.Target)
		w.Attr("hx-swap", "innerHTML")
		w.AttrIf(a.Include != "", "hx-include", a.Include)
		w.AttrIf(a.Confirm != "", "hx-confirm", a.Confirm)
		w.AttrIf(a.Title != "", "title", a.Title)
		w.AttrIf(a.Disabled, "disabled", "")
		w.Raw(`>`)
		w.Text(a.Label)
		w.Raw(`</button>`)
	})
}

// FormField describes one input of an inline create form.
type FormField struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Options     []Option
	Error       string
	Wide        bool
}

// InlineForm describes a create form rendered at the top of a fragment.
type InlineForm struct {
	ID      string
	Title   string
	URL     string
	Target  string
	Include string
	CSRF    string
	Submit  string
	Fields  []FormField
	Open    bool
}

// Form renders an htmx form posting to URL and swapping the table body.
func Form(f InlineForm) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<details class="border-b border-slate-200 px-4 py-3"`)
		w.AttrIf(f.Open, "open", "")
		w.Raw(`><summary class="cursor-pointer text-sm font-medium text-slate-700">`)
		w.Text(f.Title)
		w.Raw(`</summary><form class="mt-3 grid grid-cols-1 gap-3 md:grid-cols-3" method="post"`)
		w.Attr("id", f.ID)
		w.Attr("action", f.URL)
		w.Attr("hx-post", f.URL)
		w.Attr("hx-target", f.Target)
		w.Attr("hx-swap", "innerHTML")
		w.AttrIf(f.Include != "", "hx-include", f.Include)
		w.Raw(`>`)
		w.Component(ctx, CSRFInput(f.CSRF))
		for _, field := range f.Fields {
			writeField(w, field)
		}
		w.Raw(`<div class="md:col-span-3"><button type="submit"`)
		w.Attr("class", helpers.ButtonClass("primary"))
		w.Raw(`>`)
		w.Text(f.Submit)
		w.Raw(`</button></div></form></details>`)
	})
}

func writeField(w *helpers.Writer, f FormField) {
	class := "block text-xs font-medium text-slate-600"
	if f.Wide {
		class += " md:col-span-3"
	}
	w.Raw(`<label`)
	w.Attr("class", class)
	w.Raw(`>`)
	w.Text(f.Label)
	switch f.Type {
	case "select":
		w.Raw(`<select`)
		w.Attr("name", f.Name)
		w.Attr("class", helpers.InputClass)
		w.AttrIf(f.Required, "required", "")
		w.Raw(`>`)
		for _, opt := range f.Options {
			w.Raw(`<option`)
			w.Attr("value", opt.Value)
			w.AttrIf(opt.Selected || (opt.Value == f.Value && f.Value != ""), "selected", "")
			w.Raw(`>`)
			w.Text(opt.Label)
			w.Raw(`</option>`)
		}
		w.Raw(`</select>`)
	case "textarea":
		w.Raw(`<textarea rows="3"`)
		w.Attr("name", f.Name)
		w.Attr("class", helpers.InputClass)
		w.AttrIf(f.Placeholder != "", "placeholder", f.Placeholder)
		w.Raw(`>`)
		w.Text(f.Value)
		w.Raw(`</textarea>`)
	default:
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		w.Raw(`<input`)
		w.Attr("type", typ)
		w.Attr("name", f.Name)
		w.Attr("value", f.Value)
		w.Attr("class", helpers.InputClass)
		w.AttrIf(f.Placeholder != "", "placeholder", f.Placeholder)
		w.AttrIf(f.Required, "required", "")
		w.AttrIf(f.Error != "", "aria-invalid", "true")
		w.Raw(`>`)
	}
	if f.Error != "" {
		w.Raw(`<span data-field-error class="mt-1 block text-xs text-rose-600">`)
		w.Text(f.Error)
		w.Raw(`</span>`)
	}
	w.Raw(`</label>`)
}

// FragmentState carries the request-scoped values every table fragment renders with.
type FragmentState struct {
	BasePath   string
	CSRF       string
	RawQuery   string
	Search     string
	Status     string
	Now        time.Time
	Notice     string
	Warning    string
	Error      string
	FormErrors map[string]string
	Form       url.Values
}

// Value returns the submitted form value for field when the last submission failed.
func (s FragmentState) Value(field string) string {
	if len(s.FormErrors) == 0 || s.Form == nil {
		return ""
	}
	return s.Form.Get(field)
}

// FormOpen reports whether the create form should render expanded.
func (s FragmentState) FormOpen() bool {
	return len(s.FormErrors) > 0
}

// InlineAction is a single-input form posted from a table row.
type InlineAction struct {
	URL         string
	Target      string
	Include     string
	CSRF        string
	InputName   string
	Placeholder string
	Label       string
	Variant     string
	Confirm     string
	Optional    bool
}

// ActionForm renders the row-level form.
func ActionForm(a InlineAction) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<form class="flex items-center gap-2" method="post"`)
		w.Attr("action", a.URL)
		w.Attr("hx-post", a.URL)
		w.Attr("hx-target", a.Target)
		w.Attr("hx-swap", "innerHTML")
		w.AttrIf(a.Include != "", "hx-include", a.Include)
		w.AttrIf(a.Confirm != "", "hx-confirm", a.Confirm)
		w.Raw(`>`)
		w.Component(ctx, CSRFInput(a.CSRF))
		if a.InputName != "" {
			w.Raw(`<input type="text"`)
			w.AttrIf(!a.Optional, "required", "")
			w.Attr("name", a.InputName)
			w.Attr("placeholder", a.Placeholder)
			w.Attr("class", helpers.InputClass)
			w.Raw(`>`)
		}
		w.Raw(`<button type="submit"`)
		w.Attr("class", helpers.ButtonClass(a.Variant))
		w.Raw(`>`)
		w.Text(a.Label)
		w.Raw(`</button></form>`)
	})
}

// StatusOptions converts label/count pairs into filter options, marking current as selected.
func StatusOptions[S ~string](statuses []S, label func(S) string, counts map[S]int, current string) []Option {
	out := make([]Option, 0, len(statuses))
	for _, s := range statuses {
		text := label(s)
		if counts != nil {
			text += " (" + strconv.Itoa(counts[s]) + ")"
		}
		out = append(out, Option{Value: string(s), Label: text, Count: counts[s], Selected: string(s) == current})
	}
	return out
}
