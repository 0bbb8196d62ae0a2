package partials

import (
	"context"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/navigation"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
)

// Sidebar renders the fixed navigation column. Items the user lacks the capability for are omitted.
func Sidebar(menu navigation.Menu) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		home := helpers.Route(helpers.BasePath(ctx), "/")
		w.Raw(`<aside data-layout="sidebar" class="fixed inset-y-0 left-0 z-30 flex w-64 flex-col border-r border-slate-200 bg-white">`)
		w.Raw(`<div class="flex items-center gap-2 border-b border-slate-200 px-6 py-5">`)
		w.Raw(`<a class="text-lg font-semibold tracking-tight text-slate-900"`)
		w.Attr("href", home)
		w.Raw(`>Nexora Admin</a></div>`)
		w.Raw(`<nav aria-label="Điều hướng chính" class="flex-1 overflow-y-auto px-3 py-4">`)
		for _, group := range menu {
			items := visibleItems(group, ctx)
			if len(items) == 0 {
				continue
			}
			w.Raw(`<div class="mb-6"`)
			w.Attr("data-nav-group", group.Key)
			w.Raw(`><p class="px-3 text-xs font-semibold uppercase tracking-wide text-slate-400">`)
			w.Text(group.Label)
			w.Raw(`</p><ul class="mt-2 space-y-1">`)
			for _, item := range items {
				active := helpers.NavActive(ctx, item.Pattern, item.MatchPrefix)
				w.Raw(`<li><a`)
				w.Attr("href", item.Href)
				w.Attr("class", helpers.NavClass(active))
				w.Attr("data-nav-item", item.Key)
				w.AttrIf(active, "aria-current", "page")
				w.Raw(`><span aria-hidden="true"`)
				w.Attr("data-icon", item.Icon)
				w.Raw(` class="h-4 w-4"></span>`)
				w.Text(item.Label)
				w.Raw(`</a></li>`)
			}
			w.Raw(`</ul></div>`)
		}
		w.Raw(`</nav></aside>`)
	})
}

func hasVisibleItems(group navigation.MenuGroup, ctx context.Context) bool {
	return len(visibleItems(group, ctx)) > 0
}

func visibleItems(group navigation.MenuGroup, ctx context.Context) []navigation.MenuItem {
	if !helpers.HasCapability(ctx, string(group.Capability)) {
		return nil
	}
	items := make([]navigation.MenuItem, 0, len(group.Items))
	for _, item := range group.Items {
		if helpers.HasCapability(ctx, string(item.Capability)) {
			items = append(items, item)
		}
	}
	return items
}
