package partials

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/rbac"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
)

// Header renders the fixed top bar. It never contains a page heading.
func Header() templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<header data-layout="header" class="fixed left-64 right-0 top-0 z-20 flex h-16 items-center justify-between border-b border-slate-200 bg-white px-6">`)
		w.Raw(`<p class="text-sm text-slate-500">Hệ thống quản trị cửa hàng</p>`)
		w.Component(ctx, TopbarActions())
		w.Raw(`</header>`)
	})
}

// TopbarActions renders the environment badge and the signed-in user menu.
func TopbarActions() templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		env := middleware.MetaFromContext(ctx).Environment
		w.Raw(`<div class="flex items-center gap-4">`)

		w.Raw(`<span data-environment-badge`)
		w.Attr("title", env)
		w.Attr("class", helpers.BadgeClass(environmentTone(env)))
		w.Raw(`><span aria-hidden="true">`)
		w.Text(environmentAbbrev(env))
		w.Raw(`</span><span class="sr-only">Môi trường `)
		w.Text(env)
		w.Raw(`</span></span>`)

		user, ok := middleware.UserFromContext(ctx)
		if ok && user != nil {
			w.Raw(`<div data-user-menu class="flex items-center gap-3">`)
			w.Raw(`<div class="min-w-0 text-right"><p class="truncate text-sm font-medium text-slate-900">`)
			w.Text(user.Name())
			w.Raw(`</p><p class="truncate text-xs text-slate-500">`)
			w.Text(roleSummary(user.Roles))
			w.Raw(`</p></div>`)
			w.Raw(`<form data-user-menu-logout method="post"`)
			w.Attr("action", helpers.Route(helpers.BasePath(ctx), "/logout"))
			w.Raw(`>`)
			w.Raw(`<input type="hidden" name="_csrf"`)
			w.Attr("value", middleware.CSRFTokenFromContext(ctx))
			w.Raw(`>`)
			w.Raw(`<button type="submit"`)
			w.Attr("class", helpers.ButtonClass(""))
			w.Raw(`>Đăng xuất</button></form></div>`)
		}
		w.Raw(`</div>`)
	})
}

func roleSummary(roles []string) string {
	labels := make([]string, 0, len(roles))
	for _, role := range rbac.NormaliseRoles(roles) {
		labels = append(labels, rbac.RoleLabel(role))
	}
	return strings.Join(labels, ", ")
}

func environmentAbbrev(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return "PRD"
	case "staging", "stg":
		return "STG"
	case "development", "dev", "":
		return "DEV"
	default:
		upper := strings.ToUpper(strings.TrimSpace(env))
		if len(upper) > 3 {
			upper = upper[:3]
		}
		return upper
	}
}

func environmentTone(env string) string {
	switch environmentAbbrev(env) {
	case "PRD":
		return "danger"
	case "STG":
		return "warning"
	default:
		return "info"
	}
}
