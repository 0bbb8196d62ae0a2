// Package layouts holds the page shells shared by every admin screen.
package layouts

import (
	"context"
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/navigation"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// AdminData carries the chrome around the page content.
type AdminData struct {
	Title      string
	Menu       navigation.Menu
	Flashes    []session.Flash
	CSRFHeader string
}

// Admin renders the full document: sidebar, header and the main region holding content.
// An error from content aborts the render and is returned as is.
func Admin(data AdminData, content templ.Component) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		body := helpers.Render(func(ctx context.Context, w *helpers.Writer) {
			w.Component(ctx, partials.Sidebar(data.Menu))
			w.Component(ctx, partials.Header())
			w.Raw(`<main data-layout="content" class="min-h-screen pl-64 pt-16"><div class="mx-auto max-w-7xl px-8 py-8">`)
			w.Raw(`<div id="flash-region" data-flash-region aria-live="polite">`)
			w.Component(ctx, partials.Flashes(data.Flashes))
			w.Raw(`</div>`)
			w.Component(ctx, content)
			w.Raw(`</div></main>`)
			w.Raw(`<div id="toast-region" data-toast-region aria-live="polite" class="fixed bottom-4 right-4 z-50 space-y-2"></div>`)
		})
		w.Component(ctx, Document(data.Title, body, bodyHeaders(ctx, data.CSRFHeader)))
	})
}

// Document renders the HTML skeleton shared by the admin shell and the login screen.
func Document(title string, body templ.Component, hxHeaders string) templ.Component {
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<!DOCTYPE html><html lang="vi"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw(`<title>`)
		w.Text(documentTitle(title))
		w.Raw(`</title>`)
		w.Raw(`<link rel="stylesheet" href="/public/static/app.css">`)
		w.Raw(`<script defer`)
		w.Attr("src", htmxScript)
		w.Raw(`></script><script defer src="/public/static/app.js"></script></head>`)
		w.Raw(`<body class="bg-slate-50 text-slate-900"`)
		w.AttrIf(hxHeaders != "", "hx-headers", hxHeaders)
		w.Raw(`>`)
		w.Component(ctx, body)
		w.Raw(`</body></html>`)
	})
}

// PageHeading renders the page title and subtitle. It is the only h1 on a page.
func PageHeading(title, subtitle string) templ.Component {
	return helpers.Render(func(_ context.Context, w *helpers.Writer) {
		w.Raw(`<div data-page-heading class="mb-6">`)
		w.Raw(`<h1 class="text-2xl font-semibold tracking-tight text-slate-900">`)
		w.Text(title)
		w.Raw(`</h1>`)
		if subtitle != "" {
			w.Raw(`<p data-page-subtitle class="mt-1 text-sm text-slate-500">`)
			w.Text(subtitle)
			w.Raw(`</p>`)
		}
		w.Raw(`</div>`)
	})
}

func documentTitle(title string) string {
	if title == "" {
		return "Nexora Admin"
	}
	return title + " | Nexora Admin"
}

// bodyHeaders makes htmx send the CSRF token on every request.
func bodyHeaders(ctx context.Context, header string) string {
	token := middleware.CSRFTokenFromContext(ctx)
	if token == "" {
		return ""
	}
	if header == "" {
		header = "X-CSRF-Token"
	}
	encoded, err := json.Marshal(map[string]string{header: token})
	if err != nil {
		return ""
	}
	return string(encoded)
}
