package auth

import (
	"context"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/layouts"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

// LoginForm is the state of the sign-in form between submissions.
type LoginForm struct {
	// Action is the URL the form posts to.
	Action    string
	CSRFToken string
	Next      string
	Email     string
	Remember  bool
	// Notice is informational, Error reports a rejected submission.
	Notice string
	Error  string
}

// LoginPage renders the sign-in screen. The ID token is usually filled in by the Firebase
// client script; during local development any "role:name" token is accepted.
func LoginPage(data LoginForm) templ.Component {
	body := helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Raw(`<main class="flex min-h-screen items-center justify-center px-4"><div class="w-full max-w-md rounded-lg border border-slate-200 bg-white p-8 shadow-sm">`)
		w.Raw(`<h1 class="text-xl font-semibold text-slate-900">Đăng nhập quản trị</h1>`)
		w.Raw(`<p class="mt-1 text-sm text-slate-500">Dành cho nhân viên Nexora.</p>`)
		w.Component(ctx, partials.Alert("info", data.Notice))
		w.Component(ctx, partials.Alert("error", data.Error))
		w.Raw(`<form data-login-form method="post" class="mt-6 space-y-4"`)
		w.Attr("action", data.Action)
		w.Raw(`>`)
		w.Component(ctx, partials.CSRFInput(data.CSRFToken))
		w.Raw(`<input type="hidden" name="next"`)
		w.Attr("value", data.Next)
		w.Raw(`>`)

		w.Raw(`<label class="block text-sm font-medium text-slate-700">Email<input type="email" name="email" autocomplete="username"`)
		w.Attr("class", helpers.InputClass)
		w.Attr("value", data.Email)
		w.Raw(`></label>`)

		w.Raw(`<label class="block text-sm font-medium text-slate-700">Mã xác thực (ID token)<input type="password" name="id_token" required autocomplete="current-password"`)
		w.Attr("class", helpers.InputClass)
		w.Raw(`></label>`)

		w.Raw(`<label class="flex items-center gap-2 text-sm text-slate-600"><input type="checkbox" name="remember" value="true"`)
		w.AttrIf(data.Remember, "checked", "")
		w.Raw(`>Ghi nhớ đăng nhập</label>`)

		w.Raw(`<button type="submit" class="w-full rounded-md bg-slate-900 px-3 py-2 text-sm font-medium text-white hover:bg-slate-700">Đăng nhập</button>`)
		w.Raw(`</form></div></main>`)
	})
	return layouts.Document("Đăng nhập", body, "")
}
