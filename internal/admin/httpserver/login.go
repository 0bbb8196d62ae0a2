package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	appsession "github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/auth"
)

// tokenCookie carries the ID token between requests; custommw.Auth reads it back.
const tokenCookie = "Authorization"

const (
	msgLoggedOut     = "Bạn đã đăng xuất."
	msgSessionExpiry = "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại."
	msgAuthFailed    = "Xác thực thất bại. Vui lòng kiểm tra thông tin đã nhập."
)

// loginNotices maps the reason query parameter set by custommw.Auth to the
// message shown above the form.
var loginNotices = map[string]string{
	custommw.ReasonTokenExpired: msgSessionExpiry,
	"expired":                   msgSessionExpiry,
	custommw.ReasonMissingToken: "Vui lòng đăng nhập để tiếp tục.",
	custommw.ReasonTokenInvalid: "Thông tin đăng nhập không hợp lệ. Vui lòng thử lại.",
}

// loginHandlers serves sign-in and sign-out for staff. A successful sign-in
// stores the staff profile in the session and the token in tokenCookie.
type loginHandlers struct {
	authenticator custommw.Authenticator
	base          string
	loginPath     string
}

func newLoginHandlers(authenticator custommw.Authenticator, base, loginPath string) *loginHandlers {
	if authenticator == nil {
		panic("httpserver: login requires an authenticator")
	}
	base = normalizeBasePath(base)
	if strings.TrimSpace(loginPath) == "" {
		loginPath = resolveLoginPath(base, "")
	}
	return &loginHandlers{authenticator: authenticator, base: base, loginPath: loginPath}
}

// Form renders the sign-in page. Staff who are already signed in go straight
// to their destination unless ?force=1 asks for the form anyway.
func (h *loginHandlers) Form(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if signedIn(r) && !truthy(q.Get("force")) {
		http.Redirect(w, r, h.landing(q.Get("next")), http.StatusFound)
		return
	}

	form := h.newForm(r)
	form.Email = strings.TrimSpace(q.Get("email"))
	form.Next = h.safeNext(q.Get("next"))
	if sess, ok := custommw.SessionFromContext(r.Context()); ok && sess != nil {
		form.Remember = sess.RememberMe()
	}
	if q.Get("status") == "logged_out" {
		form.Notice = msgLoggedOut
	} else {
		form.Notice = loginNotices[q.Get("reason")]
	}
	h.render(w, r, form, http.StatusOK)
}

// Submit verifies the posted ID token.
func (h *loginHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	form := h.newForm(r)
	if err := r.ParseForm(); err != nil {
		form.Error = "Không gửi được biểu mẫu. Vui lòng thử lại."
		h.render(w, r, form, http.StatusBadRequest)
		return
	}
	form.Email = strings.TrimSpace(r.PostFormValue("email"))
	form.Remember = truthy(r.PostFormValue("remember"))
	form.Next = h.safeNext(r.PostFormValue("next"))

	token := strings.TrimSpace(r.PostFormValue("id_token"))
	if token == "" {
		form.Error = "Vui lòng nhập mã xác thực."
		h.render(w, r, form, http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(r.Context())
	user, err := h.authenticator.Authenticate(r, token)
	if err == nil && user == nil {
		err = custommw.ErrUnauthorized
	}
	if err != nil {
		logger.Warn("staff login rejected", zap.String("email", form.Email), zap.Error(err))
		form.Error = authFailure(err)
		h.render(w, r, form, http.StatusUnauthorized)
		return
	}

	if user.Email == "" {
		user.Email = form.Email
	}
	if sess, ok := custommw.SessionFromContext(r.Context()); ok && sess != nil {
		sess.SetUser(&appsession.User{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Roles:       append([]string(nil), user.Roles...),
		})
		sess.SetRememberMe(form.Remember)
		sess.AddFlash(appsession.FlashSuccess, "Xin chào "+user.Name()+".")
	}
	if user.Token != "" {
		token = user.Token
	}
	http.SetCookie(w, h.tokenCookie(r, token, form.Remember))
	logger.Info("staff signed in", zap.String("uid", user.UID), zap.Strings("roles", user.Roles))

	h.redirect(w, r, h.landing(form.Next))
}

// Logout drops the session and the token cookie.
func (h *loginHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok && sess != nil {
		sess.Destroy()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Path:     h.base,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.redirect(w, r, h.loginPath+"?status=logged_out")
}

func (h *loginHandlers) newForm(r *http.Request) auth.LoginForm {
	return auth.LoginForm{
		Action:    h.loginPath,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
	}
}

func (h *loginHandlers) render(w http.ResponseWriter, r *http.Request, form auth.LoginForm, status int) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templ.Handler(auth.LoginPage(form)).ServeHTTP(w, r)
}

// redirect answers htmx posts with HX-Redirect so the whole page navigates.
func (h *loginHandlers) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// landing is where a signed-in user goes next. The dashboard home sends each
// role on to its first permitted page.
func (h *loginHandlers) landing(next string) string {
	if target := h.safeNext(next); target != "" {
		return target
	}
	return h.base
}

// tokenCookie stores token as a bearer value. Remembered sign-ins outlive the
// browser session and expire with the session cookie.
func (h *loginHandlers) tokenCookie(r *http.Request, token string, remember bool) *http.Cookie {
	if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = "Bearer " + token
	}
	cookie := &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     h.base,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if !remember {
		return cookie
	}
	if sess, ok := custommw.SessionFromContext(r.Context()); ok && sess != nil && !sess.ExpiresAt().IsZero() {
		cookie.Expires = sess.ExpiresAt().UTC()
		if remaining := time.Until(cookie.Expires); remaining > 0 {
			cookie.MaxAge = int(remaining.Round(time.Second).Seconds())
		}
	}
	return cookie
}

// safeNext keeps only same-origin paths inside the dashboard. The login page
// itself is refused so a sign-in never loops back to the form.
func (h *loginHandlers) safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return ""
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil || strings.Contains(p, `\`) {
		return ""
	}
	p = path.Clean("/" + p)
	if !withinBase(p, h.base) || p == path.Clean(h.loginPath) {
		return ""
	}
	u.Path, u.RawPath = p, ""
	return u.String()
}

func withinBase(p, base string) bool {
	return base == "/" || p == base || strings.HasPrefix(p, base+"/")
}

func signedIn(r *http.Request) bool {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok || sess == nil {
		return false
	}
	user := sess.User()
	return user != nil && strings.TrimSpace(user.UID) != ""
}

func authFailure(err error) string {
	var authErr *custommw.AuthError
	if errors.As(err, &authErr) {
		switch authErr.Reason {
		case custommw.ReasonTokenExpired:
			return msgSessionExpiry
		case custommw.ReasonMissingToken:
			return "Thiếu thông tin xác thực. Vui lòng kiểm tra lại."
		}
		return msgAuthFailed
	}
	if errors.Is(err, custommw.ErrUnauthorized) {
		return msgAuthFailed
	}
	return "Đăng nhập không thành công. Vui lòng thử lại sau."
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
