package httpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	custommw "github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
)

func TestSafeNext(t *testing.T) {
	t.Parallel()

	h := newLoginHandlers(custommw.DefaultAuthenticator(), "/admin/", "")
	require.Equal(t, "/admin/login", h.loginPath)

	cases := map[string]string{
		"":                           "",
		"/admin/warranty":            "/admin/warranty",
		"/admin/orders/create?q=DH1": "/admin/orders/create?q=DH1",
		"/admin/../admin/pc-builds/": "/admin/pc-builds",
		"/admin":                     "/admin",
		"/administrator":             "",
		"/warranty":                  "",
		"https://evil.example/admin": "",
		"//evil.example/admin":       "",
		`/admin/\evil`:               "",
		"javascript:alert(1)":        "",
		"/admin/login":               "",
		"/admin/login/":              "",
	}
	for raw, want := range cases {
		require.Equal(t, want, h.safeNext(raw), raw)
	}
	require.Equal(t, "/admin", h.landing("https://evil.example"))
}

func TestAuthFailureMessages(t *testing.T) {
	t.Parallel()

	require.Equal(t, msgSessionExpiry, authFailure(custommw.NewAuthError(custommw.ReasonTokenExpired, nil)))
	require.Equal(t, msgAuthFailed, authFailure(custommw.NewAuthError(custommw.ReasonTokenInvalid, nil)))
	require.Equal(t, msgAuthFailed, authFailure(custommw.ErrUnauthorized))
	require.Contains(t, authFailure(errors.New("firebase unavailable")), "Vui lòng thử lại sau")
}
