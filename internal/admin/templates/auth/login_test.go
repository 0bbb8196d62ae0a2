package auth

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestLoginPageRendersForm(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := LoginPage(LoginForm{
		Action:    "/admin/login",
		CSRFToken: "csrf-123",
		Next:      "/admin/warranty",
		Email:     "kho@nexora.vn",
		Remember:  true,
		Error:     "Xác thực thất bại.",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	form := doc.Find("form[data-login-form]")
	require.Equal(t, "/admin/login", form.AttrOr("action", ""))
	require.Equal(t, "csrf-123", form.Find(`input[name="_csrf"]`).AttrOr("value", ""))
	require.Equal(t, "/admin/warranty", form.Find(`input[name="next"]`).AttrOr("value", ""))
	require.Equal(t, "kho@nexora.vn", form.Find(`input[name="email"]`).AttrOr("value", ""))
	_, checked := form.Find(`input[name="remember"]`).Attr("checked")
	require.True(t, checked)
	require.Equal(t, 1, doc.Find(`[role="alert"]`).Length(), "an empty notice renders nothing")
	require.Contains(t, doc.Find(`[data-tone="error"]`).Text(), "Xác thực thất bại.")
	require.Equal(t, "vi", doc.Find("html").AttrOr("lang", ""))
}
