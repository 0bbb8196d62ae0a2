package layouts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/navigation"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/rbac"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
)

func adminContext(t *testing.T) context.Context {
	t.Helper()

	var ctx context.Context
	handler := middleware.RequestMetadata("/", "")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/warranty", nil))
	return middleware.ContextWithUser(ctx, &middleware.User{UID: "u1", Roles: []string{string(rbac.RoleAdmin)}})
}

func render(t *testing.T, ctx context.Context, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestAdminRendersShellOnce(t *testing.T) {
	t.Parallel()

	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section data-component="Sample">nội dung</section>`)
		return err
	})
	data := AdminData{
		Title:   "Quản Lý Bảo Hành",
		Menu:    navigation.BuildMenu("/"),
		Flashes: []session.Flash{{Tone: session.FlashSuccess, Message: "Đã lưu"}},
	}
	doc := render(t, adminContext(t), Admin(data, content))

	require.Equal(t, 1, doc.Find("aside.w-64").Length())
	require.Equal(t, 1, doc.Find("header.h-16").Length())
	require.Equal(t, 1, doc.Find("main.pl-64.pt-16").Length())
	require.Equal(t, 1, doc.Find(`main [data-component="Sample"]`).Length())
	require.Equal(t, 0, doc.Find("h1").Length(), "the shell adds no heading of its own")
	require.Equal(t, "Quản Lý Bảo Hành | Nexora Admin", doc.Find("title").Text())
	require.Contains(t, doc.Find("[data-flash-region]").Text(), "Đã lưu")
	require.Equal(t, "page", doc.Find(`a[href="/warranty"]`).AttrOr("aria-current", ""))
}

func TestAdminPropagatesContentError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	content := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	var buf bytes.Buffer
	err := Admin(AdminData{}, content).Render(adminContext(t), &buf)
	require.ErrorIs(t, err, boom)
}

func TestPageHeading(t *testing.T) {
	t.Parallel()

	doc := render(t, context.Background(), PageHeading("PC Build", "Quản lý các cấu hình PC build sẵn"))
	require.Equal(t, "PC Build", doc.Find("h1").Text())
	require.Equal(t, "Quản lý các cấu hình PC build sẵn", doc.Find("[data-page-subtitle]").Text())

	doc = render(t, context.Background(), PageHeading("Chỉ tiêu đề", ""))
	require.Equal(t, 0, doc.Find("[data-page-subtitle]").Length())
}

func TestBodyHeadersWithoutToken(t *testing.T) {
	t.Parallel()

	require.Empty(t, bodyHeaders(context.Background(), ""))
}
