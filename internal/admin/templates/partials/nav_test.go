package partials

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/navigation"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/rbac"
)

func TestHasVisibleItemsRespectRoles(t *testing.T) {
	t.Parallel()

	// Warehouse staff should not see sales or service tools.
	ctx := middleware.ContextWithUser(context.Background(), &middleware.User{
		Roles: []string{string(rbac.RoleWarehouse)},
	})
	menu := navigation.BuildMenu("/admin")

	var service navigation.MenuGroup
	var catalog navigation.MenuGroup
	for _, group := range menu {
		switch group.Key {
		case "service":
			service = group
		case "catalog":
			catalog = group
		}
	}

	require.NotEmpty(t, service.Items, "service group must contain navigation items")
	require.False(t, hasVisibleItems(service, ctx), "warehouse role must not see warranty")
	require.True(t, hasVisibleItems(catalog, ctx), "warehouse role manages product units")
}

func TestVisibleItemsFiltersByCapability(t *testing.T) {
	t.Parallel()

	group := navigation.MenuGroup{
		Key:   "catalog",
		Label: "Sản phẩm",
		Items: []navigation.MenuItem{
			{
				Key:         "product-units",
				Label:       "Sản phẩm theo serial",
				Capability:  rbac.CapProductUnitsManage,
				Href:        "/admin/product-units",
				Pattern:     "/admin/product-units",
				MatchPrefix: true,
			},
			{
				Key:         "subcategories",
				Label:       "Danh mục con",
				Capability:  rbac.CapSubcategoriesManage,
				Href:        "/admin/subcategories",
				Pattern:     "/admin/subcategories",
				MatchPrefix: true,
			},
		},
	}

	ctxTechnician := middleware.ContextWithUser(context.Background(), &middleware.User{
		Roles: []string{string(rbac.RoleTechnician)},
	})
	ctxWarehouse := middleware.ContextWithUser(context.Background(), &middleware.User{
		Roles: []string{string(rbac.RoleWarehouse)},
	})

	require.Empty(t, visibleItems(group, ctxTechnician), "technician lacks both capabilities")

	items := visibleItems(group, ctxWarehouse)
	require.Len(t, items, 1, "warehouse role should only see allowed items")
	require.Equal(t, "product-units", items[0].Key)

	guarded := group
	guarded.Capability = rbac.CapWarrantyManage
	require.Empty(t, visibleItems(guarded, ctxWarehouse), "group capability hides every item")
}

func TestSidebarRenderingFiltersAndHighlights(t *testing.T) {
	t.Parallel()

	menu := navigation.BuildMenu("/admin")

	req := httptest.NewRequest(http.MethodGet, "/admin/product-units/table", nil)
	var ctx context.Context
	handler := middleware.RequestMetadata("/admin", "")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	ctx = middleware.ContextWithUser(ctx, &middleware.User{
		Roles: []string{string(rbac.RoleWarehouse)},
	})

	var buf bytes.Buffer
	err := Sidebar(menu).Render(ctx, &buf)
	require.NoError(t, err)

	doc := parseHTML(t, buf.Bytes())

	require.Equal(t, 1, doc.Find("aside.w-64").Length())
	require.Equal(t, 0, doc.Find(`a[href="/admin/warranty"]`).Length(), "warranty link must be hidden")
	require.Equal(t, 0, doc.Find(`[data-nav-group="service"]`).Length(), "empty groups are omitted")
	require.Equal(t, 1, doc.Find(`a[href="/admin/order-preparation"]`).Length())

	unitsLink := doc.Find(`a[href="/admin/product-units"]`)
	require.Equal(t, 1, unitsLink.Length(), "product units link should render")
	require.Equal(t, "page", unitsLink.AttrOr("aria-current", ""), "active route highlights current page")
	require.Contains(t, unitsLink.AttrOr("class", ""), "bg-slate-900", "active link should use highlighted class")
	require.Equal(t, 1, doc.Find(`[aria-current="page"]`).Length())
}

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}
