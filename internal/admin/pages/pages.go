// Package pages binds each admin route to its heading and content component.
package pages

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/rbac"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/createorder"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/layouts"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/orderpreparation"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/pcbuild"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/productunit"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/subcategory"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/warranty"
)

// Definition describes one admin page.
type Definition struct {
	Key        string
	Paths      []string
	Title      string
	Subtitle   string
	Capability rbac.Capability
	// Component is the data-component name of the table the page renders.
	Component string
	Content   func(r *http.Request) templ.Component
}

// Path returns the canonical route of the page.
func (d Definition) Path() string {
	return d.Paths[0]
}

// Render returns the page body: the heading followed by the content component.
func (d Definition) Render(r *http.Request) templ.Component {
	content := d.Content(r)
	return helpers.Render(func(ctx context.Context, w *helpers.Writer) {
		w.Component(ctx, layouts.PageHeading(d.Title, d.Subtitle))
		w.Component(ctx, content)
	})
}

func static(c templ.Component) func(*http.Request) templ.Component {
	return func(*http.Request) templ.Component { return c }
}

var definitions = []Definition{
	{
		Key:        "create-order",
		Paths:      []string{"/orders/create", "/create-orders"},
		Title:      "Tạo Đơn Hàng",
		Subtitle:   "Tạo đơn hàng mới cho khách hàng",
		Capability: rbac.CapOrdersCreate,
		Component:  createorder.ComponentName,
		Content:    static(createorder.Table()),
	},
	{
		Key:        "order-preparation",
		Paths:      []string{"/order-preparation"},
		Title:      "Chuẩn Bị Đơn Hàng",
		Subtitle:   "Theo dõi và xử lý các đơn hàng đang chuẩn bị",
		Capability: rbac.CapOrdersPrepare,
		Component:  orderpreparation.ComponentName,
		Content:    static(orderpreparation.Table()),
	},
	{
		Key:        "pc-builds",
		Paths:      []string{"/pc-builds"},
		Title:      "PC Build",
		Subtitle:   "Quản lý các cấu hình PC build sẵn",
		Capability: rbac.CapPCBuildsManage,
		Component:  pcbuild.ComponentName,
		Content: func(r *http.Request) templ.Component {
			return pcbuild.Provider(pcbuilds.WorkspaceFromValues(r.URL.Query()), pcbuild.Table())
		},
	},
	{
		Key:        "product-units",
		Paths:      []string{"/product-units"},
		Title:      "Quản Lý Sản Phẩm Theo Serial",
		Subtitle:   "Quản lý từng đơn vị sản phẩm theo số serial",
		Capability: rbac.CapProductUnitsManage,
		Component:  productunit.ComponentName,
		Content:    static(productunit.Table()),
	},
	{
		Key:        "subcategories",
		Paths:      []string{"/subcategories"},
		Title:      "Quản Lý Danh Mục Con",
		Subtitle:   "Quản lý danh mục con của sản phẩm",
		Capability: rbac.CapSubcategoriesManage,
		Component:  subcategory.ComponentName,
		Content:    static(subcategory.Table()),
	},
	{
		Key:        "warranty",
		Paths:      []string{"/warranty"},
		Title:      "Quản Lý Bảo Hành",
		Subtitle:   "Quản lý thông tin bảo hành sản phẩm",
		Capability: rbac.CapWarrantyManage,
		Component:  warranty.ComponentName,
		Content:    static(warranty.Table()),
	},
}

// All returns every page definition in menu order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition with key.
func Lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
