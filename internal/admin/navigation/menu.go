// Package navigation describes the sidebar menu of the admin console.
package navigation

import (
	"strings"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/rbac"
)

// Menu is the ordered list of sidebar groups.
type Menu []MenuGroup

// MenuGroup is a labelled section of the sidebar.
type MenuGroup struct {
	Key        string
	Label      string
	Capability rbac.Capability
	Items      []MenuItem
}

// MenuItem links to one admin page.
type MenuItem struct {
	Key         string
	Label       string
	Icon        string
	Capability  rbac.Capability
	Href        string
	Pattern     string
	MatchPrefix bool
}

// BuildMenu returns the sidebar menu with links resolved against basePath.
func BuildMenu(basePath string) Menu {
	link := func(key, label, icon, path string, capability rbac.Capability) MenuItem {
		href := join(basePath, path)
		return MenuItem{
			Key:         key,
			Label:       label,
			Icon:        icon,
			Capability:  capability,
			Href:        href,
			Pattern:     href,
			MatchPrefix: true,
		}
	}

	return Menu{
		{
			Key:   "sales",
			Label: "Bán hàng",
			Items: []MenuItem{
				link("create-order", "Tạo đơn hàng", "cart", "/orders/create", rbac.CapOrdersCreate),
				link("order-preparation", "Chuẩn bị đơn hàng", "package", "/order-preparation", rbac.CapOrdersPrepare),
			},
		},
		{
			Key:   "catalog",
			Label: "Sản phẩm",
			Items: []MenuItem{
				link("pc-builds", "PC Build", "cpu", "/pc-builds", rbac.CapPCBuildsManage),
				link("product-units", "Sản phẩm theo serial", "barcode", "/product-units", rbac.CapProductUnitsManage),
				link("subcategories", "Danh mục con", "folder", "/subcategories", rbac.CapSubcategoriesManage),
			},
		},
		{
			Key:   "service",
			Label: "Dịch vụ",
			Items: []MenuItem{
				link("warranty", "Bảo hành", "shield", "/warranty", rbac.CapWarrantyManage),
			},
		},
	}
}

// Items flattens the menu in display order.
func (m Menu) Items() []MenuItem {
	var items []MenuItem
	for _, group := range m {
		items = append(items, group.Items...)
	}
	return items
}

func join(basePath, suffix string) string {
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	return base + suffix
}
