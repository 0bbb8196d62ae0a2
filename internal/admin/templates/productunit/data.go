package productunit

import (
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/productunits"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

// TableData is the view model of the product-units fragment.
type TableData struct {
	partials.FragmentState
	Rows               []Row
	Page               pagination.Page
	StatusOptions      []partials.Option
	SubcategoryOptions []partials.Option
}

// Row is one serial-numbered unit.
type Row struct {
	ID          string
	Serial      string
	SKU         string
	ProductName string
	Subcategory string
	StatusLabel string
	StatusTone  string
	OrderNumber string
	Warranty    string
	Imported    string
	Next        []partials.Option
}

// NewTableData maps a page of units into the view model. Subcategory names are resolved from
// cats; unknown ids render as the raw id. Only active subcategories are offered in the form.
func NewTableData(state partials.FragmentState, result productunits.ListResult, cats []subcategories.Subcategory) TableData {
	names := make(map[string]string, len(cats))
	data := TableData{
		FragmentState: state,
		Page:          result.Page,
		StatusOptions: partials.StatusOptions(productunits.Statuses, productunits.Status.Label, result.Counts, state.Status),
	}
	data.SubcategoryOptions = append(data.SubcategoryOptions, partials.Option{Value: "", Label: "Chọn danh mục con"})
	for _, c := range cats {
		names[c.ID] = c.Name
		if c.Active {
			data.SubcategoryOptions = append(data.SubcategoryOptions, partials.Option{Value: c.ID, Label: c.Name})
		}
	}
	for _, u := range result.Units {
		row := Row{
			ID:          u.ID,
			Serial:      u.Serial,
			SKU:         u.SKU,
			ProductName: u.ProductName,
			Subcategory: names[u.SubcategoryID],
			StatusLabel: u.Status.Label(),
			StatusTone:  u.Status.Tone(),
			OrderNumber: u.OrderNumber,
			Imported:    helpers.Day(u.ImportedAt),
		}
		if row.Subcategory == "" {
			row.Subcategory = u.SubcategoryID
		}
		if u.WarrantyMonths > 0 {
			row.Warranty = helpers.Number(u.WarrantyMonths) + " tháng"
			if ends, ok := u.WarrantyEnds(); ok {
				row.Warranty += " · đến " + helpers.Day(ends)
			}
		}
		for _, s := range productunits.NextStatuses(u.Status) {
			row.Next = append(row.Next, partials.Option{Value: string(s), Label: s.Label()})
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// FieldLabels names the register and status form fields in error summaries.
var FieldLabels = map[string]string{
	"serial":         "Số serial",
	"sku":            "Mã SKU",
	"productName":    "Sản phẩm",
	"subcategoryId":  "Danh mục con",
	"warrantyMonths": "Bảo hành",
	"toStatus":       "Trạng thái",
	"orderNumber":    "Mã đơn hàng",
}
