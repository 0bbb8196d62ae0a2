package subcategory

import (
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

var statuses = []subcategories.Status{subcategories.StatusActive, subcategories.StatusInactive}

// TableData is the view model of the subcategories fragment.
type TableData struct {
	partials.FragmentState
	Rows          []Row
	Page          pagination.Page
	StatusOptions []partials.Option
}

// Row is one subcategory.
type Row struct {
	ID           string
	Name         string
	Slug         string
	Parent       string
	Description  string
	ProductCount int
	Active       bool
	StatusLabel  string
	StatusTone   string
	Created      string
}

// NewTableData maps a page of subcategories into the view model.
func NewTableData(state partials.FragmentState, result subcategories.ListResult) TableData {
	data := TableData{
		FragmentState: state,
		Page:          result.Page,
		StatusOptions: partials.StatusOptions(statuses, subcategories.Status.Label, result.Counts, state.Status),
	}
	for _, sc := range result.Subcategories {
		tone := ""
		if sc.Active {
			tone = "success"
		}
		data.Rows = append(data.Rows, Row{
			ID:           sc.ID,
			Name:         sc.Name,
			Slug:         sc.Slug,
			Parent:       subcategories.CategoryLabel(sc.Parent),
			Description:  sc.Description,
			ProductCount: sc.ProductCount,
			Active:       sc.Active,
			StatusLabel:  sc.Status().Label(),
			StatusTone:   tone,
			Created:      helpers.Day(sc.CreatedAt),
		})
	}
	return data
}

func parentOptions(current string, placeholder string) []partials.Option {
	opts := make([]partials.Option, 0, len(subcategories.Categories)+1)
	if placeholder != "" {
		opts = append(opts, partials.Option{Value: "", Label: placeholder})
	}
	for _, c := range subcategories.Categories {
		opts = append(opts, partials.Option{Value: c.Key, Label: c.Label, Selected: c.Key == current})
	}
	return opts
}

// FieldLabels names the create form fields in error summaries.
var FieldLabels = map[string]string{
	"parent":      "Danh mục cha",
	"name":        "Tên danh mục con",
	"description": "Mô tả",
}
