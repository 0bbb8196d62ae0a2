package pcbuild

import (
	"strconv"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/markdown"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

// TableData is the view model of the PC-builds fragment.
type TableData struct {
	partials.FragmentState
	Workspace     pcbuilds.Workspace
	Rows          []Row
	Page          pagination.Page
	StatusOptions []partials.Option
	Detail        *Detail
}

// Row summarises one build in the list.
type Row struct {
	ID          string
	Name        string
	Excerpt     string
	Filled      string
	Total       string
	StatusLabel string
	StatusTone  string
	Updated     string
	Selected    bool
	Complete    bool
}

// Detail is the editor panel of the selected build.
type Detail struct {
	ID              string
	Name            string
	DescriptionHTML string
	StatusLabel     string
	StatusTone      string
	Total           string
	Slots           []SlotRow
	Missing         []string
	Editable        bool
	CanPublish      bool
	CanUnpublish    bool
	CanDelete       bool
}

// SlotRow is one component position of the selected build.
type SlotRow struct {
	Slot        string
	Label       string
	Required    bool
	Filled      bool
	ProductName string
	Price       string
	Quantity    int
	Subtotal    string
}

// NewTableData maps a page of builds, and the selected build when present, into the view
// model. A selected build that is not on the current page is still shown in the editor.
func NewTableData(state partials.FragmentState, ws pcbuilds.Workspace, result pcbuilds.ListResult, selected *pcbuilds.Build) TableData {
	data := TableData{
		FragmentState: state,
		Workspace:     ws,
		Page:          result.Page,
		StatusOptions: partials.StatusOptions([]pcbuilds.Status{pcbuilds.StatusDraft, pcbuilds.StatusPublished}, pcbuilds.Status.Label, result.Counts, string(ws.Status)),
	}
	for _, b := range result.Builds {
		data.Rows = append(data.Rows, Row{
			ID:          b.ID,
			Name:        b.Name,
			Excerpt:     markdown.Excerpt(b.Description, 90),
			Filled:      strconv.Itoa(len(b.Components)) + "/" + strconv.Itoa(len(pcbuilds.Slots)),
			Total:       helpers.Currency(b.Total),
			StatusLabel: b.Status.Label(),
			StatusTone:  b.Status.Tone(),
			Updated:     helpers.Relative(b.UpdatedAt, state.Now),
			Selected:    b.ID == ws.SelectedID,
			Complete:    b.Complete(),
		})
	}
	if selected != nil {
		data.Detail = newDetail(*selected)
	}
	return data
}

func newDetail(b pcbuilds.Build) *Detail {
	html, err := markdown.Render(b.Description)
	if err != nil {
		html = ""
	}
	draft := b.Status == pcbuilds.StatusDraft
	d := &Detail{
		ID:              b.ID,
		Name:            b.Name,
		DescriptionHTML: html,
		StatusLabel:     b.Status.Label(),
		StatusTone:      b.Status.Tone(),
		Total:           helpers.Currency(b.Total),
		Editable:        draft,
		CanPublish:      draft && b.Complete(),
		CanUnpublish:    b.Status == pcbuilds.StatusPublished,
		CanDelete:       draft,
	}
	required := make(map[pcbuilds.Slot]bool, len(pcbuilds.RequiredSlots))
	for _, s := range pcbuilds.RequiredSlots {
		required[s] = true
	}
	for _, slot := range pcbuilds.Slots {
		row := SlotRow{Slot: string(slot), Label: slot.Label(), Required: required[slot]}
		if c, ok := b.Component(slot); ok {
			row.Filled = true
			row.ProductName = c.ProductName
			row.Price = helpers.Currency(c.Price)
			row.Quantity = c.Quantity
			row.Subtotal = helpers.Currency(c.Subtotal())
		}
		d.Slots = append(d.Slots, row)
	}
	for _, slot := range b.MissingSlots() {
		d.Missing = append(d.Missing, slot.Label())
	}
	return d
}

// FieldLabels names the build and component form fields in error summaries.
var FieldLabels = map[string]string{
	"name":        "Tên cấu hình",
	"description": "Mô tả",
	"slot":        "Vị trí",
	"productName": "Linh kiện",
	"price":       "Đơn giá",
	"quantity":    "Số lượng",
	"components":  "Linh kiện",
}
