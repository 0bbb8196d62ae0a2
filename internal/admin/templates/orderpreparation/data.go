package orderpreparation

import (
	"strconv"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

// TableData is the view model of the preparation queue fragment.
type TableData struct {
	partials.FragmentState
	Rows          []Row
	Page          pagination.Page
	StatusOptions []partials.Option
}

// Row is one order awaiting warehouse work.
type Row struct {
	ID           string
	Number       string
	CustomerName string
	Address      string
	Lines        []string
	Note         string
	StatusLabel  string
	StatusTone   string
	Waiting      string
	NextLabel    string
}

// NewTableData maps the preparation queue into the view model.
func NewTableData(state partials.FragmentState, result orders.ListResult) TableData {
	data := TableData{
		FragmentState: state,
		Page:          result.Page,
		StatusOptions: partials.StatusOptions(orders.PreparationStatuses, orders.Status.Label, result.Counts, state.Status),
	}
	for _, o := range result.Orders {
		row := Row{
			ID:           o.ID,
			Number:       o.Number,
			CustomerName: o.Customer.Name,
			Address:      o.Customer.Address,
			Note:         o.Note,
			StatusLabel:  o.Status.Label(),
			StatusTone:   o.Status.Tone(),
			Waiting:      helpers.Relative(o.UpdatedAt, state.Now),
			NextLabel:    AdvanceLabel(o.Status),
		}
		for _, item := range o.Items {
			row.Lines = append(row.Lines, item.Name+" × "+strconv.Itoa(item.Quantity))
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// AdvanceLabel names the warehouse action that moves an order out of status.
func AdvanceLabel(status orders.Status) string {
	switch status {
	case orders.StatusConfirmed:
		return "Bắt đầu chuẩn bị"
	case orders.StatusPreparing:
		return "Đã đóng gói"
	case orders.StatusPacked:
		return "Sẵn sàng giao"
	default:
		return ""
	}
}
