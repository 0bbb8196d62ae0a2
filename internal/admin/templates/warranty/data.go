package warranty

import (
	"strconv"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/helpers"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
	adminwarranty "github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

// TableData is the view model of the warranty table fragment.
type TableData struct {
	partials.FragmentState
	Rows          []Row
	Page          pagination.Page
	StatusOptions []partials.Option
}

// Row is one warranty record as displayed.
type Row struct {
	ID            string
	Code          string
	Serial        string
	ProductName   string
	CustomerName  string
	CustomerPhone string
	Start         string
	End           string
	Months        int
	Coverage      string
	StatusLabel   string
	StatusTone    string
	VoidReason    string
	ClaimCount    int
	OpenClaims    []ClaimRow
	CanClaim      bool
	CanVoid       bool
}

// ClaimRow is an unresolved claim awaiting a resolution note.
type ClaimRow struct {
	ID     string
	Issue  string
	Opened string
}

// NewTableData maps a service result into the fragment view model.
func NewTableData(state partials.FragmentState, result adminwarranty.ListResult) TableData {
	data := TableData{
		FragmentState: state,
		Page:          result.Page,
		StatusOptions: partials.StatusOptions(adminwarranty.Statuses, adminwarranty.Status.Label, result.Counts, state.Status),
	}
	for _, rec := range result.Records {
		data.Rows = append(data.Rows, newRow(rec, state))
	}
	return data
}

func newRow(rec adminwarranty.Record, state partials.FragmentState) Row {
	status := rec.StatusAt(state.Now)
	row := Row{
		ID:            rec.ID,
		Code:          rec.Code,
		Serial:        rec.Serial,
		ProductName:   rec.ProductName,
		CustomerName:  rec.Customer.Name,
		CustomerPhone: rec.Customer.Phone,
		Start:         helpers.Day(rec.StartDate),
		End:           helpers.Day(rec.EndDate),
		Months:        rec.Months,
		StatusLabel:   status.Label(),
		StatusTone:    status.Tone(),
		VoidReason:    rec.VoidReason,
		ClaimCount:    len(rec.Claims),
		CanClaim:      status == adminwarranty.StatusActive,
		CanVoid:       status == adminwarranty.StatusActive || status == adminwarranty.StatusExpired,
	}
	switch status {
	case adminwarranty.StatusActive:
		row.Coverage = "Còn " + strconv.Itoa(rec.DaysLeft(state.Now)) + " ngày"
	case adminwarranty.StatusExpired:
		row.Coverage = "Đã hết hạn"
	}
	for _, c := range rec.Claims {
		if !c.Open() {
			continue
		}
		row.OpenClaims = append(row.OpenClaims, ClaimRow{
			ID:     c.ID,
			Issue:  c.Issue,
			Opened: helpers.Relative(c.OpenedAt, state.Now),
		})
	}
	return row
}

// FieldLabels names the register form fields in error summaries.
var FieldLabels = map[string]string{
	"serial":        "Số serial",
	"productName":   "Sản phẩm",
	"customerName":  "Khách hàng",
	"customerPhone": "Số điện thoại",
	"startDate":     "Ngày bắt đầu",
	"months":        "Số tháng",
	"issue":         "Mô tả lỗi",
	"resolution":    "Kết quả xử lý",
	"reason":        "Lý do hủy",
}
