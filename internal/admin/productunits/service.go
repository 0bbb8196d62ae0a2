package productunits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
)

// Service tracks individual serial-numbered product units.
type Service interface {
	List(ctx context.Context, query Query) (ListResult, error)
	Get(ctx context.Context, id string) (Unit, error)
	// Register adds a newly imported unit to stock.
	Register(ctx context.Context, req RegisterRequest) (Unit, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) (Unit, error)
}

// Status is the lifecycle state of a unit.
type Status string

const (
	StatusInStock    Status = "in_stock"
	StatusReserved   Status = "reserved"
	StatusSold       Status = "sold"
	StatusInWarranty Status = "in_warranty"
	StatusDefective  Status = "defective"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusInStock, StatusReserved, StatusSold, StatusInWarranty, StatusDefective}

// Label returns the Vietnamese label for the status.
func (s Status) Label() string {
	switch s {
	case StatusInStock:
		return "Trong kho"
	case StatusReserved:
		return "Đã giữ hàng"
	case StatusSold:
		return "Đã bán"
	case StatusInWarranty:
		return "Đang bảo hành"
	case StatusDefective:
		return "Lỗi"
	default:
		return string(s)
	}
}

// Tone maps the status to a badge tone.
func (s Status) Tone() string {
	switch s {
	case StatusInStock:
		return "success"
	case StatusReserved, StatusInWarranty:
		return "warning"
	case StatusDefective:
		return "danger"
	default:
		return ""
	}
}

// ParseStatus returns the status named by raw. Hyphens are accepted in place of underscores.
func ParseStatus(raw string) (Status, bool) {
	raw = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	for _, s := range Statuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Unit is one physical item identified by its serial number.
type Unit struct {
	ID             string     `json:"id"`
	Serial         string     `json:"serial"`
	SKU            string     `json:"sku"`
	ProductName    string     `json:"productName"`
	SubcategoryID  string     `json:"subcategoryId,omitempty"`
	Status         Status     `json:"status"`
	OrderNumber    string     `json:"orderNumber,omitempty"`
	WarrantyMonths int        `json:"warrantyMonths"`
	ImportedAt     time.Time  `json:"importedAt"`
	SoldAt         *time.Time `json:"soldAt,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// EntityID implements storage.Entity.
func (u Unit) EntityID() string {
	return u.ID
}

// Query captures filters and pagination arguments for listing units.
type Query struct {
	Search        string
	Status        Status
	SubcategoryID string
	Page          pagination.Params
}

// ListResult is a page of units.
type ListResult struct {
	Units  []Unit
	Page   pagination.Page
	Counts map[Status]int
}

// RegisterRequest carries the fields of the import form.
type RegisterRequest struct {
	Serial         string
	SKU            string
	ProductName    string
	SubcategoryID  string
	WarrantyMonths int
}

// StatusUpdate moves a unit to Status. OrderNumber is required when reserving or selling.
type StatusUpdate struct {
	Status      Status
	OrderNumber string
}

// ErrDuplicateSerial is the cause attached to validation errors for an already registered serial.
var ErrDuplicateSerial = errors.New("productunits: duplicate serial")

// Subcategory is the catalogue information a SubcategoryLookup resolves.
type Subcategory struct {
	Name   string
	Active bool
}

// SubcategoryLookup resolves the subcategory a unit is filed under. Unknown ids return an
// error wrapping apperrors.ErrNotFound.
type SubcategoryLookup func(ctx context.Context, id string) (Subcategory, error)

// NormalizeSerial trims and upper-cases a serial number.
func NormalizeSerial(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}
