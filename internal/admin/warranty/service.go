package warranty

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
)

// Service manages warranty records and their claims.
type Service interface {
	List(ctx context.Context, query Query) (ListResult, error)
	Get(ctx context.Context, id string) (Record, error)
	Register(ctx context.Context, req RegisterRequest) (Record, error)
	// OpenClaim files a repair claim against an active record.
	OpenClaim(ctx context.Context, id, issue string) (Record, error)
	ResolveClaim(ctx context.Context, id, claimID, resolution string) (Record, error)
	Void(ctx context.Context, id, reason string) (Record, error)
	// SweepExpired persists the expired status for records whose end date is before now.
	// It returns the number of records updated.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// Status is the coverage state of a record.
type Status string

const (
	StatusActive     Status = "active"
	StatusProcessing Status = "processing"
	StatusExpired    Status = "expired"
	StatusVoid       Status = "void"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusActive, StatusProcessing, StatusExpired, StatusVoid}

// Label returns the Vietnamese label for the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Còn bảo hành"
	case StatusProcessing:
		return "Đang xử lý"
	case StatusExpired:
		return "Hết hạn"
	case StatusVoid:
		return "Đã hủy"
	default:
		return string(s)
	}
}

// Tone maps the status to a badge tone.
func (s Status) Tone() string {
	switch s {
	case StatusActive:
		return "success"
	case StatusProcessing:
		return "warning"
	case StatusVoid:
		return "danger"
	default:
		return ""
	}
}

// ParseStatus returns the status named by raw.
func ParseStatus(raw string) (Status, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, s := range Statuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Customer identifies the warranty holder.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Claim is a repair request filed against a record.
type Claim struct {
	ID         string     `json:"id"`
	Issue      string     `json:"issue"`
	Resolution string     `json:"resolution,omitempty"`
	OpenedAt   time.Time  `json:"openedAt"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
}

// Open reports whether the claim is still awaiting resolution.
func (c Claim) Open() bool {
	return c.ClosedAt == nil
}

// Record is the warranty coverage of one serial-numbered unit.
type Record struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Serial      string    `json:"serial"`
	ProductName string    `json:"productName"`
	Customer    Customer  `json:"customer"`
	StartDate   time.Time `json:"startDate"`
	Months      int       `json:"months"`
	EndDate     time.Time `json:"endDate"`
	Status      Status    `json:"status"`
	VoidReason  string    `json:"voidReason,omitempty"`
	Claims      []Claim   `json:"claims,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EntityID implements storage.Entity.
func (r Record) EntityID() string {
	return r.ID
}

// OpenClaims counts unresolved claims.
func (r Record) OpenClaims() int {
	n := 0
	for _, c := range r.Claims {
		if c.Open() {
			n++
		}
	}
	return n
}

// StatusAt derives the status of the record at the given instant.
// Void wins over everything; open claims keep a record processing past its end date.
func (r Record) StatusAt(now time.Time) Status {
	switch {
	case r.Status == StatusVoid:
		return StatusVoid
	case r.OpenClaims() > 0:
		return StatusProcessing
	case now.After(r.EndDate):
		return StatusExpired
	default:
		return StatusActive
	}
}

// DaysLeft returns the whole days of coverage remaining at now, never negative.
func (r Record) DaysLeft(now time.Time) int {
	if !now.Before(r.EndDate) {
		return 0
	}
	return int(r.EndDate.Sub(now).Hours() / 24)
}

// EndDate returns the last covered day for a warranty starting at start. A start day missing
// from the target month clamps to that month's last day, so 31 January plus one month ends on
// 28 (or 29) February.
func EndDate(start time.Time, months int) time.Time {
	hour, minute, sec := start.Clock()
	first := time.Date(start.Year(), start.Month()+time.Month(months), 1, hour, minute, sec, start.Nanosecond(), start.Location())
	day := min(start.Day(), first.AddDate(0, 1, -1).Day())
	return first.AddDate(0, 0, day-1)
}

// Query captures filters and pagination arguments for listing records.
type Query struct {
	Search string
	Status Status
	Page   pagination.Params
}

// ListResult is a page of records with statuses derived at listing time.
type ListResult struct {
	Records []Record
	Page    pagination.Page
	Counts  map[Status]int
}

// RegisterRequest carries the fields of the new-warranty form. A zero StartDate means today.
type RegisterRequest struct {
	Serial      string
	ProductName string
	Customer    Customer
	StartDate   time.Time
	Months      int
}

// Unit is the product information a SerialLookup resolves.
type Unit struct {
	ProductName string
	Months      int
	SoldAt      *time.Time
}

// SerialLookup resolves a serial number to the unit sold under it.
type SerialLookup func(ctx context.Context, serial string) (Unit, error)

// ErrDuplicateWarranty is the cause attached to validation errors when a serial already has
// coverage that is not void.
var ErrDuplicateWarranty = errors.New("warranty: serial already covered")
