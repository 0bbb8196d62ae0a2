package orders

import (
	"context"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
)

// Service exposes order creation and preparation workflows for the admin UI.
type Service interface {
	// List returns orders matching the query, newest first.
	List(ctx context.Context, query Query) (ListResult, error)

	// Get returns a single order.
	Get(ctx context.Context, id string) (Order, error)

	// Create stores a new draft order.
	Create(ctx context.Context, req CreateRequest) (Order, error)

	// Confirm moves a draft order to confirmed, releasing it to the warehouse.
	Confirm(ctx context.Context, id string) (Order, error)

	// Cancel cancels an order that has not been packed yet.
	Cancel(ctx context.Context, id string) (Order, error)

	// PreparationQueue lists orders the warehouse still has to work on, oldest first.
	PreparationQueue(ctx context.Context, query Query) (ListResult, error)

	// Advance moves an order one step along confirmed -> preparing -> packed -> ready_to_ship.
	Advance(ctx context.Context, id string) (Order, error)
}

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusConfirmed   Status = "confirmed"
	StatusPreparing   Status = "preparing"
	StatusPacked      Status = "packed"
	StatusReadyToShip Status = "ready_to_ship"
	StatusCancelled   Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusConfirmed, StatusPreparing, StatusPacked, StatusReadyToShip, StatusCancelled}

// PreparationStatuses are the statuses shown in the preparation queue.
var PreparationStatuses = []Status{StatusConfirmed, StatusPreparing, StatusPacked}

// Label returns the Vietnamese label for the status.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Nháp"
	case StatusConfirmed:
		return "Đã xác nhận"
	case StatusPreparing:
		return "Đang chuẩn bị"
	case StatusPacked:
		return "Đã đóng gói"
	case StatusReadyToShip:
		return "Sẵn sàng giao"
	case StatusCancelled:
		return "Đã hủy"
	default:
		return string(s)
	}
}

// Tone maps the status to a badge tone.
func (s Status) Tone() string {
	switch s {
	case StatusConfirmed, StatusPreparing:
		return "info"
	case StatusPacked:
		return "warning"
	case StatusReadyToShip:
		return "success"
	case StatusCancelled:
		return "danger"
	default:
		return ""
	}
}

// ParseStatus returns the status named by raw, accepting dashes for underscores.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == normaliseToken(raw) {
			return s, true
		}
	}
	return "", false
}

// Customer holds the delivery contact for an order.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// Item is a single order line. Prices are whole VND.
type Item struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Subtotal returns quantity x unit price.
func (i Item) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// StatusChange records one lifecycle transition.
type StatusChange struct {
	From Status    `json:"from"`
	To   Status    `json:"to"`
	At   time.Time `json:"at"`
}

// Order is the persisted order aggregate.
type Order struct {
	ID        string         `json:"id"`
	Number    string         `json:"number"`
	Customer  Customer       `json:"customer"`
	Items     []Item         `json:"items"`
	Total     int64          `json:"total"`
	Status    Status         `json:"status"`
	Note      string         `json:"note,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	History   []StatusChange `json:"history,omitempty"`
}

// EntityID implements storage.Entity.
func (o Order) EntityID() string {
	return o.ID
}

// ItemCount returns the total quantity across lines.
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Query captures filters and pagination arguments for listing orders.
type Query struct {
	Search   string
	Statuses []Status
	Page     pagination.Params
}

// ListResult is a page of orders plus per-status counts of the unpaged result.
type ListResult struct {
	Orders []Order
	Page   pagination.Page
	Counts map[Status]int
}

// CreateRequest carries the fields of the create-order form.
type CreateRequest struct {
	Customer Customer
	Items    []Item
	Note     string
}
