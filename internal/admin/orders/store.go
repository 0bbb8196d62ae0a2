package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/textutil"
)

const numberPrefix = "DH"

// next lists the allowed transitions per status.
var next = map[Status][]Status{
	StatusDraft:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusPacked, StatusCancelled},
	StatusPacked:    {StatusReadyToShip},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, candidate := range next[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Option customises the store-backed service.
type Option func(*StoreService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *StoreService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides ULID generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *StoreService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// StoreService implements Service on top of a storage repository.
type StoreService struct {
	repo  storage.Repository[Order]
	now   func() time.Time
	newID func() string

	// mu serialises read-modify-write cycles and order number allocation.
	mu sync.Mutex
}

var _ Service = (*StoreService)(nil)

// NewService constructs a Service persisting orders in repo.
func NewService(repo storage.Repository[Order], opts ...Option) *StoreService {
	s := &StoreService{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List implements Service.
func (s *StoreService) List(ctx context.Context, query Query) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("orders: list: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return s.filter(all, query), nil
}

// PreparationQueue implements Service.
func (s *StoreService) PreparationQueue(ctx context.Context, query Query) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("orders: preparation queue: %w", err)
	}
	queue := all[:0]
	for _, order := range all {
		if containsStatus(PreparationStatuses, order.Status) {
			queue = append(queue, order)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return s.filter(queue, query), nil
}

func (s *StoreService) filter(orders []Order, query Query) ListResult {
	counts := make(map[Status]int)
	matched := make([]Order, 0, len(orders))
	for _, order := range orders {
		if !textutil.Contains(query.Search, order.Number, order.Customer.Name, order.Customer.Phone) {
			continue
		}
		counts[order.Status]++
		if len(query.Statuses) > 0 && !containsStatus(query.Statuses, order.Status) {
			continue
		}
		matched = append(matched, order)
	}
	pageItems, page := pagination.Apply(matched, query.Page)
	return ListResult{Orders: pageItems, Page: page, Counts: counts}
}

// Get implements Service.
func (s *StoreService) Get(ctx context.Context, id string) (Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("orders: get %s: %w", id, translate(err))
	}
	return order, nil
}

// Create implements Service.
func (s *StoreService) Create(ctx context.Context, req CreateRequest) (Order, error) {
	customer, items, err := validateCreate(req)
	if err != nil {
		return Order{}, fmt.Errorf("orders: create: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("orders: create: %w", err)
	}

	now := s.now().UTC()
	order := Order{
		ID:        s.newID(),
		Number:    nextNumber(existing),
		Customer:  customer,
		Items:     items,
		Status:    StatusDraft,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range items {
		order.Total += item.Subtotal()
	}

	if err := s.repo.Put(ctx, order); err != nil {
		return Order{}, fmt.Errorf("orders: create: %w", err)
	}
	return order, nil
}

// Confirm implements Service.
func (s *StoreService) Confirm(ctx context.Context, id string) (Order, error) {
	return s.transition(ctx, "confirm", id, func(Status) (Status, string) { return StatusConfirmed, "" })
}

// Cancel implements Service.
func (s *StoreService) Cancel(ctx context.Context, id string) (Order, error) {
	return s.transition(ctx, "cancel", id, func(Status) (Status, string) { return StatusCancelled, "" })
}

// Advance implements Service.
func (s *StoreService) Advance(ctx context.Context, id string) (Order, error) {
	return s.transition(ctx, "advance", id, nextFulfilmentStep)
}

// nextFulfilmentStep returns the status Advance moves an order to. A non-empty
// hint blocks the move: drafts must be confirmed explicitly, and shipped-ready
// or cancelled orders have no further fulfilment step.
func nextFulfilmentStep(current Status) (Status, string) {
	switch current {
	case StatusDraft:
		return StatusConfirmed, "Đơn hàng chưa được xác nhận. Hãy xác nhận trước khi chuẩn bị hàng."
	case StatusConfirmed:
		return StatusPreparing, ""
	case StatusPreparing:
		return StatusPacked, ""
	case StatusPacked:
		return StatusReadyToShip, ""
	case StatusCancelled:
		return "", "Đơn hàng đã bị hủy."
	default:
		return "", "Đơn hàng đã sẵn sàng giao, không còn bước tiếp theo."
	}
}

func (s *StoreService) transition(ctx context.Context, op, id string, target func(Status) (Status, string)) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("orders: %s %s: %w", op, id, translate(err))
	}

	to, hint := target(order.Status)
	if hint != "" || !CanTransition(order.Status, to) {
		return Order{}, fmt.Errorf("orders: %s %s: %w", op, id, &apperrors.TransitionError{
			Entity: "order " + order.Number,
			From:   string(order.Status),
			To:     string(to),
			Hint:   hint,
		})
	}

	now := s.now().UTC()
	order.History = append(order.History, StatusChange{From: order.Status, To: to, At: now})
	order.Status = to
	order.UpdatedAt = now

	if err := s.repo.Put(ctx, order); err != nil {
		return Order{}, fmt.Errorf("orders: %s %s: %w", op, id, err)
	}
	return order, nil
}

func validateCreate(req CreateRequest) (Customer, []Item, error) {
	v := apperrors.NewValidation()

	customer := Customer{
		Name:    strings.TrimSpace(req.Customer.Name),
		Phone:   textutil.NormalizePhone(req.Customer.Phone),
		Address: strings.TrimSpace(req.Customer.Address),
	}
	if customer.Name == "" {
		v.Add("customerName", "Vui lòng nhập tên khách hàng.")
	}
	if !textutil.ValidPhone(customer.Phone) {
		v.Add("customerPhone", "Số điện thoại phải gồm 9 đến 11 chữ số.")
	}

	items := make([]Item, 0, len(req.Items))
	for i, item := range req.Items {
		item.SKU = strings.TrimSpace(item.SKU)
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" && item.SKU == "" && item.Quantity == 0 {
			continue
		}
		field := "items." + strconv.Itoa(i)
		if item.Name == "" {
			v.Add(field+".name", "Vui lòng nhập tên sản phẩm.")
		}
		if item.Quantity <= 0 {
			v.Add(field+".quantity", "Số lượng phải lớn hơn 0.")
		}
		if item.UnitPrice < 0 {
			v.Add(field+".unitPrice", "Đơn giá không được âm.")
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		v.Add("items", "Đơn hàng cần ít nhất một sản phẩm.")
	}

	if err := v.OrNil(); err != nil {
		return Customer{}, nil, err
	}
	return customer, items, nil
}

func nextNumber(existing []Order) string {
	highest := 0
	for _, order := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(order.Number, numberPrefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%06d", numberPrefix, highest+1)
}

func containsStatus(list []Status, status Status) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

func normaliseToken(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
}
