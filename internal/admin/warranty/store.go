package warranty

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

const (
	codePrefix = "BH"
	maxMonths  = 60
)

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

// WithIDGenerator overrides ULID generation for records and claims.
func WithIDGenerator(gen func() string) Option {
	return func(s *StoreService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithSerialLookup fills product details from inventory when registering.
func WithSerialLookup(lookup SerialLookup) Option {
	return func(s *StoreService) {
		s.lookup = lookup
	}
}

// StoreService implements Service on top of a storage repository.
type StoreService struct {
	repo   storage.Repository[Record]
	now    func() time.Time
	newID  func() string
	lookup SerialLookup

	// mu serialises code allocation and claim updates.
	mu sync.Mutex
}

var _ Service = (*StoreService)(nil)

// NewService constructs a Service persisting records in repo.
func NewService(repo storage.Repository[Record], opts ...Option) *StoreService {
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
		return ListResult{}, fmt.Errorf("warranty: list: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	now := s.now()
	counts := make(map[Status]int)
	matched := make([]Record, 0, len(all))
	for _, record := range all {
		record.Status = record.StatusAt(now)
		if !textutil.Contains(query.Search, record.Code, record.Serial, record.ProductName, record.Customer.Name, record.Customer.Phone) {
			continue
		}
		counts[record.Status]++
		if query.Status != "" && record.Status != query.Status {
			continue
		}
		matched = append(matched, record)
	}
	records, page := pagination.Apply(matched, query.Page)
	return ListResult{Records: records, Page: page, Counts: counts}, nil
}

// Get implements Service.
func (s *StoreService) Get(ctx context.Context, id string) (Record, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("warranty: get %s: %w", id, translate(err))
	}
	record.Status = record.StatusAt(s.now())
	return record, nil
}

// Register implements Service.
func (s *StoreService) Register(ctx context.Context, req RegisterRequest) (Record, error) {
	serial := strings.ToUpper(strings.Join(strings.Fields(req.Serial), ""))
	productName := strings.TrimSpace(req.ProductName)
	months := req.Months
	start := req.StartDate

	if s.lookup != nil && serial != "" && (productName == "" || months == 0 || start.IsZero()) {
		unit, err := s.lookup(ctx, serial)
		switch {
		case err == nil:
			if productName == "" {
				productName = unit.ProductName
			}
			if months == 0 {
				months = unit.Months
			}
			if start.IsZero() && unit.SoldAt != nil {
				start = *unit.SoldAt
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			return Record{}, fmt.Errorf("warranty: register: lookup %s: %w", serial, err)
		}
	}

	now := s.now().UTC()
	if start.IsZero() {
		start = now
	}
	start = startOfDay(start)
	customer := Customer{
		Name:  strings.TrimSpace(req.Customer.Name),
		Phone: textutil.NormalizePhone(req.Customer.Phone),
	}

	v := apperrors.NewValidation()
	if serial == "" {
		v.Add("serial", "Vui lòng nhập số serial.")
	}
	if productName == "" {
		v.Add("productName", "Vui lòng nhập tên sản phẩm.")
	}
	if customer.Name == "" {
		v.Add("customerName", "Vui lòng nhập tên khách hàng.")
	}
	if !textutil.ValidPhone(customer.Phone) {
		v.Add("customerPhone", "Số điện thoại phải gồm 9 đến 11 chữ số.")
	}
	if months < 1 || months > maxMonths {
		v.Add("months", fmt.Sprintf("Thời hạn bảo hành từ 1 đến %d tháng.", maxMonths))
	}
	if start.After(now) {
		v.Add("startDate", "Ngày bắt đầu không được ở tương lai.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("warranty: register: %w", err)
	}
	for _, other := range existing {
		if serial != "" && other.Serial == serial && other.Status != StatusVoid && other.StatusAt(now) != StatusExpired {
			v.Add("serial", fmt.Sprintf("Số serial đã có phiếu bảo hành %s.", other.Code))
			v.Cause = ErrDuplicateWarranty
			break
		}
	}
	if err := v.OrNil(); err != nil {
		return Record{}, fmt.Errorf("warranty: register: %w", err)
	}

	record := Record{
		ID:          s.newID(),
		Code:        nextCode(existing),
		Serial:      serial,
		ProductName: productName,
		Customer:    customer,
		StartDate:   start,
		Months:      months,
		EndDate:     EndDate(start, months),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	record.Status = record.StatusAt(now)
	if err := s.repo.Put(ctx, record); err != nil {
		return Record{}, fmt.Errorf("warranty: register: %w", err)
	}
	return record, nil
}

// OpenClaim implements Service.
func (s *StoreService) OpenClaim(ctx context.Context, id, issue string) (Record, error) {
	issue = strings.TrimSpace(issue)
	if issue == "" {
		v := apperrors.NewValidation()
		v.Add("issue", "Vui lòng mô tả lỗi sản phẩm.")
		return Record{}, fmt.Errorf("warranty: open claim %s: %w", id, v)
	}
	return s.mutate(ctx, "open claim", id, func(record *Record, now time.Time) error {
		if current := record.StatusAt(now); current != StatusActive {
			return &apperrors.TransitionError{Entity: "warranty " + record.Code, From: string(current), To: string(StatusProcessing)}
		}
		record.Claims = append(record.Claims, Claim{ID: s.newID(), Issue: issue, OpenedAt: now})
		return nil
	})
}

// ResolveClaim implements Service.
func (s *StoreService) ResolveClaim(ctx context.Context, id, claimID, resolution string) (Record, error) {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		v := apperrors.NewValidation()
		v.Add("resolution", "Vui lòng nhập kết quả xử lý.")
		return Record{}, fmt.Errorf("warranty: resolve claim %s: %w", id, v)
	}
	return s.mutate(ctx, "resolve claim", id, func(record *Record, now time.Time) error {
		for i := range record.Claims {
			if record.Claims[i].ID != claimID {
				continue
			}
			if !record.Claims[i].Open() {
				return fmt.Errorf("claim %s already resolved: %w", claimID, apperrors.ErrConflict)
			}
			closed := now
			record.Claims[i].Resolution = resolution
			record.Claims[i].ClosedAt = &closed
			return nil
		}
		return fmt.Errorf("claim %s: %w", claimID, apperrors.ErrNotFound)
	})
}

// Void implements Service.
func (s *StoreService) Void(ctx context.Context, id, reason string) (Record, error) {
	reason = strings.TrimSpace(reason)
	return s.mutate(ctx, "void", id, func(record *Record, now time.Time) error {
		current := record.StatusAt(now)
		if current == StatusVoid || current == StatusProcessing {
			return &apperrors.TransitionError{Entity: "warranty " + record.Code, From: string(current), To: string(StatusVoid)}
		}
		record.Status = StatusVoid
		record.VoidReason = reason
		return nil
	})
}

// SweepExpired implements Service.
func (s *StoreService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("warranty: sweep: %w", err)
	}
	swept := 0
	for _, record := range all {
		if record.Status == StatusExpired || record.StatusAt(now) != StatusExpired {
			continue
		}
		record.Status = StatusExpired
		record.UpdatedAt = now.UTC()
		if err := s.repo.Put(ctx, record); err != nil {
			return swept, fmt.Errorf("warranty: sweep %s: %w", record.ID, err)
		}
		swept++
	}
	return swept, nil
}

func (s *StoreService) mutate(ctx context.Context, op, id string, fn func(*Record, time.Time) error) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("warranty: %s %s: %w", op, id, translate(err))
	}
	record.Claims = append([]Claim(nil), record.Claims...)

	now := s.now().UTC()
	if err := fn(&record, now); err != nil {
		return Record{}, fmt.Errorf("warranty: %s %s: %w", op, id, err)
	}
	record.Status = record.StatusAt(now)
	record.UpdatedAt = now
	if err := s.repo.Put(ctx, record); err != nil {
		return Record{}, fmt.Errorf("warranty: %s %s: %w", op, id, err)
	}
	return record, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextCode(existing []Record) string {
	highest := 0
	for _, record := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(record.Code, codePrefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%06d", codePrefix, highest+1)
}

func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
