package productunits

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/textutil"
)

const maxWarrantyMonths = 60

var serialPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-/.]{3,39}$`)

var next = map[Status][]Status{
	StatusInStock:    {StatusReserved, StatusSold, StatusDefective},
	StatusReserved:   {StatusInStock, StatusSold},
	StatusSold:       {StatusInWarranty},
	StatusInWarranty: {StatusSold, StatusDefective},
}

// CanTransition reports whether a unit may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, candidate := range next[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s.
func NextStatuses(s Status) []Status {
	return append([]Status(nil), next[s]...)
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

// WithSubcategoryLookup makes Register accept only existing, active subcategories.
func WithSubcategoryLookup(lookup SubcategoryLookup) Option {
	return func(s *StoreService) {
		s.subcategory = lookup
	}
}

// CatalogLookup resolves subcategories through the subcategory service.
func CatalogLookup(cats subcategories.Service) SubcategoryLookup {
	return func(ctx context.Context, id string) (Subcategory, error) {
		sc, err := cats.Get(ctx, id)
		if err != nil {
			return Subcategory{}, err
		}
		return Subcategory{Name: sc.Name, Active: sc.Active}, nil
	}
}

// StoreService implements Service on top of a storage repository.
type StoreService struct {
	repo        storage.Repository[Unit]
	now         func() time.Time
	newID       func() string
	subcategory SubcategoryLookup

	// mu serialises serial uniqueness checks with their writes.
	mu sync.Mutex
}

var _ Service = (*StoreService)(nil)

// NewService constructs a Service persisting units in repo.
func NewService(repo storage.Repository[Unit], opts ...Option) *StoreService {
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
		return ListResult{}, fmt.Errorf("productunits: list: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].ImportedAt.Equal(all[j].ImportedAt) {
			return all[i].ImportedAt.After(all[j].ImportedAt)
		}
		return all[i].Serial < all[j].Serial
	})

	counts := make(map[Status]int)
	matched := make([]Unit, 0, len(all))
	for _, unit := range all {
		if query.SubcategoryID != "" && unit.SubcategoryID != query.SubcategoryID {
			continue
		}
		if !textutil.Contains(query.Search, unit.Serial, unit.SKU, unit.ProductName, unit.OrderNumber) {
			continue
		}
		counts[unit.Status]++
		if query.Status != "" && unit.Status != query.Status {
			continue
		}
		matched = append(matched, unit)
	}
	units, page := pagination.Apply(matched, query.Page)
	return ListResult{Units: units, Page: page, Counts: counts}, nil
}

// Get implements Service.
func (s *StoreService) Get(ctx context.Context, id string) (Unit, error) {
	unit, err := s.repo.Get(ctx, id)
	if err != nil {
		return Unit{}, fmt.Errorf("productunits: get %s: %w", id, translate(err))
	}
	return unit, nil
}

// FindBySerial returns the unit registered under serial, ignoring case.
func (s *StoreService) FindBySerial(ctx context.Context, serial string) (Unit, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Unit{}, fmt.Errorf("productunits: find %s: %w", serial, err)
	}
	serial = NormalizeSerial(serial)
	for _, unit := range all {
		if strings.EqualFold(unit.Serial, serial) {
			return unit, nil
		}
	}
	return Unit{}, fmt.Errorf("productunits: find %s: %w", serial, apperrors.ErrNotFound)
}

// CountInSubcategory returns how many units are filed under the subcategory id.
func (s *StoreService) CountInSubcategory(ctx context.Context, id string) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("productunits: count in %s: %w", id, err)
	}
	n := 0
	for _, unit := range all {
		if unit.SubcategoryID == id {
			n++
		}
	}
	return n, nil
}

// Register implements Service.
func (s *StoreService) Register(ctx context.Context, req RegisterRequest) (Unit, error) {
	unit := Unit{
		Serial:         NormalizeSerial(req.Serial),
		SKU:            strings.ToUpper(strings.TrimSpace(req.SKU)),
		ProductName:    strings.TrimSpace(req.ProductName),
		SubcategoryID:  strings.TrimSpace(req.SubcategoryID),
		WarrantyMonths: req.WarrantyMonths,
		Status:         StatusInStock,
	}

	v := apperrors.NewValidation()
	switch {
	case unit.Serial == "":
		v.Add("serial", "Vui lòng nhập số serial.")
	case !serialPattern.MatchString(unit.Serial):
		v.Add("serial", "Số serial gồm 4 đến 40 ký tự chữ, số hoặc - / .")
	}
	if unit.SKU == "" {
		v.Add("sku", "Vui lòng nhập mã SKU.")
	}
	if unit.ProductName == "" {
		v.Add("productName", "Vui lòng nhập tên sản phẩm.")
	}
	if unit.WarrantyMonths < 0 || unit.WarrantyMonths > maxWarrantyMonths {
		v.Add("warrantyMonths", fmt.Sprintf("Thời hạn bảo hành từ 0 đến %d tháng.", maxWarrantyMonths))
	}
	if err := s.checkSubcategory(ctx, unit.SubcategoryID, v); err != nil {
		return Unit{}, fmt.Errorf("productunits: register: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if unit.Serial != "" {
		existing, err := s.repo.List(ctx)
		if err != nil {
			return Unit{}, fmt.Errorf("productunits: register: %w", err)
		}
		for _, other := range existing {
			if strings.EqualFold(other.Serial, unit.Serial) {
				v.Add("serial", "Số serial đã tồn tại.")
				v.Cause = ErrDuplicateSerial
				break
			}
		}
	}
	if err := v.OrNil(); err != nil {
		return Unit{}, fmt.Errorf("productunits: register: %w", err)
	}

	now := s.now().UTC()
	unit.ID = s.newID()
	unit.ImportedAt = now
	unit.UpdatedAt = now
	if err := s.repo.Put(ctx, unit); err != nil {
		return Unit{}, fmt.Errorf("productunits: register: %w", err)
	}
	return unit, nil
}

func (s *StoreService) checkSubcategory(ctx context.Context, id string, v *apperrors.ValidationError) error {
	if s.subcategory == nil {
		return nil
	}
	if id == "" {
		v.Add("subcategoryId", "Vui lòng chọn danh mục con.")
		return nil
	}
	sc, err := s.subcategory(ctx, id)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		v.Add("subcategoryId", "Danh mục con không tồn tại.")
	case err != nil:
		return fmt.Errorf("lookup subcategory %s: %w", id, err)
	case !sc.Active:
		v.Add("subcategoryId", fmt.Sprintf("Danh mục con %q đang ẩn, không thể nhập hàng.", sc.Name))
	}
	return nil
}

// UpdateStatus implements Service.
func (s *StoreService) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (Unit, error) {
	update.OrderNumber = strings.ToUpper(strings.TrimSpace(update.OrderNumber))

	s.mu.Lock()
	defer s.mu.Unlock()

	unit, err := s.repo.Get(ctx, id)
	if err != nil {
		return Unit{}, fmt.Errorf("productunits: update status %s: %w", id, translate(err))
	}
	if !CanTransition(unit.Status, update.Status) {
		return Unit{}, fmt.Errorf("productunits: update status %s: %w", id, &apperrors.TransitionError{
			Entity: "unit " + unit.Serial,
			From:   string(unit.Status),
			To:     string(update.Status),
		})
	}

	now := s.now().UTC()
	switch update.Status {
	case StatusReserved, StatusSold:
		if update.OrderNumber != "" {
			unit.OrderNumber = update.OrderNumber
		}
		if unit.OrderNumber == "" {
			v := apperrors.NewValidation()
			v.Add("orderNumber", "Vui lòng nhập mã đơn hàng.")
			return Unit{}, fmt.Errorf("productunits: update status %s: %w", id, v)
		}
		if update.Status == StatusSold && unit.SoldAt == nil {
			unit.SoldAt = &now
		}
	case StatusInStock:
		unit.OrderNumber = ""
	}
	unit.Status = update.Status
	unit.UpdatedAt = now

	if err := s.repo.Put(ctx, unit); err != nil {
		return Unit{}, fmt.Errorf("productunits: update status %s: %w", id, err)
	}
	return unit, nil
}

// WarrantyEnds returns when the unit's warranty lapses, counted from the sale date.
func (u Unit) WarrantyEnds() (time.Time, bool) {
	if u.SoldAt == nil || u.WarrantyMonths == 0 {
		return time.Time{}, false
	}
	return u.SoldAt.AddDate(0, u.WarrantyMonths, 0), true
}

func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
