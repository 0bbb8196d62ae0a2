package subcategories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/textutil"
)

const maxNameLength = 80

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

// UsageCounter reports how many inventory items are filed under a subcategory.
type UsageCounter func(ctx context.Context, id string) (int, error)

// WithUsageCounter makes Delete reject subcategories that still hold inventory.
func WithUsageCounter(count UsageCounter) Option {
	return func(s *StoreService) {
		s.usage = count
	}
}

// StoreService implements Service on top of a storage repository.
type StoreService struct {
	repo  storage.Repository[Subcategory]
	now   func() time.Time
	newID func() string
	usage UsageCounter

	mu sync.Mutex
}

var _ Service = (*StoreService)(nil)

// NewService constructs a Service persisting subcategories in repo.
func NewService(repo storage.Repository[Subcategory], opts ...Option) *StoreService {
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

// List implements Service. Results are ordered by the Vietnamese collation of the name.
func (s *StoreService) List(ctx context.Context, query Query) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("subcategories: list: %w", err)
	}
	textutil.SortBy(all, func(sc Subcategory) string { return sc.Name })

	counts := make(map[Status]int)
	matched := make([]Subcategory, 0, len(all))
	for _, sc := range all {
		if query.Parent != "" && sc.Parent != query.Parent {
			continue
		}
		if !textutil.Contains(query.Search, sc.Name, sc.Slug, sc.Description) {
			continue
		}
		counts[sc.Status()]++
		if query.Status != "" && sc.Status() != query.Status {
			continue
		}
		matched = append(matched, sc)
	}
	items, page := pagination.Apply(matched, query.Page)
	return ListResult{Subcategories: items, Page: page, Counts: counts}, nil
}

// Get implements Service.
func (s *StoreService) Get(ctx context.Context, id string) (Subcategory, error) {
	sc, err := s.repo.Get(ctx, id)
	if err != nil {
		return Subcategory{}, fmt.Errorf("subcategories: get %s: %w", id, translate(err))
	}
	return sc, nil
}

// Create implements Service.
func (s *StoreService) Create(ctx context.Context, req CreateRequest) (Subcategory, error) {
	sc := Subcategory{
		Parent:      strings.TrimSpace(req.Parent),
		Name:        strings.Join(strings.Fields(req.Name), " "),
		Description: strings.TrimSpace(req.Description),
		Active:      true,
	}
	sc.Slug = textutil.Slugify(sc.Name)

	v := apperrors.NewValidation()
	if !knownCategory(sc.Parent) {
		v.Add("parent", "Vui lòng chọn danh mục cha.")
	}
	switch {
	case sc.Name == "":
		v.Add("name", "Vui lòng nhập tên danh mục con.")
	case len([]rune(sc.Name)) > maxNameLength:
		v.Add("name", fmt.Sprintf("Tên tối đa %d ký tự.", maxNameLength))
	case sc.Slug == "":
		v.Add("name", "Tên phải chứa ít nhất một chữ cái hoặc chữ số.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.Slug != "" {
		existing, err := s.repo.List(ctx)
		if err != nil {
			return Subcategory{}, fmt.Errorf("subcategories: create: %w", err)
		}
		for _, other := range existing {
			if other.Slug == sc.Slug {
				v.Add("name", fmt.Sprintf("Đường dẫn %q đã được sử dụng.", sc.Slug))
				v.Cause = ErrDuplicateSlug
				break
			}
		}
	}
	if err := v.OrNil(); err != nil {
		return Subcategory{}, fmt.Errorf("subcategories: create: %w", err)
	}

	now := s.now().UTC()
	sc.ID = s.newID()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if err := s.repo.Put(ctx, sc); err != nil {
		return Subcategory{}, fmt.Errorf("subcategories: create: %w", err)
	}
	return sc, nil
}

// SetActive implements Service.
func (s *StoreService) SetActive(ctx context.Context, id string, active bool) (Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.repo.Get(ctx, id)
	if err != nil {
		return Subcategory{}, fmt.Errorf("subcategories: set active %s: %w", id, translate(err))
	}
	if sc.Active == active {
		return sc, nil
	}
	sc.Active = active
	sc.UpdatedAt = s.now().UTC()
	if err := s.repo.Put(ctx, sc); err != nil {
		return Subcategory{}, fmt.Errorf("subcategories: set active %s: %w", id, err)
	}
	return sc, nil
}

// Delete implements Service.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("subcategories: delete %s: %w", id, translate(err))
	}
	if sc.ProductCount > 0 {
		return fmt.Errorf("subcategories: delete %s: %w", id, ErrInUse)
	}
	if s.usage != nil {
		n, err := s.usage(ctx, id)
		if err != nil {
			return fmt.Errorf("subcategories: delete %s: count usage: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("subcategories: delete %s: %d units: %w", id, n, ErrInUse)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("subcategories: delete %s: %w", id, translate(err))
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
