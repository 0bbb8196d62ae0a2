package pcbuilds

import (
	"context"
	"errors"
	"fmt"
	"sort"
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
	maxNameLength        = 120
	maxDescriptionLength = 4000
	maxQuantity          = 8
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
	repo  storage.Repository[Build]
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

var _ Service = (*StoreService)(nil)

// NewService constructs a Service persisting builds in repo.
func NewService(repo storage.Repository[Build], opts ...Option) *StoreService {
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
		return ListResult{}, fmt.Errorf("pcbuilds: list: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	counts := make(map[Status]int)
	matched := make([]Build, 0, len(all))
	for _, build := range all {
		if !matchesSearch(build, query.Search) {
			continue
		}
		counts[build.Status]++
		if query.Status != "" && build.Status != query.Status {
			continue
		}
		matched = append(matched, build)
	}
	builds, page := pagination.Apply(matched, query.Page)
	return ListResult{Builds: builds, Page: page, Counts: counts}, nil
}

func matchesSearch(build Build, term string) bool {
	fields := []string{build.Name}
	for _, c := range build.Components {
		fields = append(fields, c.ProductName)
	}
	return textutil.Contains(term, fields...)
}

// Get implements Service.
func (s *StoreService) Get(ctx context.Context, id string) (Build, error) {
	build, err := s.repo.Get(ctx, id)
	if err != nil {
		return Build{}, fmt.Errorf("pcbuilds: get %s: %w", id, translate(err))
	}
	return build, nil
}

// Create implements Service.
func (s *StoreService) Create(ctx context.Context, req CreateRequest) (Build, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)

	v := apperrors.NewValidation()
	switch {
	case name == "":
		v.Add("name", "Vui lòng nhập tên cấu hình.")
	case len([]rune(name)) > maxNameLength:
		v.Add("name", fmt.Sprintf("Tên cấu hình tối đa %d ký tự.", maxNameLength))
	}
	if len([]rune(description)) > maxDescriptionLength {
		v.Add("description", fmt.Sprintf("Mô tả tối đa %d ký tự.", maxDescriptionLength))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name != "" {
		existing, err := s.repo.List(ctx)
		if err != nil {
			return Build{}, fmt.Errorf("pcbuilds: create: %w", err)
		}
		folded := textutil.Fold(name)
		for _, build := range existing {
			if textutil.Fold(build.Name) == folded {
				v.Add("name", "Tên cấu hình đã tồn tại.")
				break
			}
		}
	}
	if err := v.OrNil(); err != nil {
		return Build{}, fmt.Errorf("pcbuilds: create: %w", err)
	}

	now := s.now().UTC()
	build := Build{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Components:  []Component{},
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, build); err != nil {
		return Build{}, fmt.Errorf("pcbuilds: create: %w", err)
	}
	return build, nil
}

// SetComponent implements Service.
func (s *StoreService) SetComponent(ctx context.Context, id string, component Component) (Build, error) {
	component.ProductName = strings.TrimSpace(component.ProductName)
	if component.Quantity == 0 {
		component.Quantity = 1
	}

	v := apperrors.NewValidation()
	if _, ok := ParseSlot(string(component.Slot)); !ok {
		v.Add("slot", "Vị trí linh kiện không hợp lệ.")
	}
	if component.ProductName == "" {
		v.Add("productName", "Vui lòng nhập tên linh kiện.")
	}
	if component.Price < 0 {
		v.Add("price", "Giá không được âm.")
	}
	if component.Quantity < 1 || component.Quantity > maxQuantity {
		v.Add("quantity", fmt.Sprintf("Số lượng từ 1 đến %d.", maxQuantity))
	}
	if err := v.OrNil(); err != nil {
		return Build{}, fmt.Errorf("pcbuilds: set component %s: %w", id, err)
	}

	return s.mutate(ctx, "set component", id, func(build *Build) error {
		if build.Status == StatusPublished {
			return ErrPublished
		}
		replaced := false
		for i := range build.Components {
			if build.Components[i].Slot == component.Slot {
				build.Components[i] = component
				replaced = true
			}
		}
		if !replaced {
			build.Components = append(build.Components, component)
		}
		return nil
	})
}

// RemoveComponent implements Service.
func (s *StoreService) RemoveComponent(ctx context.Context, id string, slot Slot) (Build, error) {
	return s.mutate(ctx, "remove component", id, func(build *Build) error {
		if build.Status == StatusPublished {
			return ErrPublished
		}
		kept := build.Components[:0]
		for _, c := range build.Components {
			if c.Slot != slot {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(build.Components) {
			return fmt.Errorf("slot %s: %w", slot, apperrors.ErrNotFound)
		}
		build.Components = kept
		return nil
	})
}

// Publish implements Service.
func (s *StoreService) Publish(ctx context.Context, id string) (Build, error) {
	return s.mutate(ctx, "publish", id, func(build *Build) error {
		if build.Status == StatusPublished {
			return &apperrors.TransitionError{Entity: "build " + build.Name, From: string(build.Status), To: string(StatusPublished)}
		}
		if missing := build.MissingSlots(); len(missing) > 0 {
			return &IncompleteBuildError{Missing: missing}
		}
		at := s.now().UTC()
		build.Status = StatusPublished
		build.PublishedAt = &at
		return nil
	})
}

// Unpublish implements Service.
func (s *StoreService) Unpublish(ctx context.Context, id string) (Build, error) {
	return s.mutate(ctx, "unpublish", id, func(build *Build) error {
		if build.Status != StatusPublished {
			return &apperrors.TransitionError{Entity: "build " + build.Name, From: string(build.Status), To: string(StatusDraft)}
		}
		build.Status = StatusDraft
		build.PublishedAt = nil
		return nil
	})
}

// Delete implements Service.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	build, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("pcbuilds: delete %s: %w", id, translate(err))
	}
	if build.Status == StatusPublished {
		return fmt.Errorf("pcbuilds: delete %s: %w", id, ErrPublished)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("pcbuilds: delete %s: %w", id, translate(err))
	}
	return nil
}

func (s *StoreService) mutate(ctx context.Context, op, id string, fn func(*Build) error) (Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	build, err := s.repo.Get(ctx, id)
	if err != nil {
		return Build{}, fmt.Errorf("pcbuilds: %s %s: %w", op, id, translate(err))
	}
	// Repositories may hand out values sharing backing arrays with stored state.
	build.Components = append([]Component(nil), build.Components...)
	if err := fn(&build); err != nil {
		return Build{}, fmt.Errorf("pcbuilds: %s %s: %w", op, id, err)
	}
	sortComponents(build.Components)
	build.Total = total(build.Components)
	build.UpdatedAt = s.now().UTC()

	if err := s.repo.Put(ctx, build); err != nil {
		return Build{}, fmt.Errorf("pcbuilds: %s %s: %w", op, id, err)
	}
	return build, nil
}

func sortComponents(components []Component) {
	rank := make(map[Slot]int, len(Slots))
	for i, slot := range Slots {
		rank[slot] = i
	}
	sort.SliceStable(components, func(i, j int) bool {
		return rank[components[i].Slot] < rank[components[j].Slot]
	})
}

func total(components []Component) int64 {
	var sum int64
	for _, c := range components {
		sum += c.Subtotal()
	}
	return sum
}

func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
