package subcategories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
)

// Service manages product subcategories.
type Service interface {
	List(ctx context.Context, query Query) (ListResult, error)
	Get(ctx context.Context, id string) (Subcategory, error)
	Create(ctx context.Context, req CreateRequest) (Subcategory, error)
	SetActive(ctx context.Context, id string, active bool) (Subcategory, error)
	// Delete removes an empty subcategory. Subcategories that still hold products return ErrInUse.
	Delete(ctx context.Context, id string) error
}

// Category is a top-level product category.
type Category struct {
	Key   string
	Label string
}

// Categories lists the parent categories a subcategory may belong to.
var Categories = []Category{
	{Key: "components", Label: "Linh kiện máy tính"},
	{Key: "peripherals", Label: "Thiết bị ngoại vi"},
	{Key: "monitors", Label: "Màn hình"},
	{Key: "networking", Label: "Thiết bị mạng"},
	{Key: "accessories", Label: "Phụ kiện"},
}

// CategoryLabel returns the display label of the parent category key.
func CategoryLabel(key string) string {
	for _, c := range Categories {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

func knownCategory(key string) bool {
	for _, c := range Categories {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Status is derived from the active flag and used for filtering.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Label returns the Vietnamese label for the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Đang hiển thị"
	case StatusInactive:
		return "Đã ẩn"
	default:
		return string(s)
	}
}

// ParseStatus returns the status named by raw.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	default:
		return "", false
	}
}

// Subcategory groups products below a parent category.
type Subcategory struct {
	ID           string    `json:"id"`
	Parent       string    `json:"parent"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ProductCount int       `json:"productCount"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EntityID implements storage.Entity.
func (s Subcategory) EntityID() string {
	return s.ID
}

// Status reports the filter status of the subcategory.
func (s Subcategory) Status() Status {
	if s.Active {
		return StatusActive
	}
	return StatusInactive
}

// Query captures filters and pagination arguments for listing subcategories.
type Query struct {
	Search string
	Parent string
	Status Status
	Page   pagination.Params
}

// ListResult is a page of subcategories.
type ListResult struct {
	Subcategories []Subcategory
	Page          pagination.Page
	Counts        map[Status]int
}

// CreateRequest carries the fields of the new-subcategory form.
type CreateRequest struct {
	Parent      string
	Name        string
	Description string
}

// ErrDuplicateSlug is the cause attached to validation errors for a name whose slug is taken.
var ErrDuplicateSlug = errors.New("subcategories: duplicate slug")

// ErrInUse is returned when deleting a subcategory that still holds products.
var ErrInUse = fmt.Errorf("%w: subcategory has products", apperrors.ErrConflict)
