package pcbuilds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
)

// Service manages pre-built PC configurations.
type Service interface {
	List(ctx context.Context, query Query) (ListResult, error)
	Get(ctx context.Context, id string) (Build, error)
	Create(ctx context.Context, req CreateRequest) (Build, error)
	// SetComponent installs or replaces the part in component.Slot.
	SetComponent(ctx context.Context, id string, component Component) (Build, error)
	RemoveComponent(ctx context.Context, id string, slot Slot) (Build, error)
	// Publish makes a complete build visible to customers.
	Publish(ctx context.Context, id string) (Build, error)
	Unpublish(ctx context.Context, id string) (Build, error)
	Delete(ctx context.Context, id string) error
}

// Slot identifies a component position in a build.
type Slot string

const (
	SlotCPU       Slot = "cpu"
	SlotMainboard Slot = "mainboard"
	SlotRAM       Slot = "ram"
	SlotGPU       Slot = "gpu"
	SlotStorage   Slot = "storage"
	SlotPSU       Slot = "psu"
	SlotCase      Slot = "case"
	SlotCooler    Slot = "cooler"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotCPU, SlotMainboard, SlotRAM, SlotGPU, SlotStorage, SlotPSU, SlotCase, SlotCooler}

// RequiredSlots must be filled before a build can be published.
var RequiredSlots = []Slot{SlotCPU, SlotMainboard, SlotRAM, SlotStorage, SlotPSU, SlotCase}

// Label returns the Vietnamese label for the slot.
func (s Slot) Label() string {
	switch s {
	case SlotCPU:
		return "CPU"
	case SlotMainboard:
		return "Bo mạch chủ"
	case SlotRAM:
		return "RAM"
	case SlotGPU:
		return "Card đồ họa"
	case SlotStorage:
		return "Ổ cứng"
	case SlotPSU:
		return "Nguồn"
	case SlotCase:
		return "Vỏ case"
	case SlotCooler:
		return "Tản nhiệt"
	default:
		return string(s)
	}
}

// ParseSlot returns the slot named by raw.
func ParseSlot(raw string) (Slot, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, slot := range Slots {
		if string(slot) == raw {
			return slot, true
		}
	}
	return "", false
}

// Status is the publication state of a build.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Label returns the Vietnamese label for the status.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Bản nháp"
	case StatusPublished:
		return "Đang bán"
	default:
		return string(s)
	}
}

// Tone maps the status to a badge tone.
func (s Status) Tone() string {
	if s == StatusPublished {
		return "success"
	}
	return ""
}

// ParseStatus returns the status named by raw.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	default:
		return "", false
	}
}

// Component is the part installed in one slot. Prices are whole VND.
type Component struct {
	Slot        Slot   `json:"slot"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// Subtotal returns price x quantity.
func (c Component) Subtotal() int64 {
	return c.Price * int64(c.Quantity)
}

// Build is a named PC configuration.
type Build struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Components  []Component `json:"components"`
	Status      Status      `json:"status"`
	Total       int64       `json:"total"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
}

// EntityID implements storage.Entity.
func (b Build) EntityID() string {
	return b.ID
}

// Component returns the part in slot, if any.
func (b Build) Component(slot Slot) (Component, bool) {
	for _, c := range b.Components {
		if c.Slot == slot {
			return c, true
		}
	}
	return Component{}, false
}

// MissingSlots lists required slots that are still empty.
func (b Build) MissingSlots() []Slot {
	var missing []Slot
	for _, slot := range RequiredSlots {
		if _, ok := b.Component(slot); !ok {
			missing = append(missing, slot)
		}
	}
	return missing
}

// Complete reports whether every required slot is filled.
func (b Build) Complete() bool {
	return len(b.MissingSlots()) == 0
}

// Query captures filters and pagination arguments for listing builds.
type Query struct {
	Search string
	Status Status
	Page   pagination.Params
}

// ListResult is a page of builds.
type ListResult struct {
	Builds []Build
	Page   pagination.Page
	Counts map[Status]int
}

// CreateRequest carries the fields of the new-build form.
type CreateRequest struct {
	Name        string
	Description string
}

// IncompleteBuildError is returned when publishing a build with empty required slots.
type IncompleteBuildError struct {
	Missing []Slot
}

// Error implements the error interface.
func (e *IncompleteBuildError) Error() string {
	labels := make([]string, 0, len(e.Missing))
	for _, slot := range e.Missing {
		labels = append(labels, string(slot))
	}
	return fmt.Sprintf("build is missing required components: %s", strings.Join(labels, ", "))
}

// Message returns the user-facing Vietnamese explanation.
func (e *IncompleteBuildError) Message() string {
	labels := make([]string, 0, len(e.Missing))
	for _, slot := range e.Missing {
		labels = append(labels, slot.Label())
	}
	return "Cấu hình còn thiếu: " + strings.Join(labels, ", ") + "."
}

// ErrPublished is returned when modifying or deleting a published build.
var ErrPublished = fmt.Errorf("%w: build is published", apperrors.ErrConflict)
