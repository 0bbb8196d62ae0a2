// Package storage persists admin entities behind a small generic repository contract.
package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no entity exists for the requested id.
	ErrNotFound = errors.New("storage: not found")
	// ErrInvalidID is returned when an entity is written without an id.
	ErrInvalidID = errors.New("storage: entity id is required")
)

// Entity is implemented by every persisted type.
type Entity interface {
	EntityID() string
}

// Repository stores entities of a single kind.
type Repository[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
}

func validID(id string) bool {
	return strings.TrimSpace(id) != ""
}
