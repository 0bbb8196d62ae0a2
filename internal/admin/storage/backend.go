package storage

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Backend kinds accepted by OpenBackend.
const (
	KindMemory    = "memory"
	KindSQLite    = "sqlite"
	KindFirestore = "firestore"
)

// BackendOptions selects and configures the persistence backend.
type BackendOptions struct {
	Kind             string
	SQLite           SQLiteOptions
	Firestore        FirestoreOptions
	CollectionPrefix string
	Trace            bool
}

// Backend owns the shared connection behind every repository of one process.
type Backend struct {
	kind      string
	prefix    string
	trace     bool
	db        *gorm.DB
	firestore *FirestoreProvider
}

// OpenBackend prepares the configured backend. Firestore connects lazily on first use.
func OpenBackend(opts BackendOptions) (*Backend, error) {
	kind := strings.ToLower(strings.TrimSpace(opts.Kind))
	if kind == "" {
		kind = KindMemory
	}
	b := &Backend{kind: kind, prefix: opts.CollectionPrefix, trace: opts.Trace}
	switch kind {
	case KindMemory:
	case KindSQLite:
		db, err := OpenSQLite(opts.SQLite)
		if err != nil {
			return nil, err
		}
		b.db = db
	case KindFirestore:
		b.firestore = NewFirestoreProvider(opts.Firestore)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Kind)
	}
	return b, nil
}

// Name identifies the backend in logs.
func (b *Backend) Name() string {
	return b.kind
}

// Close releases the backend connection.
func (b *Backend) Close(ctx context.Context) error {
	switch {
	case b.db != nil:
		return CloseSQLite(b.db)
	case b.firestore != nil:
		return b.firestore.Close(ctx)
	}
	return nil
}

// Open returns the repository for collection on backend b. When seed is non-empty and the
// collection holds no entities yet, the seed entities are written first.
func Open[T Entity](ctx context.Context, b *Backend, collection string, seed ...T) (Repository[T], error) {
	name := b.prefix + collection

	var repo Repository[T]
	switch b.kind {
	case KindMemory:
		repo = NewMemory(seed...)
		seed = nil
	case KindSQLite:
		g, err := NewGorm[T](b.db, name)
		if err != nil {
			return nil, err
		}
		repo = g
	case KindFirestore:
		f, err := NewFirestore[T](b.firestore, name)
		if err != nil {
			return nil, err
		}
		repo = f
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", b.kind)
	}

	if b.trace {
		repo = NewTraced(repo, collection)
	}

	if len(seed) > 0 {
		existing, err := repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: inspect %s before seeding: %w", name, err)
		}
		if len(existing) == 0 {
			for _, entity := range seed {
				if err := repo.Put(ctx, entity); err != nil {
					return nil, fmt.Errorf("storage: seed %s: %w", name, err)
				}
			}
		}
	}
	return repo, nil
}
