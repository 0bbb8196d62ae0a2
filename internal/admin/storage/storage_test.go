package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type widget struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Tags   []string          `json:"tags,omitempty"`
	Specs  map[string]string `json:"specs,omitempty"`
	Stamp  time.Time         `json:"stamp"`
	Amount int64             `json:"amount"`
}

func (w widget) EntityID() string { return w.ID }

func exerciseRepository(t *testing.T, repo Repository[widget]) {
	t.Helper()
	ctx := context.Background()

	stamp := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, widget{ID: "b", Name: "Bàn phím", Stamp: stamp, Amount: 1500000}))
	require.NoError(t, repo.Put(ctx, widget{ID: "a", Name: "Chuột", Tags: []string{"gaming"}, Specs: map[string]string{"dpi": "16000"}}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].ID, "list must be ordered by id")
	require.Equal(t, "b", items[1].ID)

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "Bàn phím", got.Name)
	require.Equal(t, int64(1500000), got.Amount)
	require.True(t, got.Stamp.Equal(stamp))

	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []string{"gaming"}, got.Tags)
	require.Equal(t, "16000", got.Specs["dpi"])

	require.NoError(t, repo.Put(ctx, widget{ID: "b", Name: "Bàn phím cơ"}))
	got, err = repo.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "Bàn phím cơ", got.Name, "put must replace existing entity")

	require.NoError(t, repo.Delete(ctx, "b"))
	_, err = repo.Get(ctx, "b")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "b"), ErrNotFound)

	require.ErrorIs(t, repo.Put(ctx, widget{}), ErrInvalidID)
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()
	exerciseRepository(t, NewMemory[widget]())
}

func TestMemorySeedAndCancelledContext(t *testing.T) {
	t.Parallel()

	repo := NewMemory(widget{ID: "x"}, widget{ID: ""}, widget{ID: "y"})
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "seed entities without id are skipped")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGormRepository(t *testing.T) {
	t.Parallel()

	db, err := OpenSQLite(SQLiteOptions{Path: filepath.Join(t.TempDir(), "admin.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseSQLite(db) })

	repo, err := NewGorm[widget](db, "test_widgets")
	require.NoError(t, err)
	exerciseRepository(t, repo)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := OpenSQLite(SQLiteOptions{Path: "  "})
	require.Error(t, err)
}

func TestTracedRepositoryDelegates(t *testing.T) {
	t.Parallel()
	exerciseRepository(t, NewTraced[widget](NewMemory[widget](), "widgets"))
}

func TestOpenSeedsEmptyCollections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend, err := OpenBackend(BackendOptions{
		Kind:             KindSQLite,
		SQLite:           SQLiteOptions{Path: filepath.Join(t.TempDir(), "seed.db")},
		CollectionPrefix: "admin_",
		Trace:            true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close(ctx) })
	require.Equal(t, KindSQLite, backend.Name())

	repo, err := Open(ctx, backend, "widgets", widget{ID: "1", Name: "seed"})
	require.NoError(t, err)
	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.Put(ctx, widget{ID: "2", Name: "added"}))

	// Re-opening must not re-seed a populated collection.
	repo, err = Open(ctx, backend, "widgets", widget{ID: "3", Name: "ignored"})
	require.NoError(t, err)
	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestOpenBackendRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := OpenBackend(BackendOptions{Kind: "mongo"})
	require.Error(t, err)

	backend, err := OpenBackend(BackendOptions{})
	require.NoError(t, err)
	require.Equal(t, KindMemory, backend.Name())
}

func TestWrapFirestoreError(t *testing.T) {
	t.Parallel()

	err := wrapFirestoreError("orders.get", status.Error(codes.NotFound, "missing"))
	require.ErrorIs(t, err, ErrNotFound)
	var fsErr *FirestoreError
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, "orders.get", fsErr.Op)

	err = wrapFirestoreError("orders.put", status.Error(codes.Unavailable, "down"))
	require.True(t, errors.As(err, &fsErr))
	require.True(t, fsErr.Unavailable)
	require.False(t, errors.Is(err, ErrNotFound))

	err = wrapFirestoreError("orders.put", status.Error(codes.Aborted, "contention"))
	require.True(t, errors.As(err, &fsErr))
	require.True(t, fsErr.Conflict)

	require.ErrorIs(t, wrapFirestoreError("x", status.Error(codes.Canceled, "stop")), context.Canceled)
	require.Nil(t, wrapFirestoreError("x", nil))
}

func TestFirestoreProviderClosed(t *testing.T) {
	t.Parallel()

	provider := NewFirestoreProvider(FirestoreOptions{ProjectID: "nexora-test"})
	require.NoError(t, provider.Close(context.Background()))
	_, err := provider.Client(context.Background())
	require.ErrorIs(t, err, ErrProviderClosed)

	repo, err := NewFirestore[widget](provider, "widgets")
	require.NoError(t, err)
	_, err = repo.List(context.Background())
	require.ErrorIs(t, err, ErrProviderClosed)

	_, err = NewFirestore[widget](nil, "widgets")
	require.Error(t, err)
}
