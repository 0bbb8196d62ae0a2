package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

func newTestService(t *testing.T) (*StoreService, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	seq := 0
	svc := NewService(storage.NewMemory(Seed(now)...),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			seq++
			return "new-" + string(rune('a'+seq-1))
		}),
	)
	return svc, &now
}

func TestCreateAssignsNumberAndTotal(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateRequest{
		Customer: Customer{Name: "  Bùi Thanh Tâm ", Phone: "+84 903 111 222"},
		Items: []Item{
			{SKU: "RAM", Name: "RAM 8GB", Quantity: 2, UnitPrice: 450000},
			{},
			{SKU: "SSD", Name: "SSD 512GB", Quantity: 1, UnitPrice: 990000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "new-a", order.ID)
	require.Equal(t, "DH000007", order.Number)
	require.Equal(t, StatusDraft, order.Status)
	require.Equal(t, "Bùi Thanh Tâm", order.Customer.Name)
	require.Equal(t, "0903111222", order.Customer.Phone)
	require.Len(t, order.Items, 2, "blank lines are dropped")
	require.Equal(t, int64(1890000), order.Total)
	require.Equal(t, 3, order.ItemCount())
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateRequest{
		Customer: Customer{Name: " ", Phone: "12"},
		Items:    []Item{{Name: "Chuột", Quantity: 0, UnitPrice: -1}},
	})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Field("customerName"))
	require.NotEmpty(t, verr.Field("customerPhone"))
	require.NotEmpty(t, verr.Field("items.0.quantity"))
	require.NotEmpty(t, verr.Field("items.0.unitPrice"))

	_, err = svc.Create(context.Background(), CreateRequest{
		Customer: Customer{Name: "An", Phone: "0901234567"},
	})
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Field("items"))
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Confirm(ctx, "order-001")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, order.Status)

	for _, want := range []Status{StatusPreparing, StatusPacked, StatusReadyToShip} {
		order, err = svc.Advance(ctx, "order-001")
		require.NoError(t, err)
		require.Equal(t, want, order.Status)
	}
	require.Len(t, order.History, 4)
	require.Equal(t, StatusPacked, order.History[3].From)

	_, err = svc.Advance(ctx, "order-001")
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Cancel(ctx, "order-001")
	var terr *apperrors.TransitionError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, "ready_to_ship", terr.From)
}

func TestCancelRules(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Cancel(ctx, "order-003")
	require.NoError(t, err, "preparing orders can still be cancelled")
	require.Equal(t, StatusCancelled, order.Status)

	_, err = svc.Cancel(ctx, "order-004")
	require.ErrorIs(t, err, apperrors.ErrConflict, "packed orders cannot be cancelled")

	_, err = svc.Advance(ctx, "order-001")
	require.ErrorIs(t, err, apperrors.ErrConflict, "drafts must be confirmed before preparation")

	_, err = svc.Confirm(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdvanceNamesTheMissingStep(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Advance(ctx, "order-001")
	var terr *apperrors.TransitionError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, string(StatusDraft), terr.From)
	require.Equal(t, string(StatusConfirmed), terr.To)
	require.Contains(t, terr.Hint, "chưa được xác nhận")
	require.Contains(t, err.Error(), `"draft" to "confirmed"`)

	order, err := svc.Get(ctx, "order-001")
	require.NoError(t, err)
	require.Equal(t, StatusDraft, order.Status, "a blocked advance must not confirm the draft")

	_, err = svc.Cancel(ctx, "order-001")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, "order-001")
	require.True(t, errors.As(err, &terr))
	require.Empty(t, terr.To)
	require.Equal(t, "Đơn hàng đã bị hủy.", terr.Hint)
	require.Contains(t, err.Error(), `no step after "cancelled"`)
}

func TestListFiltersAndSearch(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, result.Orders, 6)
	require.Equal(t, "DH000001", result.Orders[0].Number, "newest first")
	require.Equal(t, 1, result.Counts[StatusDraft])

	result, err = svc.List(ctx, Query{Search: "tran thi"})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	require.Equal(t, "Trần Thị Bích", result.Orders[0].Customer.Name)

	result, err = svc.List(ctx, Query{Statuses: []Status{StatusCancelled}})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	require.Equal(t, 6, sumCounts(result.Counts), "counts ignore the status filter")

	result, err = svc.List(ctx, Query{Page: pagination.Params{Page: 2, PageSize: 4}})
	require.NoError(t, err)
	require.Len(t, result.Orders, 2)
	require.Equal(t, 2, result.Page.TotalPages)
}

func TestPreparationQueue(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	result, err := svc.PreparationQueue(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, result.Orders, 3)
	require.Equal(t, StatusPacked, result.Orders[0].Status, "oldest first")
	for _, order := range result.Orders {
		require.Contains(t, PreparationStatuses, order.Status)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status, ok := ParseStatus("Ready-To-Ship")
	require.True(t, ok)
	require.Equal(t, StatusReadyToShip, status)

	_, ok = ParseStatus("shipped")
	require.False(t, ok)
	require.Equal(t, "Đang chuẩn bị", StatusPreparing.Label())
}

func sumCounts(counts map[Status]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
