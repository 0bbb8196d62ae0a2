package pcbuilds

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

func newTestService(t *testing.T) *StoreService {
	t.Helper()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return NewService(storage.NewMemory(Seed(now)...),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "build-new" }),
	)
}

func TestSeedTotals(t *testing.T) {
	t.Parallel()

	builds := Seed(time.Now())
	require.Equal(t, int64(13740000), builds[0].Total)
	require.True(t, builds[0].Complete())
	require.Equal(t, []Slot{SlotStorage, SlotPSU, SlotCase}, builds[1].MissingSlots())
	require.Equal(t, SlotCPU, builds[1].Components[0].Slot)
	require.Equal(t, SlotCooler, builds[1].Components[len(builds[1].Components)-1].Slot)
}

func TestListOrdersAndFilters(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, result.Builds, 3)
	require.Equal(t, "build-003", result.Builds[0].ID, "most recently updated first")
	require.Equal(t, 2, result.Counts[StatusDraft])
	require.Equal(t, 1, result.Counts[StatusPublished])

	result, err = svc.List(ctx, Query{Status: StatusPublished})
	require.NoError(t, err)
	require.Len(t, result.Builds, 1)
	require.Equal(t, "build-001", result.Builds[0].ID)

	result, err = svc.List(ctx, Query{Search: "do hoa"})
	require.NoError(t, err)
	require.Len(t, result.Builds, 1)
	require.Equal(t, "build-002", result.Builds[0].ID)

	result, err = svc.List(ctx, Query{Search: "rtx 3050"})
	require.NoError(t, err)
	require.Len(t, result.Builds, 1, "search covers component names")
	require.Equal(t, "build-001", result.Builds[0].ID)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "   "})
	fields := apperrors.FieldErrors(err)
	require.Contains(t, fields, "name")

	_, err = svc.Create(ctx, CreateRequest{Name: "van phong co ban"})
	require.Equal(t, "Tên cấu hình đã tồn tại.", apperrors.FieldErrors(err)["name"])

	build, err := svc.Create(ctx, CreateRequest{Name: " Streaming 25 triệu ", Description: "OBS + game"})
	require.NoError(t, err)
	require.Equal(t, "build-new", build.ID)
	require.Equal(t, "Streaming 25 triệu", build.Name)
	require.Equal(t, StatusDraft, build.Status)
	require.Empty(t, build.Components)
}

func TestComponentsAndPublish(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Publish(ctx, "build-002")
	var incomplete *IncompleteBuildError
	require.True(t, errors.As(err, &incomplete))
	require.Equal(t, []Slot{SlotStorage, SlotPSU, SlotCase}, incomplete.Missing)
	require.Equal(t, "Cấu hình còn thiếu: Ổ cứng, Nguồn, Vỏ case.", incomplete.Message())

	for _, c := range []Component{
		{Slot: SlotCase, ProductName: "NZXT H5 Flow", Price: 2190000},
		{Slot: SlotStorage, ProductName: "Samsung 990 Pro 1TB", Price: 2990000, Quantity: 1},
		{Slot: SlotPSU, ProductName: "Corsair RM750e", Price: 2590000, Quantity: 1},
	} {
		_, err = svc.SetComponent(ctx, "build-002", c)
		require.NoError(t, err)
	}

	build, err := svc.Get(ctx, "build-002")
	require.NoError(t, err)
	require.True(t, build.Complete())
	require.Equal(t, SlotStorage, build.Components[4].Slot, "components stay in slot order")
	require.Equal(t, 1, build.Components[6].Quantity, "zero quantity defaults to one")

	// Replacing a slot keeps a single entry.
	build, err = svc.SetComponent(ctx, "build-002", Component{Slot: SlotCase, ProductName: "Lian Li Lancool 216", Price: 2390000, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, build.Components, 8)
	c, ok := build.Component(SlotCase)
	require.True(t, ok)
	require.Equal(t, "Lian Li Lancool 216", c.ProductName)

	published, err := svc.Publish(ctx, "build-002")
	require.NoError(t, err)
	require.Equal(t, StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = svc.SetComponent(ctx, "build-002", Component{Slot: SlotGPU, ProductName: "RTX 4070", Price: 15990000})
	require.ErrorIs(t, err, ErrPublished)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	require.ErrorIs(t, svc.Delete(ctx, "build-002"), apperrors.ErrConflict)

	_, err = svc.Unpublish(ctx, "build-002")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "build-002"))

	_, err = svc.Get(ctx, "build-002")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetComponentValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.SetComponent(context.Background(), "build-003", Component{Slot: "fan", Price: -1, Quantity: 20})
	fields := apperrors.FieldErrors(err)
	require.Contains(t, fields, "slot")
	require.Contains(t, fields, "productName")
	require.Contains(t, fields, "price")
	require.Contains(t, fields, "quantity")
}

func TestRemoveComponent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	build, err := svc.RemoveComponent(ctx, "build-002", SlotGPU)
	require.NoError(t, err)
	_, ok := build.Component(SlotGPU)
	require.False(t, ok)
	require.Equal(t, int64(8190000+4390000+2*1590000+1390000), build.Total)

	_, err = svc.RemoveComponent(ctx, "build-002", SlotGPU)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.RemoveComponent(ctx, "build-001", SlotGPU)
	require.ErrorIs(t, err, ErrPublished)
}

func TestPublishTwiceIsTransitionError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Publish(context.Background(), "build-001")
	var transition *apperrors.TransitionError
	require.True(t, errors.As(err, &transition))

	_, err = svc.Unpublish(context.Background(), "build-003")
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestWorkspaceRoundTrip(t *testing.T) {
	t.Parallel()

	ws := WorkspaceFromValues(url.Values{"selected": {" build-002 "}, "status": {"PUBLISHED"}, "q": {"gaming"}})
	require.Equal(t, Workspace{SelectedID: "build-002", Status: StatusPublished, Search: "gaming"}, ws)
	require.Equal(t, "q=gaming&selected=build-002&status=published", ws.Values().Encode())

	invalid := WorkspaceFromValues(url.Values{"status": {"archived"}})
	require.Empty(t, invalid.Status)
	require.Empty(t, invalid.Values().Encode())

	_, ok := WorkspaceFromContext(context.Background())
	require.False(t, ok)
	got, ok := WorkspaceFromContext(WithWorkspace(context.Background(), ws.Select("build-001")))
	require.True(t, ok)
	require.Equal(t, "build-001", got.SelectedID)
	require.Equal(t, "build-002", ws.SelectedID)
}
