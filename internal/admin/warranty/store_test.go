package warranty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc  *StoreService
	repo *storage.Memory[Record]
	now  *time.Time
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	now := testNow
	seq := 0
	repo := storage.NewMemory(Seed(testNow)...)
	base := []Option{
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			seq++
			return "gen-" + string(rune('a'+seq-1))
		}),
	}
	return fixture{svc: NewService(repo, append(base, opts...)...), repo: repo, now: &now}
}

func TestEndDateAndStatusAt(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), EndDate(start, 12))
	require.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), EndDate(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1))
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), EndDate(start, 1), "leap year")
	require.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), EndDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 6))
	require.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC), EndDate(time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC), 12))

	r := Record{EndDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), Status: StatusActive}
	require.Equal(t, StatusActive, r.StatusAt(r.EndDate))
	require.Equal(t, StatusExpired, r.StatusAt(r.EndDate.Add(time.Second)))

	r.Status = StatusVoid
	require.Equal(t, StatusVoid, r.StatusAt(r.EndDate.Add(time.Hour)))

	r.Status = StatusActive
	r.Claims = []Claim{{ID: "c"}}
	require.Equal(t, StatusProcessing, r.StatusAt(r.EndDate.Add(time.Hour)))
}

func TestListDerivesStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, result.Records, 5)
	require.Equal(t, "BH000001", result.Records[0].Code, "newest first")
	require.Equal(t, map[Status]int{StatusActive: 2, StatusProcessing: 1, StatusExpired: 1, StatusVoid: 1}, result.Counts)

	result, err = f.svc.List(ctx, Query{Status: StatusExpired})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	require.Equal(t, "BH000003", result.Records[0].Code)

	stored, err := f.repo.Get(ctx, "warranty-003")
	require.NoError(t, err)
	require.Equal(t, StatusActive, stored.Status, "listing does not write")

	result, err = f.svc.List(ctx, Query{Search: "tran thi bich"})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	require.Equal(t, "BH000005", result.Records[0].Code)
}

func TestSweepExpired(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	n, err := f.svc.SweepExpired(ctx, testNow)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	stored, err := f.repo.Get(ctx, "warranty-003")
	require.NoError(t, err)
	require.Equal(t, StatusExpired, stored.Status)

	n, err = f.svc.SweepExpired(ctx, testNow)
	require.NoError(t, err)
	require.Zero(t, n, "sweep is idempotent")

	n, err = f.svc.SweepExpired(ctx, testNow.AddDate(2, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 1, n, "void and processing records are left alone")

	stored, err = f.repo.Get(ctx, "warranty-002")
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, stored.Status)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	record, err := f.svc.Register(context.Background(), RegisterRequest{
		Serial:      " sn-i5124-0001 ",
		ProductName: "CPU Intel Core i5-12400F",
		Customer:    Customer{Name: "Nguyễn Văn An", Phone: "+84 901 234 567"},
		Months:      36,
	})
	require.NoError(t, err)
	require.Equal(t, "gen-a", record.ID)
	require.Equal(t, "BH000006", record.Code)
	require.Equal(t, "SN-I5124-0001", record.Serial)
	require.Equal(t, "0901234567", record.Customer.Phone)
	require.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), record.StartDate)
	require.Equal(t, time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC), record.EndDate)
	require.Equal(t, StatusActive, record.Status)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterRequest{Months: 99, StartDate: testNow.AddDate(0, 0, 3)})
	fields := apperrors.FieldErrors(err)
	for _, field := range []string{"serial", "productName", "customerName", "customerPhone", "months", "startDate"} {
		require.Contains(t, fields, field)
	}

	_, err = f.svc.Register(ctx, RegisterRequest{
		Serial:      "vga4060-a17x",
		ProductName: "RTX 4060",
		Customer:    Customer{Name: "Hoàng Văn Em", Phone: "0977888999"},
		Months:      12,
	})
	require.ErrorIs(t, err, ErrDuplicateWarranty)
	require.Contains(t, apperrors.FieldErrors(err)["serial"], "BH000001")

	// Expired and void coverage do not block a new record.
	_, err = f.svc.Register(ctx, RegisterRequest{
		Serial:      "LGM27-0456-XK",
		ProductName: "Màn hình LG 27GP850",
		Customer:    Customer{Name: "Phạm Quốc Đạt", Phone: "0933222111"},
		Months:      6,
	})
	require.NoError(t, err)
}

func TestRegisterUsesSerialLookup(t *testing.T) {
	t.Parallel()

	soldAt := time.Date(2025, 5, 20, 14, 30, 0, 0, time.UTC)
	lookup := func(_ context.Context, serial string) (Unit, error) {
		if serial == "SN-KNOWN-1" {
			return Unit{ProductName: "Mainboard MSI B650M", Months: 36, SoldAt: &soldAt}, nil
		}
		return Unit{}, apperrors.ErrNotFound
	}
	f := newFixture(t, WithSerialLookup(lookup))
	ctx := context.Background()

	record, err := f.svc.Register(ctx, RegisterRequest{
		Serial:   "sn-known-1",
		Customer: Customer{Name: "Đỗ Minh Khôi", Phone: "0911222333"},
	})
	require.NoError(t, err)
	require.Equal(t, "Mainboard MSI B650M", record.ProductName)
	require.Equal(t, 36, record.Months)
	require.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), record.StartDate)

	_, err = f.svc.Register(ctx, RegisterRequest{
		Serial:   "sn-unknown",
		Customer: Customer{Name: "Đỗ Minh Khôi", Phone: "0911222333"},
		Months:   12,
	})
	require.Contains(t, apperrors.FieldErrors(err), "productName")
}

func TestClaimLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenClaim(ctx, "warranty-001", "  ")
	require.Contains(t, apperrors.FieldErrors(err), "issue")

	record, err := f.svc.OpenClaim(ctx, "warranty-001", "Card không xuất hình")
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, record.Status)
	require.Len(t, record.Claims, 1)
	claimID := record.Claims[0].ID

	_, err = f.svc.OpenClaim(ctx, "warranty-001", "Quạt kêu")
	var transition *apperrors.TransitionError
	require.True(t, errors.As(err, &transition), "only active records accept claims")

	_, err = f.svc.Void(ctx, "warranty-001", "test")
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.ResolveClaim(ctx, "warranty-001", "missing", "ok")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	record, err = f.svc.ResolveClaim(ctx, "warranty-001", claimID, "Đổi card mới")
	require.NoError(t, err)
	require.Equal(t, StatusActive, record.Status)
	require.NotNil(t, record.Claims[0].ClosedAt)

	_, err = f.svc.ResolveClaim(ctx, "warranty-001", claimID, "again")
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestResolvingPastEndDateExpires(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	*f.now = testNow.AddDate(6, 0, 0)
	record, err := f.svc.Get(ctx, "warranty-002")
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, record.Status)

	record, err = f.svc.ResolveClaim(ctx, "warranty-002", "claim-001", "Đã thay ổ mới")
	require.NoError(t, err)
	require.Equal(t, StatusExpired, record.Status)
}

func TestOpenClaimOnExpiredOrVoid(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenClaim(ctx, "warranty-003", "Màn hình sọc")
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.OpenClaim(ctx, "warranty-004", "RAM lỗi")
	require.ErrorIs(t, err, apperrors.ErrConflict)

	record, err := f.svc.Void(ctx, "warranty-005", "Khách tự ý sửa chữa")
	require.NoError(t, err)
	require.Equal(t, StatusVoid, record.Status)
	require.Equal(t, "Khách tự ý sửa chữa", record.VoidReason)

	_, err = f.svc.Void(ctx, "warranty-005", "again")
	require.ErrorIs(t, err, apperrors.ErrConflict)
}
