package warranty

import (
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

// NewStaticService returns a store-backed service over an in-memory repository seeded with
// sample warranty records.
func NewStaticService() *StoreService {
	return NewService(storage.NewMemory(Seed(time.Now())...))
}

// Seed returns deterministic sample records relative to now. Record BH000003 is past its end
// date but still stored as active so the expiry sweep has work to do.
func Seed(now time.Time) []Record {
	now = now.UTC()
	day := 24 * time.Hour
	record := func(id, code, serial, product string, customer Customer, startAgo time.Duration, months int) Record {
		start := startOfDay(now.Add(-startAgo))
		created := now.Add(-startAgo)
		return Record{
			ID:          id,
			Code:        code,
			Serial:      serial,
			ProductName: product,
			Customer:    customer,
			StartDate:   start,
			Months:      months,
			EndDate:     EndDate(start, months),
			Status:      StatusActive,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	active := record("warranty-001", "BH000001", "VGA4060-A17X", "Card màn hình ASUS Dual RTX 4060 8GB",
		Customer{Name: "Hoàng Văn Em", Phone: "0977888999"}, 5*day, 36)

	processing := record("warranty-002", "BH000002", "S980-1T-7781", "SSD Samsung 980 1TB NVMe",
		Customer{Name: "Lê Hoàng Minh", Phone: "0987654321"}, 180*day, 60)
	processing.Status = StatusProcessing
	processing.Claims = []Claim{{
		ID:       "claim-001",
		Issue:    "Ổ không nhận trong BIOS sau khi cập nhật firmware",
		OpenedAt: now.Add(-2 * day),
	}}

	lapsed := record("warranty-003", "BH000003", "LGM27-0456-XK", "Màn hình LG 27GP850 27 inch",
		Customer{Name: "Phạm Quốc Đạt", Phone: "0933222111"}, 400*day, 12)

	voided := record("warranty-004", "BH000004", "KF8G-3200-5521", "RAM Kingston Fury Beast 8GB DDR4",
		Customer{Name: "Võ Thị Hạnh", Phone: "0909111333"}, 90*day, 36)
	voided.Status = StatusVoid
	voided.VoidReason = "Tem bảo hành bị rách"

	resolved := record("warranty-005", "BH000005", "CM650-1907-021", "Nguồn Cooler Master MWE 650W",
		Customer{Name: "Trần Thị Bích", Phone: "0912345678"}, 200*day, 24)
	closed := now.Add(-30 * day)
	resolved.Claims = []Claim{{
		ID:         "claim-002",
		Issue:      "Quạt nguồn kêu to",
		Resolution: "Đã thay quạt mới",
		OpenedAt:   now.Add(-35 * day),
		ClosedAt:   &closed,
	}}

	return []Record{active, processing, lapsed, voided, resolved}
}
