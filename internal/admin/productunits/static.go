package productunits

import (
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

// NewStaticService returns a store-backed service over an in-memory repository seeded with
// sample units.
func NewStaticService() *StoreService {
	return NewService(storage.NewMemory(Seed(time.Now())...))
}

// Seed returns deterministic sample units relative to now. Subcategory ids match the
// subcategories seed.
func Seed(now time.Time) []Unit {
	now = now.UTC()
	day := 24 * time.Hour
	soldAt := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	return []Unit{
		{
			ID: "unit-001", Serial: "SN-I5124-0001", SKU: "CPU-I5-12400F", ProductName: "CPU Intel Core i5-12400F",
			SubcategoryID: "subcat-cpu", Status: StatusInStock, WarrantyMonths: 36,
			ImportedAt: now.Add(-10 * day), UpdatedAt: now.Add(-10 * day),
		},
		{
			ID: "unit-002", Serial: "SN-I5124-0002", SKU: "CPU-I5-12400F", ProductName: "CPU Intel Core i5-12400F",
			SubcategoryID: "subcat-cpu", Status: StatusReserved, OrderNumber: "DH000002", WarrantyMonths: 36,
			ImportedAt: now.Add(-10 * day), UpdatedAt: now.Add(-1 * day),
		},
		{
			ID: "unit-003", Serial: "VGA4060-A17X", SKU: "VGA-RTX4060", ProductName: "Card màn hình ASUS Dual RTX 4060 8GB",
			SubcategoryID: "subcat-vga", Status: StatusSold, OrderNumber: "DH000005", WarrantyMonths: 36,
			ImportedAt: now.Add(-40 * day), SoldAt: soldAt(5 * day), UpdatedAt: now.Add(-5 * day),
		},
		{
			ID: "unit-004", Serial: "S980-1T-7781", SKU: "SSD-SS980-1T", ProductName: "SSD Samsung 980 1TB NVMe",
			SubcategoryID: "subcat-ssd", Status: StatusInWarranty, OrderNumber: "DH000003", WarrantyMonths: 60,
			ImportedAt: now.Add(-200 * day), SoldAt: soldAt(180 * day), UpdatedAt: now.Add(-2 * day),
		},
		{
			ID: "unit-005", Serial: "KF8G-3200-5521", SKU: "RAM-DDR4-8G", ProductName: "RAM Kingston Fury Beast 8GB DDR4",
			SubcategoryID: "subcat-ram", Status: StatusDefective, WarrantyMonths: 36,
			ImportedAt: now.Add(-60 * day), UpdatedAt: now.Add(-20 * day),
		},
		{
			ID: "unit-006", Serial: "CM650-2209-114", SKU: "PSU-CM650", ProductName: "Nguồn Cooler Master MWE 650W",
			SubcategoryID: "subcat-psu", Status: StatusInStock, WarrantyMonths: 24,
			ImportedAt: now.Add(-3 * day), UpdatedAt: now.Add(-3 * day),
		},
	}
}
