package orders

import (
	"fmt"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

// NewStaticService returns a store-backed service over an in-memory repository seeded with
// representative orders. Suitable for local development and tests.
func NewStaticService() *StoreService {
	return NewService(storage.NewMemory(Seed(time.Now())...))
}

// Seed returns deterministic sample orders relative to now.
func Seed(now time.Time) []Order {
	now = now.UTC()
	type sample struct {
		customer Customer
		items    []Item
		status   Status
		age      time.Duration
		note     string
	}
	samples := []sample{
		{
			customer: Customer{Name: "Nguyễn Văn An", Phone: "0901234567", Address: "12 Lê Lợi, Quận 1, TP.HCM"},
			items: []Item{
				{SKU: "CPU-I5-13400F", Name: "CPU Intel Core i5-13400F", Quantity: 1, UnitPrice: 4590000},
				{SKU: "RAM-DDR4-16G", Name: "RAM Kingston Fury 16GB DDR4 3200", Quantity: 2, UnitPrice: 890000},
			},
			status: StatusDraft,
			age:    2 * time.Hour,
			note:   "Khách hẹn qua lấy vào chiều mai",
		},
		{
			customer: Customer{Name: "Trần Thị Bích", Phone: "0912345678", Address: "45 Trần Phú, Hà Đông, Hà Nội"},
			items: []Item{
				{SKU: "VGA-RTX4060", Name: "Card màn hình ASUS Dual RTX 4060 8GB", Quantity: 1, UnitPrice: 8490000},
			},
			status: StatusConfirmed,
			age:    20 * time.Hour,
		},
		{
			customer: Customer{Name: "Lê Hoàng Minh", Phone: "0987654321", Address: "8 Nguyễn Huệ, Huế"},
			items: []Item{
				{SKU: "SSD-SS980-1T", Name: "SSD Samsung 980 1TB NVMe", Quantity: 1, UnitPrice: 2190000},
				{SKU: "PSU-CM650", Name: "Nguồn Cooler Master MWE 650W", Quantity: 1, UnitPrice: 1390000},
			},
			status: StatusPreparing,
			age:    30 * time.Hour,
		},
		{
			customer: Customer{Name: "Phạm Quốc Đạt", Phone: "0933222111", Address: "102 Hùng Vương, Đà Nẵng"},
			items: []Item{
				{SKU: "MON-LG27", Name: "Màn hình LG 27GP850 27 inch", Quantity: 1, UnitPrice: 9990000},
			},
			status: StatusPacked,
			age:    48 * time.Hour,
		},
		{
			customer: Customer{Name: "Võ Thị Hạnh", Phone: "0977111222", Address: "3 Lý Thường Kiệt, Cần Thơ"},
			items: []Item{
				{SKU: "KB-AKKO3087", Name: "Bàn phím cơ AKKO 3087", Quantity: 1, UnitPrice: 1290000},
				{SKU: "MS-G102", Name: "Chuột Logitech G102", Quantity: 1, UnitPrice: 399000},
			},
			status: StatusReadyToShip,
			age:    72 * time.Hour,
		},
		{
			customer: Customer{Name: "Đỗ Minh Khoa", Phone: "0966555444", Address: "27 Phan Chu Trinh, Vũng Tàu"},
			items: []Item{
				{SKU: "CASE-NZXT-H5", Name: "Vỏ case NZXT H5 Flow", Quantity: 1, UnitPrice: 2290000},
			},
			status: StatusCancelled,
			age:    96 * time.Hour,
			note:   "Khách đổi ý",
		},
	}

	orders := make([]Order, 0, len(samples))
	for i, s := range samples {
		created := now.Add(-s.age)
		order := Order{
			ID:        fmt.Sprintf("order-%03d", i+1),
			Number:    fmt.Sprintf("%s%06d", numberPrefix, i+1),
			Customer:  s.customer,
			Items:     s.items,
			Status:    s.status,
			Note:      s.note,
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
		}
		for _, item := range s.items {
			order.Total += item.Subtotal()
		}
		orders = append(orders, order)
	}
	return orders
}
