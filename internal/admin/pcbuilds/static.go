package pcbuilds

import (
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
)

// NewStaticService returns a store-backed service over an in-memory repository seeded with
// sample builds.
func NewStaticService() *StoreService {
	return NewService(storage.NewMemory(Seed(time.Now())...))
}

// Seed returns deterministic sample builds relative to now.
func Seed(now time.Time) []Build {
	now = now.UTC()
	published := now.Add(-72 * time.Hour)

	builds := []Build{
		{
			ID:   "build-001",
			Name: "Gaming Esport 15 triệu",
			Description: "Cấu hình chơi tốt **Valorant**, **CS2** và **LMHT** ở 1080p.\n\n" +
				"- Nâng cấp GPU dễ dàng\n- Nguồn dư cho card tầm trung",
			Components: []Component{
				{Slot: SlotCPU, ProductName: "Intel Core i5-12400F", Price: 2890000, Quantity: 1},
				{Slot: SlotMainboard, ProductName: "ASUS PRIME B760M-K D4", Price: 2290000, Quantity: 1},
				{Slot: SlotRAM, ProductName: "Kingston Fury Beast 8GB DDR4 3200", Price: 450000, Quantity: 2},
				{Slot: SlotGPU, ProductName: "GIGABYTE RTX 3050 Windforce OC 6GB", Price: 4790000, Quantity: 1},
				{Slot: SlotStorage, ProductName: "SSD Kingston NV2 500GB NVMe", Price: 990000, Quantity: 1},
				{Slot: SlotPSU, ProductName: "Cooler Master MWE 550 Bronze V2", Price: 1190000, Quantity: 1},
				{Slot: SlotCase, ProductName: "Xigmatek Gaming X 3FX", Price: 690000, Quantity: 1},
			},
			Status:      StatusPublished,
			CreatedAt:   now.Add(-96 * time.Hour),
			UpdatedAt:   published,
			PublishedAt: &published,
		},
		{
			ID:          "build-002",
			Name:        "Đồ họa Render 35 triệu",
			Description: "Dành cho dựng phim và render 3D với *Blender*, *Premiere Pro*.",
			Components: []Component{
				{Slot: SlotCPU, ProductName: "AMD Ryzen 7 7700X", Price: 8190000, Quantity: 1},
				{Slot: SlotMainboard, ProductName: "MSI PRO B650M-A WiFi", Price: 4390000, Quantity: 1},
				{Slot: SlotRAM, ProductName: "Corsair Vengeance 16GB DDR5 5600", Price: 1590000, Quantity: 2},
				{Slot: SlotGPU, ProductName: "ASUS Dual RTX 4060 Ti 8GB", Price: 10990000, Quantity: 1},
				{Slot: SlotCooler, ProductName: "DeepCool AK620", Price: 1390000, Quantity: 1},
			},
			Status:    StatusDraft,
			CreatedAt: now.Add(-30 * time.Hour),
			UpdatedAt: now.Add(-6 * time.Hour),
		},
		{
			ID:          "build-003",
			Name:        "Văn phòng cơ bản",
			Description: "Máy văn phòng tiết kiệm điện, dùng đồ họa tích hợp.",
			Components: []Component{
				{Slot: SlotCPU, ProductName: "Intel Core i3-12100", Price: 2490000, Quantity: 1},
			},
			Status:    StatusDraft,
			CreatedAt: now.Add(-3 * time.Hour),
			UpdatedAt: now.Add(-3 * time.Hour),
		},
	}
	for i := range builds {
		sortComponents(builds[i].Components)
		builds[i].Total = total(builds[i].Components)
	}
	return builds
}
