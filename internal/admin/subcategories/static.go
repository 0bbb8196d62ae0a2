package subcategories

import (
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/textutil"
)

// NewStaticService returns a store-backed service over an in-memory repository seeded with
// sample subcategories.
func NewStaticService() *StoreService {
	return NewService(storage.NewMemory(Seed(time.Now())...))
}

// Seed returns deterministic sample subcategories relative to now.
func Seed(now time.Time) []Subcategory {
	now = now.UTC()
	type sample struct {
		id, parent, name, description string
		products                      int
		active                        bool
	}
	samples := []sample{
		{"subcat-cpu", "components", "Bộ vi xử lý", "CPU Intel và AMD", 42, true},
		{"subcat-mainboard", "components", "Bo mạch chủ", "Mainboard Intel, AMD các chipset", 35, true},
		{"subcat-ram", "components", "Bộ nhớ RAM", "RAM DDR4, DDR5 cho máy bàn", 28, true},
		{"subcat-vga", "components", "Card màn hình", "Card đồ họa NVIDIA và AMD", 31, true},
		{"subcat-ssd", "components", "Ổ cứng SSD", "SSD SATA và NVMe", 24, true},
		{"subcat-psu", "components", "Nguồn máy tính", "PSU chuẩn 80 Plus", 19, true},
		{"subcat-case", "components", "Vỏ máy tính", "Case ATX, mATX, ITX", 22, true},
		{"subcat-keyboard", "peripherals", "Bàn phím cơ", "Bàn phím cơ có dây và không dây", 16, true},
		{"subcat-mouse", "peripherals", "Chuột gaming", "", 12, true},
		{"subcat-monitor-oled", "monitors", "Màn hình OLED", "Tạm ẩn chờ hàng về", 0, false},
	}
	out := make([]Subcategory, 0, len(samples))
	for i, s := range samples {
		created := now.Add(-time.Duration(len(samples)-i) * 24 * time.Hour)
		out = append(out, Subcategory{
			ID:           s.id,
			Parent:       s.parent,
			Name:         s.name,
			Slug:         textutil.Slugify(s.name),
			Description:  s.description,
			ProductCount: s.products,
			Active:       s.active,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}
	return out
}
