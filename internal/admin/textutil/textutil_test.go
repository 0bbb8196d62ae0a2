package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	t.Parallel()

	require.Equal(t, "quan ly bao hanh", Fold("  Quản Lý   Bảo Hành "))
	require.Equal(t, "dien thoai di dong", Fold("Điện thoại di động"))
	require.Equal(t, "", Fold("   "))
}

func TestContains(t *testing.T) {
	t.Parallel()

	require.True(t, Contains("bao hanh", "Phiếu Bảo Hành"))
	require.True(t, Contains("BẢO", "phiếu bảo hành"))
	require.True(t, Contains("", "anything"))
	require.True(t, Contains("ssd", "RAM", "SSD Samsung 980"))
	require.False(t, Contains("gpu", "CPU", "RAM"))
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Card Màn Hình":        "card-man-hinh",
		"Ổ cứng SSD / NVMe":    "o-cung-ssd-nvme",
		"  Đế tản nhiệt  ":     "de-tan-nhiet",
		"Bàn phím cơ (Gaming)": "ban-phim-co-gaming",
	}
	for input, want := range cases {
		require.Equal(t, want, Slugify(input), input)
	}
}

func TestSortBy(t *testing.T) {
	t.Parallel()

	type item struct{ name string }
	items := []item{{"Ổ cứng"}, {"Bàn phím"}, {"Chuột"}, {"Âm thanh"}, {"an ninh"}}
	SortBy(items, func(i item) string { return i.name })

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.name)
	}
	require.Equal(t, []string{"an ninh", "Âm thanh", "Bàn phím", "Chuột", "Ổ cứng"}, got)
}

func TestVND(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1.500.000 ₫", VND(1500000))
	require.Equal(t, "0 ₫", VND(0))
	require.Equal(t, "12.345", Number(12345))
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"+84 903 111 222":  "0903111222",
		"0912.345.678":     "0912345678",
		" 028-3822-1234 ":  "02838221234",
		"12+34":            "12+34",
		"09x03-abc-111222": "09x03-abc-111222",
		" 0903/111/222 ":   "0903/111/222",
	}
	for in, want := range cases {
		got := NormalizePhone(in)
		require.Equal(t, want, got, in)
	}
	require.True(t, ValidPhone("0903111222"))
	require.False(t, ValidPhone("12345"))
	for _, bad := range []string{"09x03-abc-111222", "12+34567890", "0903111222 ext"} {
		require.False(t, ValidPhone(NormalizePhone(bad)), bad)
	}
}
