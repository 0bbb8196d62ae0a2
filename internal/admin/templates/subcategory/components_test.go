package subcategory

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestTableRendersParentFilter(t *testing.T) {
	t.Parallel()

	doc := render(t, Table())
	require.Equal(t, 1, doc.Find(`[data-component="SubCategoryTable"]`).Length())
	require.Equal(t, len(subcategories.Categories)+1, doc.Find(`#`+FiltersID+` select[name="category"] option`).Length())
}

func TestFragmentRowActions(t *testing.T) {
	t.Parallel()

	now := time.Now()
	seed := subcategories.Seed(now)
	doc := render(t, Fragment(NewTableData(partials.FragmentState{BasePath: "/", Now: now},
		subcategories.ListResult{Subcategories: seed})))

	require.Equal(t, len(seed), doc.Find("tr[data-row]").Length())

	cpu := doc.Find(`tr[data-subcategory-id="subcat-cpu"]`)
	require.Equal(t, "bo-vi-xu-ly", cpu.Find("td.font-mono").Text())
	require.Equal(t, 1, cpu.Find(`button[hx-post="/subcategories/subcat-cpu/delete"][disabled]`).Length())
	require.Equal(t, "Ẩn", cpu.Find(`button[hx-post="/subcategories/subcat-cpu/toggle"]`).Text())

	oled := doc.Find(`tr[data-subcategory-id="subcat-monitor-oled"]`)
	require.Equal(t, "Hiển thị", oled.Find(`button[hx-post$="/toggle"]`).Text())
	require.Zero(t, oled.Find(`button[disabled]`).Length())
}
