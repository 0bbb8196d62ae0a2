package warranty

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
	adminwarranty "github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestTableRendersLoadingContainer(t *testing.T) {
	t.Parallel()

	doc := render(t, Table())

	container := doc.Find(`[data-component="WarrantyTable"]`)
	require.Equal(t, 1, container.Length())
	body := container.Find("#" + BodyID)
	require.Equal(t, "/warranty/table", body.AttrOr("hx-get", ""))
	require.Equal(t, "load", body.AttrOr("hx-trigger", ""))
	require.Equal(t, 1, body.Find(`[data-table-message][data-tone="loading"]`).Length())
	require.Equal(t, 5, doc.Find(`#`+FiltersID+` select[name="status"] option`).Length())
}

func TestFragmentRendersRowsAndActions(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := adminwarranty.NewService(storage.NewMemory(adminwarranty.Seed(now)...), adminwarranty.WithClock(func() time.Time { return now }))
	result, err := svc.List(context.Background(), adminwarranty.Query{Page: pagination.Params{}})
	require.NoError(t, err)

	data := NewTableData(partials.FragmentState{BasePath: "/", CSRF: "tok", Now: now}, result)
	doc := render(t, Fragment(data))

	require.Equal(t, len(result.Records), doc.Find("tr[data-row]").Length())

	processing := doc.Find(`tr[data-warranty-id="warranty-002"]`)
	require.Equal(t, 1, processing.Find("[data-open-claim]").Length())
	require.Equal(t, "/warranty/warranty-002/claims/claim-001/resolve",
		processing.Find("[data-open-claim] form").AttrOr("hx-post", ""))
	require.Zero(t, processing.Find(`input[name="issue"]`).Length(), "processing records take no new claim")

	active := doc.Find(`tr[data-warranty-id="warranty-001"]`)
	require.Equal(t, "/warranty/warranty-001/claims", active.Find(`input[name="issue"]`).Closest("form").AttrOr("hx-post", ""))
	require.Contains(t, active.Text(), "Còn bảo hành")

	void := doc.Find(`tr[data-warranty-id="warranty-004"]`)
	require.Zero(t, void.Find("form").Length())

	require.Equal(t, "tok", doc.Find(`#warranty-register input[name="_csrf"]`).AttrOr("value", ""))
	require.Equal(t, 1, doc.Find("[data-pagination]").Length())
}

func TestFragmentKeepsSubmittedValuesOnError(t *testing.T) {
	t.Parallel()

	state := partials.FragmentState{
		BasePath:   "/admin",
		FormErrors: map[string]string{"customerPhone": "Số điện thoại phải gồm 9 đến 11 chữ số."},
		Form:       url.Values{"serial": {"SN-1"}, "customerPhone": {"12"}},
	}
	doc := render(t, Fragment(NewTableData(state, adminwarranty.ListResult{})))

	require.Equal(t, 1, doc.Find("details[open]").Length())
	require.Equal(t, "SN-1", doc.Find(`input[name="serial"]`).AttrOr("value", ""))
	require.Equal(t, "/admin/warranty", doc.Find("#warranty-register").AttrOr("hx-post", ""))
	require.Contains(t, doc.Find(`[data-form-errors] li[data-field="customerPhone"]`).Text(), "Số điện thoại")
	require.Contains(t, doc.Find("[data-table-message]").Text(), "Chưa có phiếu bảo hành")
}
