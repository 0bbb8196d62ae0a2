package createorder

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
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

func TestTableRendersContainer(t *testing.T) {
	t.Parallel()

	doc := render(t, Table())
	container := doc.Find(`[data-component="CreateOrderTable"]`)
	require.Equal(t, 1, container.Length())
	require.Equal(t, "/orders/create/table", container.Find("#"+BodyID).AttrOr("hx-get", ""))
	require.Equal(t, "#"+FiltersID, container.Find("#"+BodyID).AttrOr("hx-include", ""))
}

func TestFragmentActionsFollowLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Now()
	seed := orders.Seed(now)
	doc := render(t, Fragment(NewTableData(partials.FragmentState{BasePath: "/", CSRF: "tok", Now: now},
		orders.ListResult{Orders: seed})))

	require.Equal(t, len(seed), doc.Find("tr[data-row]").Length())

	draft := doc.Find(`tr[data-order-id="order-001"]`)
	require.Equal(t, 1, draft.Find(`button[hx-post="/orders/order-001/confirm"]`).Length())
	require.Equal(t, 1, draft.Find(`button[hx-post="/orders/order-001/cancel"]`).Length())
	require.Contains(t, draft.Text(), "và 1 sản phẩm khác")

	packed := doc.Find(`tr[data-order-id="order-004"]`)
	require.Zero(t, packed.Find("button").Length(), "packed orders can no longer be cancelled")

	require.Equal(t, 3*ItemLines+4+1, doc.Find("#order-create input, #order-create textarea").Length(),
		"customer fields, item lines, note and the csrf token")
}

func TestFragmentShowsItemErrors(t *testing.T) {
	t.Parallel()

	state := partials.FragmentState{
		BasePath:   "/",
		FormErrors: map[string]string{"items.0.quantity": "Số lượng phải lớn hơn 0."},
		Form:       url.Values{"customerName": {"Khách lẻ"}, "items.0.name": {"RAM"}},
	}
	doc := render(t, Fragment(NewTableData(state, orders.ListResult{})))

	require.Equal(t, "Khách lẻ", doc.Find(`input[name="customerName"]`).AttrOr("value", ""))
	require.Equal(t, "true", doc.Find(`input[name="items.0.quantity"]`).AttrOr("aria-invalid", ""))
	require.Contains(t, doc.Find(`[data-form-errors]`).Text(), "Số lượng 1")
}
