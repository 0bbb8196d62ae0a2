package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderFormatsMarkdown(t *testing.T) {
	t.Parallel()

	out, err := Render("Cấu hình **mạnh**\n\n- RTX 4060\n- Ryzen 7")
	require.NoError(t, err)
	require.Contains(t, out, "<strong>mạnh</strong>")
	require.Contains(t, out, "<li>RTX 4060</li>")
}

func TestRenderStripsUnsafeHTML(t *testing.T) {
	t.Parallel()

	out, err := Render("Xem [chi tiết](javascript:alert(1)) <script>alert('x')</script>\n\n[Trang hãng](https://www.asus.com)")
	require.NoError(t, err)
	require.NotContains(t, out, "<script")
	require.NotContains(t, out, "javascript:")
	require.Contains(t, out, `href="https://www.asus.com"`)
	require.Contains(t, out, `rel="nofollow`)
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	out, err := Render("   \n")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Cấu hình chơi tốt Valorant & CS2", Excerpt("Cấu hình chơi tốt **Valorant** & *CS2*", 0))

	got := Excerpt("Máy văn phòng tiết kiệm điện", 8)
	require.Equal(t, "Máy văn…", got)
	require.True(t, strings.HasSuffix(got, "…"))
}
