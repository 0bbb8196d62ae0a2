package helpers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighlightSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		term string
		want []HighlightSegment
	}{
		{
			name: "empty term keeps text whole",
			text: "Nguồn Cooler Master",
			want: []HighlightSegment{{Text: "Nguồn Cooler Master"}},
		},
		{
			name: "ignores diacritics and case",
			text: "Nguồn Cooler Master",
			term: "NGUON",
			want: []HighlightSegment{{Text: "Nguồn", Match: true}, {Text: " Cooler Master"}},
		},
		{
			name: "marks every occurrence",
			text: "SN-01 / sn-02",
			term: "sn",
			want: []HighlightSegment{
				{Text: "SN", Match: true},
				{Text: "-01 / "},
				{Text: "sn", Match: true},
				{Text: "-02"},
			},
		},
		{
			name: "d stroke folds to d",
			text: "Đỗ Minh Khoa",
			term: "do minh",
			want: []HighlightSegment{{Text: "Đỗ Minh", Match: true}, {Text: " Khoa"}},
		},
		{
			name: "no match",
			text: "RAM DDR5",
			term: "ssd",
			want: []HighlightSegment{{Text: "RAM DDR5"}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, HighlightSegments(tc.text, tc.term))
		})
	}

	require.Nil(t, HighlightSegments("", "x"))
}

func TestWriterHighlightEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Highlight("<b>Bảo hành</b>", "bao")
	require.NoError(t, w.Err())
	require.Equal(t, `&lt;b&gt;<mark class="rounded bg-amber-100 px-0.5 text-inherit">Bảo</mark> hành&lt;/b&gt;`, buf.String())
}
