package helpers

import (
	"unicode"
	"unicode/utf8"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/textutil"
)

// HighlightSegment represents a split section of text with optional emphasis.
type HighlightSegment struct {
	Text  string
	Match bool
}

// HighlightSegments splits text into segments, marking every occurrence of term. Matching ignores
// case and Vietnamese diacritics the same way the list filters do, so "nguon" marks "Nguồn".
func HighlightSegments(text, term string) []HighlightSegment {
	if text == "" {
		return nil
	}
	needle := []rune(textutil.Fold(term))
	if len(needle) == 0 {
		return []HighlightSegment{{Text: text}}
	}

	source := []rune(text)
	folded := make([]rune, len(source))
	for i, r := range source {
		folded[i] = foldRune(r)
	}

	var segments []HighlightSegment
	start := 0
	for i := 0; i+len(needle) <= len(folded); {
		if !runesEqual(folded[i:i+len(needle)], needle) {
			i++
			continue
		}
		if i > start {
			segments = append(segments, HighlightSegment{Text: string(source[start:i])})
		}
		end := i + len(needle)
		segments = append(segments, HighlightSegment{Text: string(source[i:end]), Match: true})
		start, i = end, end
	}
	if start < len(source) {
		segments = append(segments, HighlightSegment{Text: string(source[start:])})
	}
	return segments
}

// Highlight writes text escaped, wrapping matches of term in <mark>.
func (w *Writer) Highlight(text, term string) {
	for _, seg := range HighlightSegments(text, term) {
		if !seg.Match {
			w.Text(seg.Text)
			continue
		}
		w.Raw(`<mark class="rounded bg-amber-100 px-0.5 text-inherit">`)
		w.Text(seg.Text)
		w.Raw(`</mark>`)
	}
}

func foldRune(r rune) rune {
	s := textutil.Fold(string(r))
	if utf8.RuneCountInString(s) == 1 {
		f, _ := utf8.DecodeRuneInString(s)
		return f
	}
	return unicode.ToLower(r)
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
