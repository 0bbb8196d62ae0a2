// Package textutil holds Vietnamese-aware text helpers shared by the domain services and templates.
package textutil

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	collapseSpaces = regexp.MustCompile(`\s{2,}`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9]+`)

	dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

	printerMu sync.Mutex
	printer   = message.NewPrinter(language.Vietnamese)
)

// Fold lowercases s and strips Vietnamese diacritics so "Bảo Hành" compares equal to "bao hanh".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, dStroke.Replace(s))
	if err != nil {
		folded = s
	}
	return collapseSpaces.ReplaceAllString(strings.TrimSpace(strings.ToLower(folded)), " ")
}

// Contains reports whether term occurs in any of the haystack values, ignoring case and diacritics.
// An empty term matches everything.
func Contains(term string, haystack ...string) bool {
	needle := Fold(term)
	if needle == "" {
		return true
	}
	for _, value := range haystack {
		if strings.Contains(Fold(value), needle) {
			return true
		}
	}
	return false
}

// Slugify converts a Vietnamese display name into a URL slug ("Card Màn Hình" -> "card-man-hinh").
func Slugify(s string) string {
	slug := slugInvalid.ReplaceAllString(Fold(s), "-")
	return strings.Trim(slug, "-")
}

// SortStrings orders values using Vietnamese collation, case-insensitively.
func SortStrings(values []string) {
	c := collate.New(language.Vietnamese, collate.IgnoreCase)
	c.SortStrings(values)
}

// SortBy orders items by the Vietnamese collation of the key returned for each item.
// The sort is stable.
func SortBy[T any](items []T, key func(T) string) {
	c := collate.New(language.Vietnamese, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}

// VND formats an amount of Vietnamese dong with locale grouping, e.g. "1.500.000 ₫".
func VND(amount int64) string {
	printerMu.Lock()
	defer printerMu.Unlock()
	return printer.Sprintf("%d ₫", amount)
}

// Number formats an integer with Vietnamese digit grouping.
func Number(n int64) string {
	printerMu.Lock()
	defer printerMu.Unlock()
	return printer.Sprintf("%d", n)
}

var phonePattern = regexp.MustCompile(`^\d{9,11}$`)

// NormalizePhone strips separators and rewrites a +84 prefix to the domestic 0 prefix. Only
// digits, spaces, '-', '.' and a leading '+' are accepted; any other character leaves the
// trimmed input as it was, which ValidPhone rejects.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
		default:
			return raw
		}
	}
	phone := b.String()
	if strings.HasPrefix(phone, "+84") {
		phone = "0" + strings.TrimPrefix(phone, "+84")
	}
	return phone
}

// ValidPhone reports whether a normalized phone number has 9 to 11 digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
