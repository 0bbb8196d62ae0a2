package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/textutil"
)

// DisplayZone is the time zone staff read timestamps in.
var DisplayZone = loadZone("Asia/Ho_Chi_Minh", 7*60*60)

func loadZone(name string, offset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("ICT", offset)
	}
	return loc
}

// Currency formats whole VND amounts, e.g. "1.500.000 ₫".
func Currency(amount int64) string {
	return textutil.VND(amount)
}

// Number formats integers with Vietnamese digit grouping.
func Number(n int) string {
	return textutil.Number(int64(n))
}

// Date formats the timestamp in the provided layout (defaults to 02/01/2006 15:04).
func Date(ts time.Time, layout string) string {
	if ts.IsZero() {
		return "—"
	}
	if layout == "" {
		layout = "02/01/2006 15:04"
	}
	return ts.In(DisplayZone).Format(layout)
}

// Day formats the calendar date only.
func Day(ts time.Time) string {
	return Date(ts, "02/01/2006")
}

// Relative returns a coarse Vietnamese "time ago" string relative to now.
func Relative(ts, now time.Time) string {
	diff := now.Sub(ts)
	switch {
	case diff < time.Minute:
		return "vừa xong"
	case diff < time.Hour:
		return fmt.Sprintf("%d phút trước", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d giờ trước", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d ngày trước", int(diff.Hours()/24))
	default:
		return Day(ts)
	}
}

// NavClass returns sidebar link classes.
func NavClass(active bool) string {
	if active {
		return "flex items-center gap-2 rounded-md bg-slate-900 px-3 py-2 text-sm font-medium text-white shadow-sm"
	}
	return "flex items-center gap-2 rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:bg-slate-100 hover:text-slate-900"
}

// BadgeClass maps semantic tones to utility classes.
func BadgeClass(tone string) string {
	switch tone {
	case "success":
		return "inline-flex items-center rounded-full bg-emerald-100 px-2 py-1 text-xs font-medium text-emerald-700"
	case "warning":
		return "inline-flex items-center rounded-full bg-amber-100 px-2 py-1 text-xs font-medium text-amber-700"
	case "danger":
		return "inline-flex items-center rounded-full bg-rose-100 px-2 py-1 text-xs font-medium text-rose-700"
	case "info":
		return "inline-flex items-center rounded-full bg-sky-100 px-2 py-1 text-xs font-medium text-sky-700"
	default:
		return "inline-flex items-center rounded-full bg-slate-100 px-2 py-1 text-xs font-medium text-slate-700"
	}
}

// ButtonClass returns classes for primary, secondary and danger buttons.
func ButtonClass(variant string) string {
	base := "inline-flex items-center justify-center gap-1 rounded-md px-3 py-1.5 text-sm font-medium disabled:opacity-50"
	switch variant {
	case "primary":
		return base + " bg-slate-900 text-white hover:bg-slate-700"
	case "danger":
		return base + " border border-rose-200 text-rose-700 hover:bg-rose-50"
	default:
		return base + " border border-slate-300 text-slate-700 hover:bg-slate-50"
	}
}

// InputClass is shared by text inputs and selects.
const InputClass = "block w-full rounded-md border border-slate-300 px-3 py-1.5 text-sm focus:border-slate-500 focus:outline-none"

// Classes joins the non-empty class names.
func Classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
