// Package uiutil holds the display formatting shared by templates and handlers.
// Numbers and dates follow Vietnamese conventions.
package uiutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Layouts for Vietnamese dates, day first without zero padding.
const (
	DateLayout     = "2/1/2006"
	DateTimeLayout = "15:04 2/1/2006"
)

// FormatDate renders t as a Vietnamese short date, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// FormatDateTime renders t with hour and minute, or "" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateTimeLayout)
}

// FormatAmount renders v rounded to a whole number with "." as the thousands separator.
func FormatAmount(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b strings.Builder
		b.Grow(len(s) + (len(s)-1)/3)
		head := len(s) % 3
		if head == 0 {
			head = 3
		}
		b.WriteString(s[:head])
		for i := head; i < len(s); i += 3 {
			b.WriteByte('.')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatVND renders an amount in dong, e.g. "500.000 ₫".
func FormatVND(v float64) string {
	return FormatAmount(v) + " ₫"
}

// FormatScore renders a score without trailing zeros, or "-" when ungraded.
func FormatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
