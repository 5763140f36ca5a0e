package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const nbsp = "\u00a0"

var polishMonthsGenitive = [...]string{
	"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

// FormatPLN formats an amount the way pl-PL renders PLN: comma decimals, a
// non-breaking space between thousand groups once the integer part has five
// or more digits, and a " zł" suffix. NaN and infinities render as zero.
func FormatPLN(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	negative := amount < 0
	s := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "0" && frac == "00" {
		negative = false
	}

	if len(intPart) >= 5 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteString(nbsp)
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + "," + frac + nbsp + "zł"
	if negative {
		return "-" + out
	}
	return out
}

// FormatRentalPeriod renders "1 dzień" or "<N> dni".
func FormatRentalPeriod(days int) string {
	if days == 1 {
		return "1 dzień"
	}
	return fmt.Sprintf("%d dni", days)
}

// FormatLongDate renders e.g. "14 października 2026".
func FormatLongDate(t time.Time, loc *time.Location) string {
	local := t.In(orUTC(loc))
	return fmt.Sprintf("%d %s %d", local.Day(), polishMonthsGenitive[local.Month()-1], local.Year())
}

// FormatShortDate renders e.g. "14.10.2026".
func FormatShortDate(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format("02.01.2006")
}

// FormatDateTime renders e.g. "14.10.2026, 09:05:00".
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format("02.01.2006, 15:04:05")
}

func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
