package statistics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders v as whole US dollars with thousands separators,
// e.g. 123456 -> "$123,456" and -1234.5 -> "-$1,235". Halves round away
// from zero.
func FormatCurrency(v float64) string {
	switch {
	case math.IsNaN(v):
		return "$NaN"
	case math.IsInf(v, 1):
		return "$∞"
	case math.IsInf(v, -1):
		return "-$∞"
	}

	rounded := math.Round(v)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + "$" + usPrinter.Sprintf("%d", int64(rounded))
}

// FormatPercentage renders a percentage value (12.34 meaning 12.34%) with
// one decimal place, e.g. "12.3%".
func FormatPercentage(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN%"
	case math.IsInf(v, 1):
		return "∞%"
	case math.IsInf(v, -1):
		return "-∞%"
	}
	return usPrinter.Sprintf("%.1f%%", v)
}
