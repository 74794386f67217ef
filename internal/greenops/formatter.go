package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators so that
// output is identical whatever the host locale.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with the given number of decimals and thousand
// separators. FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}

	sign := ""
	if f < 0 {
		sign = "-"
	}
	digits := strconv.FormatFloat(math.Abs(f), 'f', precision, 64)
	intPart, frac, _ := strings.Cut(digits, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + digits
	}
	return sign + FormatNumber(n) + "." + frac
}

// FormatLarge abbreviates values from one million upwards
// ("~1.5 million", "~2.0 billion"). Smaller values are formatted as integers.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// formatEquivalencyValue picks the display precision for an equivalent.
func formatEquivalencyValue(v float64) string {
	switch {
	case v >= LargeNumberThreshold:
		return FormatLarge(v)
	case v < SmallValueThreshold:
		return FormatFloat(v, 1)
	default:
		return FormatNumber(int64(math.Round(v)))
	}
}
