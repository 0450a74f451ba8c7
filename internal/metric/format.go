package metric

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Missing is what a table cell shows for a null metric.
const Missing = "-"

// NotApplicable is what a profile section shows for a null metric.
const NotApplicable = "N/A"

// Currency formats v with a B/M/K suffix, e.g. $1.2B.
func Currency(v float64, decimals int) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%s$%.*fB", sign, decimals, abs/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s$%.*fM", sign, decimals, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s$%.*fK", sign, decimals, abs/1e3)
	}
	return fmt.Sprintf("%s$%.*f", sign, decimals, abs)
}

// Percentage formats a plain-percent value (12 = 12%). Negatives are shown in
// parentheses, accounting style.
func Percentage(v float64, decimals int) string {
	if v < 0 {
		return fmt.Sprintf("(%.*f%%)", decimals, math.Abs(v))
	}
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// Ratio formats a multiple, e.g. 7.1x.
func Ratio(v float64, decimals int) string {
	return fmt.Sprintf("%.*fx", decimals, v)
}

// Number formats v with en-US digit grouping and a fixed number of decimals.
func Number(v float64, decimals int) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprint(number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Display renders v in the metric's format using the dashboard's default
// precision.
func (d Definition) Display(v float64) string {
	if d.Scale != 0 {
		v *= d.Scale
	}
	switch d.Format {
	case FormatCurrency:
		return Currency(v, 1)
	case FormatPercentage:
		return Percentage(v, 1)
	case FormatRatio:
		return Ratio(v, 1)
	case FormatNumber:
		return Number(v, 0)
	}
	return fmt.Sprint(v)
}
