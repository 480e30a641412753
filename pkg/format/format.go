// Package format renders currency and date values for reports, matching
// the dashboard's Indonesian locale ("Rp 15.000", "30 Jan 2024").
package format

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.Indonesian)
	// Cash kind drops the fractional digits nobody uses for rupiah.
	rupiah = currency.Symbol.Kind(currency.Cash)
)

// Currency formats an amount as IDR.
func Currency(amount float64) string {
	return printer.Sprint(rupiah(currency.IDR.Amount(amount)))
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate tries the date layouts the sheet produces.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders a sheet date cell as "02 Jan 2006", or "-" when the value
// does not parse.
func Date(value string) string {
	if t, ok := ParseDate(value); ok {
		return t.Format("02 Jan 2006")
	}
	return "-"
}
