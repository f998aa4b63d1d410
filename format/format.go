// Package format renders dates and prices the way the Dutch site displays them.
package format

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Zone is the display time zone of the site.
var Zone = loadZone("Europe/Amsterdam")

func loadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

var months = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

var shortMonths = [...]string{
	"jan", "feb", "mrt", "apr", "mei", "jun",
	"jul", "aug", "sep", "okt", "nov", "dec",
}

var symbols = map[string]string{
	"EUR": "€",
	"USD": "US$",
	"GBP": "£",
	"CHF": "CHF",
}

var printer = message.NewPrinter(language.Dutch)

// Date formats as "15 augustus 2025".
func Date(t time.Time) string {
	t = t.In(Zone)
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// DateShort formats as "15 aug 2025".
func DateShort(t time.Time) string {
	t = t.In(Zone)
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// Time formats as "14:00".
func Time(t time.Time) string {
	return t.In(Zone).Format("15:04")
}

func DateTime(t time.Time) string {
	return Date(t) + " om " + Time(t)
}

// DateRange collapses same day events to "15 augustus 2025 van 09:00 tot 17:00".
func DateRange(startsAt, endsAt time.Time) string {
	startDate, endDate := Date(startsAt), Date(endsAt)
	if startDate == endDate {
		return fmt.Sprintf("%s van %s tot %s", startDate, Time(startsAt), Time(endsAt))
	}
	return fmt.Sprintf("%s %s - %s %s", startDate, Time(startsAt), endDate, Time(endsAt))
}

// Price renders "Gratis" for free events and a Dutch currency amount otherwise,
// e.g. "€ 1.299,00". Unknown currency codes are shown as the code itself.
func Price(amount float64, code string) string {
	if amount == 0 {
		return "Gratis"
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "EUR"
	}
	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		if s, ok := symbols[unit.String()]; ok {
			symbol = s
		}
	}
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	return sign + symbol + " " + printer.Sprintf("%v", number.Decimal(amount, number.Scale(2)))
}
