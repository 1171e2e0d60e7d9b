package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders dates, numbers and amounts for display.
// It is safe for concurrent use.
type Formatter struct {
	printer *message.Printer
	loc     *time.Location
}

// New returns a formatter for tag in loc. A nil loc means time.Local.
func New(tag language.Tag, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{printer: message.NewPrinter(tag), loc: loc}
}

// German returns the formatter used throughout the application.
func German(loc *time.Location) *Formatter {
	return New(language.German, loc)
}

// Date renders t as "1.5.2024".
func (f *Formatter) Date(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}

// DateTime renders t as "1.5.2024, 08:05:00".
func (f *Formatter) DateTime(t time.Time) string {
	return f.Date(t) + ", " + t.In(f.loc).Format("15:04:05")
}

// Number renders v with grouping and up to three fraction digits: "1.234,5".
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Integer renders n with grouping: "12.345".
func (f *Formatter) Integer(n int64) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Currency renders an EUR amount: "1.234,50 €".
func (f *Formatter) Currency(amount float64) string {
	return f.printer.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + " €"
}
