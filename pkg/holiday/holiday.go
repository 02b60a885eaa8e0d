// pkg/holiday/holiday.go
package holiday

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownHoliday indicates a holiday name outside the supported registry
var ErrUnknownHoliday = errors.New("unknown holiday")

// observance maps a year to the calendar date the holiday falls on
type observance func(year int) time.Time

var registry = map[string]observance{
	// fixed dates
	"NewYearsDay":       fixed(time.January, 1),
	"Epiphany":          fixed(time.January, 6),
	"ValentinesDay":     fixed(time.February, 14),
	"StPatricksDay":     fixed(time.March, 17),
	"USIndependenceDay": fixed(time.July, 4),
	"Halloween":         fixed(time.October, 31),
	"ChristmasEve":      fixed(time.December, 24),
	"ChristmasDay":      fixed(time.December, 25),
	"BoxingDay":         fixed(time.December, 26),
	"NewYearsEve":       fixed(time.December, 31),

	// weekday rules
	"USMLKingsBirthday": nthWeekday(time.January, time.Monday, 3),
	"USPresidentsDay":   nthWeekday(time.February, time.Monday, 3),
	"MothersDay":        nthWeekday(time.May, time.Sunday, 2),
	"USMemorialDay":     lastWeekday(time.May, time.Monday),
	"FathersDay":        nthWeekday(time.June, time.Sunday, 3),
	"USLaborDay":        nthWeekday(time.September, time.Monday, 1),
	"USThanksgivingDay": nthWeekday(time.November, time.Thursday, 4),

	// Easter cycle
	"AshWednesday": easterOffset(-46),
	"PalmSunday":   easterOffset(-7),
	"GoodFriday":   easterOffset(-2),
	"Easter":       easterOffset(0),
	"EasterMonday": easterOffset(1),
}

// Supported returns the sorted names of all supported holidays
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether the registry knows the given holiday name
func IsSupported(name string) bool {
	_, ok := registry[name]
	return ok
}

// Observance returns the date a holiday falls on in the given year,
// normalized to midnight UTC.
func Observance(name string, year int) (time.Time, error) {
	fn, ok := registry[name]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownHoliday, name)
	}
	return fn(year), nil
}

// ObservancesForYears returns the set of dates a holiday falls on across
// the given years, one observance per year.
func ObservancesForYears(name string, years []int) (map[time.Time]struct{}, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHoliday, name)
	}
	out := make(map[time.Time]struct{}, len(years))
	for _, year := range years {
		out[fn(year)] = struct{}{}
	}
	return out, nil
}

// Normalize truncates a timestamp to midnight UTC so it can be compared
// against observance dates.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixed(month time.Month, day int) observance {
	return func(year int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
}

// nthWeekday builds the rule "the n-th <weekday> of <month>"
func nthWeekday(month time.Month, weekday time.Weekday, n int) observance {
	return func(year int) time.Time {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		offset := (int(weekday) - int(first.Weekday()) + 7) % 7
		return first.AddDate(0, 0, offset+7*(n-1))
	}
}

// lastWeekday builds the rule "the last <weekday> of <month>"
func lastWeekday(month time.Month, weekday time.Weekday) observance {
	return func(year int) time.Time {
		last := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		offset := (int(last.Weekday()) - int(weekday) + 7) % 7
		return last.AddDate(0, 0, -offset)
	}
}

func easterOffset(days int) observance {
	return func(year int) time.Time {
		return easter(year).AddDate(0, 0, days)
	}
}

// easter computes Gregorian Easter Sunday via the anonymous computus
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
