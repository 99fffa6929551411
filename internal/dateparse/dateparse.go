// Package dateparse implements strict DD/MM/YYYY date handling with
// round-trip validation and memoized results.
package dateparse

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Layout is the canonical display format for date fields.
const Layout = "02/01/2006"

// cacheSize bounds the parse memo. The source kept an unbounded cache for
// the process lifetime; an LRU keeps the same hit behavior for realistic
// collection sizes without the growth.
const cacheSize = 4096

type result struct {
	t  time.Time
	ok bool
}

var cache, _ = lru.New[string, result](cacheSize)

// Parse interprets raw as a DD/MM/YYYY date, or as the leading date of an
// ISO YYYY-MM-DD... string. Validation is a round-trip check: the
// constructed date must report exactly the day, month, and year that were
// given, so "31/02/2025" is rejected rather than clamped. The empty string
// and malformed input both yield ok=false; callers distinguish the two by
// checking raw themselves.
func Parse(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if r, hit := cache.Get(raw); hit {
		return r.t, r.ok
	}
	t, ok := parse(raw)
	cache.Add(raw, result{t: t, ok: ok})
	return t, ok
}

// Valid reports whether raw parses as a date. The empty string is not
// valid; "absent" handling belongs to the caller.
func Valid(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// Format renders t as zero-padded DD/MM/YYYY.
func Format(t time.Time) string {
	return t.Format(Layout)
}

func parse(raw string) (time.Time, bool) {
	if day, month, year, ok := splitSlash(raw); ok {
		return roundTrip(day, month, year)
	}
	if day, month, year, ok := splitISOPrefix(raw); ok {
		return roundTrip(day, month, year)
	}
	return time.Time{}, false
}

// splitSlash extracts DD/MM/YYYY parts.
func splitSlash(raw string) (day, month, year int, ok bool) {
	if len(raw) != 10 || raw[2] != '/' || raw[5] != '/' {
		return 0, 0, 0, false
	}
	day, ok1 := atoiDigits(raw[0:2])
	month, ok2 := atoiDigits(raw[3:5])
	year, ok3 := atoiDigits(raw[6:10])
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

// splitISOPrefix extracts a leading YYYY-MM-DD; anything after the first
// ten characters (time, zone) is ignored.
func splitISOPrefix(raw string) (day, month, year int, ok bool) {
	if len(raw) < 10 || raw[4] != '-' || raw[7] != '-' {
		return 0, 0, 0, false
	}
	year, ok1 := atoiDigits(raw[0:4])
	month, ok2 := atoiDigits(raw[5:7])
	day, ok3 := atoiDigits(raw[8:10])
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

// atoiDigits converts a fixed-width decimal field. Unlike strconv.Atoi
// it rejects signs and whitespace, so "+1" is not a valid day.
func atoiDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// roundTrip builds the date and requires it to reproduce the input parts,
// rejecting overflow dates that time.Date would otherwise normalize.
func roundTrip(day, month, year int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
