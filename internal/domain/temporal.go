package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// nonDigitRe matches every character that is not an ASCII digit.
var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// numericDateRe matches slash dates such as "09/17/1908", "17/09/1908" and "1/1/1".
var numericDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{1,4})$`)

// septRe matches the "Sept" abbreviation of September.
var septRe = regexp.MustCompile(`(?i)\bsept\b`)

// monthNameLayouts are tried before dateparse, which leaves the year unset
// for "Sep 17 1908".
var monthNameLayouts = []string{
	"Jan 2 2006",
	"Jan. 2 2006",
	"Jan. 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate reads a calendar date in any common layout ("September 17, 1908",
// "Sept 17 1908", "1908-09-17", "09/17/1908", "17/09/1908") and returns it at
// midnight UTC. Slash dates are month first unless the month is out of range.
// Years of one or two digits land in the most recent century not after the
// current year. Unparseable or placeholder input yields nil.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "?" {
		return nil
	}
	if m := numericDateRe.FindStringSubmatch(raw); m != nil {
		return parseNumericDate(m[1], m[2], m[3])
	}

	raw = septRe.ReplaceAllString(raw, "Sep")
	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOf(t.Year(), t.Month(), t.Day())
		}
	}
	if t, ok := parseAny(raw); ok && t.Year() >= 100 {
		return dateOf(t.Year(), t.Month(), t.Day())
	}
	return nil
}

// parseAny wraps dateparse, which has panicked on truncated layouts in past
// releases.
func parseAny(raw string) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	t, err := dateparse.ParseIn(raw, time.UTC)
	return t, err == nil
}

func parseNumericDate(first, second, year string) *time.Time {
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(second)
	y, _ := strconv.Atoi(year)
	if len(year) <= 2 {
		y += 2000
		if y > clock.Now().Year() {
			y -= 100
		}
	}

	month, day := a, b
	if month > 12 {
		month, day = b, a
	}
	return dateOf(y, time.Month(month), day)
}

// dateOf returns midnight UTC of the given day, or nil when the day does not
// exist in that month.
func dateOf(year int, month time.Month, day int) *time.Time {
	if month < time.January || month > time.December || day < 1 {
		return nil
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return nil
	}
	return &d
}

// ParseTimeOfDay extracts an "HH:MM" value from free text. All non-digit
// characters are dropped; two digits or fewer is too little to read, three
// digits get a leading zero, and anything longer than four keeps the last
// four. Out-of-range hours or minutes yield nil.
func ParseTimeOfDay(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "?" {
		return nil
	}

	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) <= 2 {
		return nil
	}
	if len(digits) == 3 {
		digits = "0" + digits
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}

	hour, errH := strconv.Atoi(digits[:2])
	mins, errM := strconv.Atoi(digits[2:])
	if errH != nil || errM != nil || hour > 23 || mins > 59 {
		return nil
	}

	hhmm := fmt.Sprintf("%02d:%02d", hour, mins)
	return &hhmm
}

// hourOf returns the hour component of a validated "HH:MM" value.
func hourOf(hhmm *string) *int {
	if hhmm == nil || len(*hhmm) != 5 {
		return nil
	}
	h, err := strconv.Atoi((*hhmm)[:2])
	if err != nil {
		return nil
	}
	return &h
}
