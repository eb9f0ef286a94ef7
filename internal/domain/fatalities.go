package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// firstNumberRe captures the first run of digits, e.g. "22 (passengers:19 crew:3)" -> "22".
	firstNumberRe = regexp.MustCompile(`(\d+)`)

	// passengersRe and crewRe capture a sub-count that may be a "?" placeholder.
	passengersRe = regexp.MustCompile(`(?i)passengers:\s*([0-9?]+)`)
	crewRe       = regexp.MustCompile(`(?i)crew:\s*([0-9?]+)`)
)

// FatalityBreakdown is the decomposition of a composite count string. The
// three searches are independent; no relation between them is enforced.
type FatalityBreakdown struct {
	Total      *int
	Passengers *int
	Crew       *int
}

// ParseFatalities decomposes "<total> (passengers:<n> crew:<n>)". The total is
// the first digit run anywhere in the string. The same shape is used for the
// aboard column.
func ParseFatalities(raw string) FatalityBreakdown {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FatalityBreakdown{}
	}
	return FatalityBreakdown{
		Total:      captureInt(firstNumberRe, raw),
		Passengers: captureInt(passengersRe, raw),
		Crew:       captureInt(crewRe, raw),
	}
}

// captureInt returns the first capture group of re as an int. "?" placeholders,
// mixed captures such as "1?" and overflowing runs yield nil.
func captureInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 || m[1] == "?" {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// ParseGroundFatalities coerces the ground column to a number. Non-numeric and
// non-finite values yield nil.
func ParseGroundFatalities(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// fatalityRatio is total/aboard. It is nil when either side is missing or no
// one was aboard; ratios above 1 pass through unchanged.
func fatalityRatio(fatal, aboard *int) *float64 {
	if fatal == nil || aboard == nil || *aboard <= 0 {
		return nil
	}
	r := float64(*fatal) / float64(*aboard)
	return &r
}
