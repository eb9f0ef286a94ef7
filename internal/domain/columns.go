package domain

import (
	"regexp"
	"strings"
)

// Canonical column names.
const (
	ColAboard           = "aboard"
	ColAircraftType     = "aircraft_type"
	ColCnLn             = "cn_ln"
	ColDate             = "date"
	ColDetailURL        = "detail_url"
	ColFatalities       = "fatalities"
	ColFlightNo         = "flight_no"
	ColGroundFatalities = "ground_fatalities"
	ColLocation         = "location"
	ColOperator         = "operator"
	ColRegistration     = "registration"
	ColRoute            = "route"
	ColSummary          = "summary"
	ColTime             = "time"
	ColYearPageURL      = "year_page_url"
)

// nonAlnumRe matches runs of characters that are not ASCII letters or digits.
var nonAlnumRe = regexp.MustCompile(`[^0-9a-zA-Z]+`)

type columnRule struct {
	canonical string
	match     func(lowered string) bool
}

func prefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func equals(values ...string) func(string) bool {
	return func(s string) bool {
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

// columnRules is evaluated top to bottom; the first match wins. "contains
// type" sits above the cn/ln rule, so a header such as "cn_type" is an
// aircraft type.
var columnRules = []columnRule{
	{ColAboard, prefix("aboard")},
	{ColAircraftType, contains("type")},
	{ColCnLn, prefix("cn")},
	{ColDate, equals("date")},
	{ColDetailURL, equals("detail_url")},
	{ColFatalities, contains("fatalit")},
	{ColFlightNo, contains("flight")},
	{ColGroundFatalities, equals("ground", "ground_fatalities")},
	{ColLocation, equals("location")},
	{ColOperator, contains("operator")},
	{ColRegistration, contains("registr")},
	{ColRoute, equals("route")},
	{ColSummary, equals("summary")},
	{ColTime, equals("time")},
	{ColYearPageURL, contains("year_page_url")},
}

// CanonicalColumn maps one raw header onto the canonical schema. Headers that
// match no rule are transliterated to snake_case.
func CanonicalColumn(header string) string {
	lowered := strings.ToLower(strings.TrimSpace(header))
	for _, r := range columnRules {
		if r.match(lowered) {
			return r.canonical
		}
	}
	if snake := strings.Trim(nonAlnumRe.ReplaceAllString(lowered, "_"), "_"); snake != "" {
		return snake
	}
	return lowered
}

// NormalizeColumns renames every header of raw to its canonical name. When
// two headers collide the later one in raw wins. Missing expected columns are
// not an error.
func NormalizeColumns(raw RawRecord) CanonicalRecord {
	out := make(CanonicalRecord, len(raw))
	for _, f := range raw {
		out[CanonicalColumn(f.Name)] = f.Value
	}
	return out
}
