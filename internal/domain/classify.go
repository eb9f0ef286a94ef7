package domain

import (
	"strings"
	"unicode"
)

// keywordRule is a Rule with keywords already passed through matchForm.
type keywordRule struct {
	label    string
	keywords []string
}

func compileRules(rules []Rule) []keywordRule {
	out := make([]keywordRule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = matchForm(kw)
		}
		out[i] = keywordRule{label: r.Label, keywords: kws}
	}
	return out
}

// matchForm lower-cases s and turns every rune other than a letter, digit or
// hyphen into a space. Keywords and text share this form, so a keyword with
// a leading space (" rain") matches at the start of the text or after
// punctuation without matching inside "terrain".
func matchForm(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return ' '
	}, strings.ToLower(s))
}

// matchRules returns the label of the first rule with a keyword occurring in
// text, or fallback.
func matchRules(rules []keywordRule, text, fallback string) string {
	padded := " " + matchForm(text) + " "
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(padded, kw) {
				return r.label
			}
		}
	}
	return fallback
}

// CategorizeAircraft assigns an aircraft category from a model description.
// Empty and "?" descriptions are Unknown; descriptions no rule matches are
// Other/Unmapped.
func CategorizeAircraft(aircraftType string, g *Gazetteer) string {
	s := strings.TrimSpace(aircraftType)
	if s == "" || s == "?" {
		return AircraftUnknown
	}
	return matchRules(g.aircraft, s, AircraftOther)
}

// ClassifyPhase assigns the flight phase mentioned first in priority order.
func ClassifyPhase(summary string, g *Gazetteer) string {
	s := strings.TrimSpace(summary)
	if s == "" || s == "?" {
		return PhaseUnknown
	}
	return matchRules(g.phases, s, PhaseUnknown)
}

// ClassifyWeather assigns a weather condition and reports whether it is
// adverse.
func ClassifyWeather(summary string, g *Gazetteer) (string, bool) {
	s := strings.TrimSpace(summary)
	if s == "" || s == "?" {
		return WeatherNone, false
	}
	label := matchRules(g.weather, s, WeatherNone)
	return label, g.IsAdverse(label)
}
