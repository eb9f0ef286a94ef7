package domain

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fallback labels returned when no keyword rule matches.
const (
	AircraftUnknown = "Unknown"
	AircraftOther   = "Other/Unmapped"
	PhaseUnknown    = "Unknown"
	WeatherNone     = "None/Not mentioned"
)

// Rule is one category of an ordered keyword classifier.
type Rule struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Gazetteer holds the reference sets and keyword lists used by the engine.
// Build one with [DefaultGazetteer] or [LoadGazetteer]; it is read-only after
// that and safe to share between goroutines.
type Gazetteer struct {
	USStates          []string          `yaml:"us_states" json:"us_states"`
	USStateAbbrevs    []string          `yaml:"us_state_abbreviations" json:"us_state_abbreviations"`
	Countries         []string          `yaml:"countries" json:"countries"`
	CountryAliases    map[string]string `yaml:"country_aliases" json:"country_aliases"`
	AircraftRules     []Rule            `yaml:"aircraft_categories" json:"aircraft_categories"`
	PhaseRules        []Rule            `yaml:"flight_phases" json:"flight_phases"`
	WeatherRules      []Rule            `yaml:"weather_conditions" json:"weather_conditions"`
	AdverseConditions []string          `yaml:"adverse_weather" json:"adverse_weather"`

	states    map[string]struct{}
	countries map[string]struct{}
	adverse   map[string]struct{}
	aircraft  []keywordRule
	phases    []keywordRule
	weather   []keywordRule
}

// DefaultGazetteer returns the built-in reference sets.
func DefaultGazetteer() *Gazetteer {
	g := &Gazetteer{
		USStates:          cloneStrings(defaultUSStates),
		USStateAbbrevs:    cloneStrings(defaultUSStateAbbrevs),
		Countries:         cloneStrings(defaultCountries),
		CountryAliases:    cloneAliases(defaultCountryAliases),
		AircraftRules:     cloneRules(defaultAircraftRules),
		PhaseRules:        cloneRules(defaultPhaseRules),
		WeatherRules:      cloneRules(defaultWeatherRules),
		AdverseConditions: cloneStrings(defaultAdverseConditions),
	}
	if err := g.compile(); err != nil {
		panic(fmt.Sprintf("built-in gazetteer is invalid: %v", err))
	}
	return g
}

// LoadGazetteer reads a YAML override. Every section is optional and a
// present section replaces the built-in one wholesale.
func LoadGazetteer(r io.Reader) (*Gazetteer, error) {
	var override Gazetteer
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode gazetteer: %w", err)
	}

	g := DefaultGazetteer()
	if override.USStates != nil {
		g.USStates = override.USStates
	}
	if override.USStateAbbrevs != nil {
		g.USStateAbbrevs = override.USStateAbbrevs
	}
	if override.Countries != nil {
		g.Countries = override.Countries
	}
	if override.CountryAliases != nil {
		g.CountryAliases = override.CountryAliases
	}
	if override.AircraftRules != nil {
		g.AircraftRules = override.AircraftRules
	}
	if override.PhaseRules != nil {
		g.PhaseRules = override.PhaseRules
	}
	if override.WeatherRules != nil {
		g.WeatherRules = override.WeatherRules
	}
	if override.AdverseConditions != nil {
		g.AdverseConditions = override.AdverseConditions
	}

	if err := g.compile(); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteYAML dumps the gazetteer in the format LoadGazetteer reads.
func (g *Gazetteer) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode gazetteer: %w", err)
	}
	return enc.Close()
}

// compile validates the rules, lower-cases keywords and builds the lookup
// sets and keyword matchers.
func (g *Gazetteer) compile() error {
	for section, rules := range map[string][]Rule{
		"aircraft_categories": g.AircraftRules,
		"flight_phases":       g.PhaseRules,
		"weather_conditions":  g.WeatherRules,
	} {
		for i := range rules {
			if strings.TrimSpace(rules[i].Label) == "" {
				return fmt.Errorf("gazetteer %s[%d]: label is required", section, i)
			}
			if len(rules[i].Keywords) == 0 {
				return fmt.Errorf("gazetteer %s[%d] %q: at least one keyword is required", section, i, rules[i].Label)
			}
			for j, kw := range rules[i].Keywords {
				if kw == "" {
					return fmt.Errorf("gazetteer %s[%d] %q: keyword %d is empty", section, i, rules[i].Label, j)
				}
				if strings.TrimSpace(matchForm(kw)) == "" {
					return fmt.Errorf("gazetteer %s[%d] %q: keyword %q has no letters or digits", section, i, rules[i].Label, kw)
				}
				rules[i].Keywords[j] = strings.ToLower(kw)
			}
		}
	}

	g.adverse = make(map[string]struct{}, len(g.AdverseConditions))
	for _, label := range g.AdverseConditions {
		if !hasLabel(g.WeatherRules, label) {
			return fmt.Errorf("gazetteer adverse_weather: %q is not a weather condition", label)
		}
		g.adverse[label] = struct{}{}
	}

	g.states = toSet(g.USStates, g.USStateAbbrevs)
	g.countries = toSet(g.Countries)
	g.aircraft = compileRules(g.AircraftRules)
	g.phases = compileRules(g.PhaseRules)
	g.weather = compileRules(g.WeatherRules)
	return nil
}

// IsUSState reports whether s is a full US state name or two-letter code.
func (g *Gazetteer) IsUSState(s string) bool {
	_, ok := g.states[s]
	return ok
}

// IsCountry reports whether s exactly equals a known country.
func (g *Gazetteer) IsCountry(s string) bool {
	_, ok := g.countries[s]
	return ok
}

// ContainsCountry reports whether any known country occurs inside s.
func (g *Gazetteer) ContainsCountry(s string) bool {
	for _, c := range g.Countries {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

// CanonicalCountry applies the alias table once; unknown names pass through.
func (g *Gazetteer) CanonicalCountry(country string) string {
	if canonical, ok := g.CountryAliases[country]; ok {
		return canonical
	}
	return country
}

// IsAdverse reports whether a weather label counts as adverse.
func (g *Gazetteer) IsAdverse(label string) bool {
	_, ok := g.adverse[label]
	return ok
}

// AircraftLabels lists every label the aircraft classifier can return.
func (g *Gazetteer) AircraftLabels() []string {
	return append(labelsOf(g.AircraftRules), AircraftOther, AircraftUnknown)
}

// PhaseLabels lists every label the flight phase classifier can return.
func (g *Gazetteer) PhaseLabels() []string {
	return append(labelsOf(g.PhaseRules), PhaseUnknown)
}

// WeatherLabels lists every label the weather classifier can return.
func (g *Gazetteer) WeatherLabels() []string {
	return append(labelsOf(g.WeatherRules), WeatherNone)
}

func labelsOf(rules []Rule) []string {
	out := make([]string, 0, len(rules)+2)
	for _, r := range rules {
		out = append(out, r.Label)
	}
	return out
}

func hasLabel(rules []Rule, label string) bool {
	for _, r := range rules {
		if r.Label == label {
			return true
		}
	}
	return false
}

func toSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, s := range list {
			set[s] = struct{}{}
		}
	}
	return set
}

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}

func cloneAliases(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneRules(in []Rule) []Rule {
	out := make([]Rule, len(in))
	for i, r := range in {
		out[i] = Rule{Label: r.Label, Keywords: cloneStrings(r.Keywords)}
	}
	return out
}
