package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Engine turns raw records into accident records. It holds only the
// read-only gazetteer, so one Engine may serve any number of goroutines.
type Engine struct {
	gazetteer *Gazetteer
}

// NewEngine creates an Engine. A nil gazetteer selects the built-in one.
func NewEngine(g *Gazetteer) *Engine {
	if g == nil {
		g = DefaultGazetteer()
	}
	return &Engine{gazetteer: g}
}

// Gazetteer returns the reference data the engine classifies with.
func (e *Engine) Gazetteer() *Gazetteer {
	return e.gazetteer
}

// ParseRawEvent decodes a source message into a RawRecord. The payload must
// be a flat JSON object; strings are kept verbatim, numbers and booleans are
// stringified and nulls are dropped.
func ParseRawEvent(raw RawEvent) (RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw.Value))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("parse raw event: %w", err)
	}
	if fields == nil {
		return nil, errors.New("parse raw event: payload is null")
	}

	values := make(map[string]string, len(fields))
	for name, v := range fields {
		switch tv := v.(type) {
		case nil:
			continue
		case string:
			values[name] = tv
		case json.Number:
			values[name] = tv.String()
		case bool:
			values[name] = fmt.Sprint(tv)
		default:
			return nil, fmt.Errorf("parse raw event: field %q is not a scalar", name)
		}
	}
	return RawRecordFromMap(values), nil
}

// Normalize runs every stage over one raw record. It never fails: missing or
// malformed inputs produce nil derived values and fallback labels.
func (e *Engine) Normalize(raw RawRecord) AccidentRecord {
	src := NormalizeColumns(raw)
	g := e.gazetteer

	rec := AccidentRecord{
		ID:     generateID(src),
		Source: src,
	}

	rec.DateParsed = ParseDate(src.Text(ColDate))
	if rec.DateParsed != nil {
		year := rec.DateParsed.Year()
		decade := year / 10 * 10
		rec.Year, rec.Decade = &year, &decade
	}
	rec.TimeRaw = src.Value(ColTime)
	rec.TimeHHMM = ParseTimeOfDay(src.Text(ColTime))
	rec.Hour = hourOf(rec.TimeHHMM)

	fatal := ParseFatalities(src.Text(ColFatalities))
	rec.FatalitiesTotal = fatal.Total
	rec.FatalitiesPassengers = fatal.Passengers
	rec.FatalitiesCrew = fatal.Crew
	rec.IsFatal = fatal.Total != nil && *fatal.Total > 0

	aboard := ParseFatalities(src.Text(ColAboard))
	rec.AboardTotal = aboard.Total
	rec.AboardPassengers = aboard.Passengers
	rec.AboardCrew = aboard.Crew
	rec.FatalityRatio = fatalityRatio(fatal.Total, aboard.Total)
	rec.GroundFatalities = ParseGroundFatalities(src.Text(ColGroundFatalities))

	loc := ResolveLocation(src.Text(ColLocation), g)
	rec.LocationCity = loc.City
	rec.LocationState = loc.State
	rec.LocationCountry = loc.Country
	if loc.Country != nil {
		rec.LocationCountryCanonical = strPtr(g.CanonicalCountry(*loc.Country))
	}

	rec.AircraftCategory = CategorizeAircraft(src.Text(ColAircraftType), g)
	summary := src.Text(ColSummary)
	rec.PhaseClean = ClassifyPhase(summary, g)
	rec.WeatherCondition, rec.WeatherAdverse = ClassifyWeather(summary, g)

	rec.ProcessedAt = clock.Now()
	return rec
}

// NullFields lists the derived fields that could not be populated.
func NullFields(rec AccidentRecord) []string {
	var out []string
	check := func(name string, isNil bool) {
		if isNil {
			out = append(out, name)
		}
	}
	check("date_parsed", rec.DateParsed == nil)
	check("time_hhmm", rec.TimeHHMM == nil)
	check("fatalities_total", rec.FatalitiesTotal == nil)
	check("fatalities_passengers", rec.FatalitiesPassengers == nil)
	check("fatalities_crew", rec.FatalitiesCrew == nil)
	check("aboard_total", rec.AboardTotal == nil)
	check("ground_fatalities", rec.GroundFatalities == nil)
	check("location_city", rec.LocationCity == nil)
	check("location_state", rec.LocationState == nil)
	check("location_country", rec.LocationCountry == nil)
	return out
}

// FallbackLabels lists the classifiers that returned their fallback label.
func FallbackLabels(rec AccidentRecord) []string {
	var out []string
	if rec.AircraftCategory == AircraftUnknown || rec.AircraftCategory == AircraftOther {
		out = append(out, "aircraft_category")
	}
	if rec.PhaseClean == PhaseUnknown {
		out = append(out, "phase_clean")
	}
	if rec.WeatherCondition == WeatherNone {
		out = append(out, "weather_condition")
	}
	return out
}

// generateID produces a deterministic ID for a record. The detail page URL is
// unique per accident; without it the ID falls back to the identifying
// columns.
func generateID(src CanonicalRecord) string {
	input := strings.TrimSpace(src.Text(ColDetailURL))
	if input == "" {
		input = strings.Join([]string{
			src.Text(ColDate),
			src.Text(ColLocation),
			src.Text(ColAircraftType),
			src.Text(ColRegistration),
			src.Text(ColOperator),
		}, "|")
	}
	hash := sha256.Sum256([]byte(input))
	return "crash-" + hex.EncodeToString(hash[:8])
}
