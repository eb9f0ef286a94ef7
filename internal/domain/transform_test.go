package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProcessedAt = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(testProcessedAt))
	t.Cleanup(func() { SetClock(nil) })
}

func scrapedRecord() RawRecord {
	return RawRecordFromMap(map[string]string{
		"date":          "September 17, 1908",
		"time":          "c 17:15",
		"location":      "Fort Myer, Virginia",
		"operator":      "Military - U.S. Army",
		"flight_#":      "?",
		"route":         "Demonstration",
		"ac_type":       "Wright Flyer III",
		"registration":  "?",
		"cn_/_ln":       "1",
		"aboard":        "2   (passengers:1  crew:1)",
		"fatalities":    "1   (passengers:1  crew:0)",
		"ground":        "0",
		"summary":       "During a demonstration flight, a propeller separated and the aircraft descended out of control.",
		"detail_url":    "https://example.org/1908/1908-1.htm",
		"year_page_url": "https://example.org/1908/1908.htm",
	})
}

func TestEngine_Normalize(t *testing.T) {
	freezeClock(t)
	rec := NewEngine(nil).Normalize(scrapedRecord())

	require.NotNil(t, rec.DateParsed)
	assert.Equal(t, time.Date(1908, time.September, 17, 0, 0, 0, 0, time.UTC), *rec.DateParsed)
	assert.Equal(t, intPtr(1908), rec.Year)
	assert.Equal(t, intPtr(1900), rec.Decade)
	assert.Equal(t, strPtr("c 17:15"), rec.TimeRaw)
	assert.Equal(t, strPtr("17:15"), rec.TimeHHMM)
	assert.Equal(t, intPtr(17), rec.Hour)

	assert.Equal(t, intPtr(1), rec.FatalitiesTotal)
	assert.Equal(t, intPtr(1), rec.FatalitiesPassengers)
	assert.Equal(t, intPtr(0), rec.FatalitiesCrew)
	assert.Equal(t, intPtr(2), rec.AboardTotal)
	assert.Equal(t, floatPtr(0.5), rec.FatalityRatio)
	assert.Equal(t, floatPtr(0), rec.GroundFatalities)
	assert.True(t, rec.IsFatal)

	assert.Equal(t, strPtr("Fort Myer"), rec.LocationCity)
	assert.Equal(t, strPtr("Virginia"), rec.LocationState)
	assert.Equal(t, strPtr("United States"), rec.LocationCountry)
	assert.Equal(t, strPtr("United States"), rec.LocationCountryCanonical)

	assert.Equal(t, "Vintage/Early", rec.AircraftCategory)
	assert.Equal(t, "Descent", rec.PhaseClean)
	assert.Equal(t, "None/Not mentioned", rec.WeatherCondition)
	assert.False(t, rec.WeatherAdverse)

	assert.True(t, strings.HasPrefix(rec.ID, "crash-"))
	assert.Equal(t, "Wright Flyer III", rec.Source[ColAircraftType])
	assert.Equal(t, "1", rec.Source[ColCnLn])
	assert.Equal(t, testProcessedAt, rec.ProcessedAt)
	assert.Nil(t, rec.Geo)
}

func TestEngine_Normalize_CountryAlias(t *testing.T) {
	rec := NewEngine(nil).Normalize(RawRecord{{Name: "Location", Value: "Sverdlovsk, Soviet Union"}})

	assert.Equal(t, strPtr("Soviet Union"), rec.LocationCountry)
	assert.Equal(t, strPtr("Russia"), rec.LocationCountryCanonical)
}

func TestEngine_Normalize_EmptyRecord(t *testing.T) {
	rec := NewEngine(nil).Normalize(nil)

	assert.Nil(t, rec.DateParsed)
	assert.Nil(t, rec.TimeRaw)
	assert.Nil(t, rec.TimeHHMM)
	assert.Nil(t, rec.FatalitiesTotal)
	assert.Nil(t, rec.GroundFatalities)
	assert.Nil(t, rec.LocationCity)
	assert.Nil(t, rec.LocationCountryCanonical)
	assert.False(t, rec.IsFatal)
	assert.Equal(t, AircraftUnknown, rec.AircraftCategory)
	assert.Equal(t, PhaseUnknown, rec.PhaseClean)
	assert.Equal(t, WeatherNone, rec.WeatherCondition)
	assert.Equal(t, []string{
		"date_parsed", "time_hhmm", "fatalities_total", "fatalities_passengers",
		"fatalities_crew", "aboard_total", "ground_fatalities", "location_city",
		"location_state", "location_country",
	}, NullFields(rec))
	assert.Equal(t, []string{"aircraft_category", "phase_clean", "weather_condition"}, FallbackLabels(rec))
}

func TestEngine_Normalize_Deterministic(t *testing.T) {
	freezeClock(t)
	e := NewEngine(nil)

	first := e.Normalize(scrapedRecord())
	second := e.Normalize(scrapedRecord())
	assert.Equal(t, first, second)
}

func TestEngine_Normalize_Totality(t *testing.T) {
	e := NewEngine(nil)
	g := e.Gazetteer()
	values := []string{
		"", "?", " ", ",", "\x00", "(((", "passengers:", "crew:?", "99999999999999999999999",
		"Boeing 737, Miami, FL", "日本, 東京", "\xff\xfe",
	}

	for _, v := range values {
		raw := RawRecord{
			{Name: "date", Value: v},
			{Name: "time", Value: v},
			{Name: "fatalities", Value: v},
			{Name: "aboard", Value: v},
			{Name: "ground", Value: v},
			{Name: "location", Value: v},
			{Name: "type", Value: v},
			{Name: "summary", Value: v},
			{Name: v, Value: v},
		}
		assert.NotPanics(t, func() {
			rec := e.Normalize(raw)
			assert.Contains(t, g.AircraftLabels(), rec.AircraftCategory)
			assert.Contains(t, g.PhaseLabels(), rec.PhaseClean)
			assert.Contains(t, g.WeatherLabels(), rec.WeatherCondition)
		}, "value %q", v)
	}
}

func TestGenerateID(t *testing.T) {
	withURL := CanonicalRecord{ColDetailURL: "https://example.org/1977/1977-12.htm", ColDate: "March 27, 1977"}
	sameURL := CanonicalRecord{ColDetailURL: "https://example.org/1977/1977-12.htm", ColDate: "different"}
	noURL := CanonicalRecord{ColDate: "March 27, 1977", ColLocation: "Tenerife, Canary Islands"}

	assert.Equal(t, generateID(withURL), generateID(sameURL))
	assert.NotEqual(t, generateID(withURL), generateID(noURL))
	assert.Equal(t, generateID(noURL), generateID(CanonicalRecord{ColDate: "March 27, 1977", ColLocation: "Tenerife, Canary Islands"}))
	assert.Len(t, generateID(noURL), len("crash-")+16)
}

func TestParseRawEvent(t *testing.T) {
	t.Run("flat object", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"ac_type":"Bell 206","aboard":3,"ground":null,"military":false}`)}
		got, err := ParseRawEvent(raw)

		require.NoError(t, err)
		assert.Equal(t, RawRecord{
			{Name: "aboard", Value: "3"},
			{Name: "ac_type", Value: "Bell 206"},
			{Name: "military", Value: "false"},
		}, got)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("{invalid json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw event")
	})

	t.Run("null payload", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("null")})
		require.Error(t, err)
	})

	t.Run("nested value", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"summary":{"text":"x"}}`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"summary"`)
	})
}

func TestAccidentRecord_Row(t *testing.T) {
	freezeClock(t)
	rec := NewEngine(nil).Normalize(scrapedRecord())
	row := rec.Row()

	assert.Equal(t, "1908-09-17", row["date_parsed"])
	assert.Equal(t, "17:15", row["time_hhmm"])
	assert.Equal(t, "0.5", row["fatality_ratio"])
	assert.Equal(t, "true", row["is_fatal"])
	assert.Equal(t, "", row["geo_lat"])
	assert.Equal(t, "Vintage/Early", row["aircraft_category"])
	assert.Equal(t, "Wright Flyer III", row[ColAircraftType])
	assert.Equal(t, "2024-05-01T12:00:00Z", row["processed_at"])
	for _, col := range TableColumns([]AccidentRecord{rec}) {
		_, ok := row[col]
		assert.True(t, ok, "column %s missing from row", col)
	}
}

func TestTableColumns(t *testing.T) {
	recs := []AccidentRecord{
		{Source: CanonicalRecord{"summary": "a", "date": "b"}},
		{Source: CanonicalRecord{"route": "c", "id": "clash"}},
	}
	cols := TableColumns(recs)

	assert.Equal(t, []string{"date", "route", "summary"}, cols[:3])
	assert.Equal(t, DerivedColumns, cols[3:])
}
