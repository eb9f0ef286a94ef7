package domain

import (
	"sort"
	"strconv"
	"time"
)

// DerivedColumns is the fixed column order of derived fields in tabular
// output. Source columns precede them.
var DerivedColumns = []string{
	"id",
	"date_parsed", "year", "decade", "time_raw", "time_hhmm", "hour",
	"fatalities_total", "fatalities_passengers", "fatalities_crew",
	"aboard_total", "aboard_passengers", "aboard_crew",
	"ground_fatalities", "fatality_ratio", "is_fatal",
	"location_city", "location_state", "location_country", "location_country_canonical",
	"aircraft_category", "phase_clean", "weather_condition", "weather_adverse",
	"geo_lat", "geo_lon", "geo_source",
	"processed_at",
}

// Row flattens the record into column -> cell. Absent values are empty cells.
func (r AccidentRecord) Row() map[string]string {
	row := make(map[string]string, len(r.Source)+len(DerivedColumns))
	for k, v := range r.Source {
		row[k] = v
	}

	row["id"] = r.ID
	if r.DateParsed != nil {
		row["date_parsed"] = r.DateParsed.Format(time.DateOnly)
	} else {
		row["date_parsed"] = ""
	}
	row["year"] = intCell(r.Year)
	row["decade"] = intCell(r.Decade)
	row["time_raw"] = strCell(r.TimeRaw)
	row["time_hhmm"] = strCell(r.TimeHHMM)
	row["hour"] = intCell(r.Hour)
	row["fatalities_total"] = intCell(r.FatalitiesTotal)
	row["fatalities_passengers"] = intCell(r.FatalitiesPassengers)
	row["fatalities_crew"] = intCell(r.FatalitiesCrew)
	row["aboard_total"] = intCell(r.AboardTotal)
	row["aboard_passengers"] = intCell(r.AboardPassengers)
	row["aboard_crew"] = intCell(r.AboardCrew)
	row["ground_fatalities"] = floatCell(r.GroundFatalities)
	row["fatality_ratio"] = floatCell(r.FatalityRatio)
	row["is_fatal"] = strconv.FormatBool(r.IsFatal)
	row["location_city"] = strCell(r.LocationCity)
	row["location_state"] = strCell(r.LocationState)
	row["location_country"] = strCell(r.LocationCountry)
	row["location_country_canonical"] = strCell(r.LocationCountryCanonical)
	row["aircraft_category"] = r.AircraftCategory
	row["phase_clean"] = r.PhaseClean
	row["weather_condition"] = r.WeatherCondition
	row["weather_adverse"] = strconv.FormatBool(r.WeatherAdverse)
	row["geo_lat"], row["geo_lon"] = "", ""
	if r.Geo != nil {
		row["geo_lat"] = strconv.FormatFloat(r.Geo.Lat, 'f', -1, 64)
		row["geo_lon"] = strconv.FormatFloat(r.Geo.Lon, 'f', -1, 64)
	}
	row["geo_source"] = r.GeoSource
	row["processed_at"] = r.ProcessedAt.UTC().Format(time.RFC3339)
	return row
}

// TableColumns returns the header for a set of records: every source column
// seen, sorted, followed by DerivedColumns. A source column that shares a
// derived column's name is emitted once, in the derived position.
func TableColumns(recs []AccidentRecord) []string {
	derived := make(map[string]struct{}, len(DerivedColumns))
	for _, c := range DerivedColumns {
		derived[c] = struct{}{}
	}

	seen := make(map[string]struct{})
	var source []string
	for _, r := range recs {
		for k := range r.Source {
			if _, ok := derived[k]; ok {
				continue
			}
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				source = append(source, k)
			}
		}
	}
	sort.Strings(source)
	return append(source, DerivedColumns...)
}

func strCell(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
