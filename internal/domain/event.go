package domain

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Field is one scraped label/value pair.
type Field struct {
	Name  string
	Value string
}

// RawRecord is the ordered list of label/value pairs scraped for one accident.
// Order matters: when two labels normalize to the same canonical column the
// later one wins.
type RawRecord []Field

// RawRecordFromMap orders map input by label, which matches the header order
// the scraper writes to CSV.
func RawRecordFromMap(m map[string]string) RawRecord {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	rec := make(RawRecord, 0, len(names))
	for _, name := range names {
		rec = append(rec, Field{Name: name, Value: m[name]})
	}
	return rec
}

// CanonicalRecord maps canonical column names to their raw string values.
type CanonicalRecord map[string]string

// Value returns the raw value for a column, or nil when the column is missing
// or blank.
func (c CanonicalRecord) Value(name string) *string {
	v, ok := c[name]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// Text returns the raw value for a column, or "" when it is absent.
func (c CanonicalRecord) Text(name string) string {
	if v := c.Value(name); v != nil {
		return *v
	}
	return ""
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AccidentRecord is a canonical record plus every derived field. Pointer
// fields are nil when the value could not be derived.
type AccidentRecord struct {
	ID     string          `json:"id"`
	Source CanonicalRecord `json:"source"`

	DateParsed *time.Time `json:"date_parsed"`
	TimeRaw    *string    `json:"time_raw"`
	TimeHHMM   *string    `json:"time_hhmm"`
	Year       *int       `json:"year"`
	Decade     *int       `json:"decade"`
	Hour       *int       `json:"hour"`

	FatalitiesTotal      *int     `json:"fatalities_total"`
	FatalitiesPassengers *int     `json:"fatalities_passengers"`
	FatalitiesCrew       *int     `json:"fatalities_crew"`
	AboardTotal          *int     `json:"aboard_total"`
	AboardPassengers     *int     `json:"aboard_passengers"`
	AboardCrew           *int     `json:"aboard_crew"`
	GroundFatalities     *float64 `json:"ground_fatalities"`
	FatalityRatio        *float64 `json:"fatality_ratio"`
	IsFatal              bool     `json:"is_fatal"`

	LocationCity             *string `json:"location_city"`
	LocationState            *string `json:"location_state"`
	LocationCountry          *string `json:"location_country"`
	LocationCountryCanonical *string `json:"location_country_canonical"`

	AircraftCategory string `json:"aircraft_category"`
	PhaseClean       string `json:"phase_clean"`
	WeatherCondition string `json:"weather_condition"`
	WeatherAdverse   bool   `json:"weather_adverse"`

	// Geocoding enrichment fields.
	Geo              *Geo   `json:"geo,omitempty"`
	FormattedAddress string `json:"formatted_address,omitempty"`
	GeoSource        string `json:"geo_source,omitempty"` // one of the GeoSource constants

	ProcessedAt time.Time `json:"processed_at"`
}
