package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/crash-data-etl/internal/adapter/table"
	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"github.com/spf13/cobra"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// errValidationFailed makes the command exit non-zero after the report.
var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check normalized records for internal consistency",
		Long: `Check a JSON file written by "normalize --format json".

Checks:
  - Labels: categories belong to the gazetteer label sets and
    weather_adverse agrees with weather_condition
  - Time: time_hhmm is HH:MM in range and hour matches it
  - Dates: year and decade agree with date_parsed
  - Counts: counts are non-negative, is_fatal and fatality_ratio agree
    with the counts they derive from
  - Location: canonical country follows the alias table
  - IDs: well-formed and unique

Example:
  crashetl normalize --in raw.csv --out clean.json --format json
  crashetl validate --in clean.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, _ := cmd.Flags().GetString("in")

			g, err := loadGazetteer(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			records, err := table.ReadAccidentJSON(f)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			phases := validateRecords(records, g)
			if !report(cmd.OutOrStdout(), phases, len(records)) {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().String("in", "", "normalized JSON file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func validateRecords(records []domain.AccidentRecord, g *domain.Gazetteer) []*phase {
	return []*phase{
		validateLabels(records, g),
		validateTime(records),
		validateDates(records),
		validateCounts(records),
		validateLocation(records, g),
		validateIDs(records),
	}
}

// report prints the phase table and details. It returns true when every
// phase passed.
func report(w io.Writer, phases []*phase, total int) bool {
	fmt.Fprintln(w, "=== Accident Record Validation ===")
	fmt.Fprintln(w)

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-20s %s\n", p.name, status)
	}

	fmt.Fprintf(w, "\nRecords: %d\n", total)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
	} else {
		fmt.Fprintln(w, "\nValidation FAILED.")
	}
	return allPassed
}

func validateLabels(records []domain.AccidentRecord, g *domain.Gazetteer) *phase {
	p := &phase{name: "Labels"}
	aircraft, phases, weather := g.AircraftLabels(), g.PhaseLabels(), g.WeatherLabels()

	for _, r := range records {
		if !slices.Contains(aircraft, r.AircraftCategory) {
			p.errorf("%s: aircraft_category %q is not a known label", r.ID, r.AircraftCategory)
		}
		if !slices.Contains(phases, r.PhaseClean) {
			p.errorf("%s: phase_clean %q is not a known label", r.ID, r.PhaseClean)
		}
		if !slices.Contains(weather, r.WeatherCondition) {
			p.errorf("%s: weather_condition %q is not a known label", r.ID, r.WeatherCondition)
		}
		if r.WeatherAdverse != g.IsAdverse(r.WeatherCondition) {
			p.errorf("%s: weather_adverse=%t disagrees with %q", r.ID, r.WeatherAdverse, r.WeatherCondition)
		}
	}
	return p
}

func validateTime(records []domain.AccidentRecord) *phase {
	p := &phase{name: "Time"}
	for _, r := range records {
		if r.TimeHHMM == nil {
			if r.Hour != nil {
				p.errorf("%s: hour=%d without time_hhmm", r.ID, *r.Hour)
			}
			continue
		}
		if !hhmmRe.MatchString(*r.TimeHHMM) {
			p.errorf("%s: time_hhmm %q is not a valid HH:MM", r.ID, *r.TimeHHMM)
			continue
		}
		hour, _ := strconv.Atoi((*r.TimeHHMM)[:2])
		if r.Hour == nil || *r.Hour != hour {
			p.errorf("%s: hour %s disagrees with time_hhmm %q", r.ID, intStr(r.Hour), *r.TimeHHMM)
		}
	}
	return p
}

func validateDates(records []domain.AccidentRecord) *phase {
	p := &phase{name: "Dates"}
	for _, r := range records {
		if r.DateParsed == nil {
			if r.Year != nil || r.Decade != nil {
				p.errorf("%s: year/decade set without date_parsed", r.ID)
			}
			continue
		}
		d := *r.DateParsed
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
			p.errorf("%s: date_parsed %s carries a time of day", r.ID, d)
		}
		if r.Year == nil || *r.Year != d.Year() {
			p.errorf("%s: year %s disagrees with date_parsed %d", r.ID, intStr(r.Year), d.Year())
		}
		if r.Decade == nil || *r.Decade != d.Year()/10*10 {
			p.errorf("%s: decade %s disagrees with date_parsed %d", r.ID, intStr(r.Decade), d.Year())
		}
	}
	return p
}

func validateCounts(records []domain.AccidentRecord) *phase {
	p := &phase{name: "Counts"}
	for _, r := range records {
		counts := map[string]*int{
			"fatalities_total":      r.FatalitiesTotal,
			"fatalities_passengers": r.FatalitiesPassengers,
			"fatalities_crew":       r.FatalitiesCrew,
			"aboard_total":          r.AboardTotal,
			"aboard_passengers":     r.AboardPassengers,
			"aboard_crew":           r.AboardCrew,
		}
		for _, name := range slices.Sorted(maps.Keys(counts)) {
			if v := counts[name]; v != nil && *v < 0 {
				p.errorf("%s: %s is negative (%d)", r.ID, name, *v)
			}
		}

		wantFatal := r.FatalitiesTotal != nil && *r.FatalitiesTotal > 0
		if r.IsFatal != wantFatal {
			p.errorf("%s: is_fatal=%t disagrees with fatalities_total %s", r.ID, r.IsFatal, intStr(r.FatalitiesTotal))
		}

		if r.FatalitiesTotal != nil && r.AboardTotal != nil && *r.AboardTotal > 0 {
			want := float64(*r.FatalitiesTotal) / float64(*r.AboardTotal)
			if r.FatalityRatio == nil || math.Abs(*r.FatalityRatio-want) > 1e-9 {
				p.errorf("%s: fatality_ratio should be %g", r.ID, want)
			}
		} else if r.FatalityRatio != nil {
			p.errorf("%s: fatality_ratio set without a usable aboard_total", r.ID)
		}
	}
	return p
}

func validateLocation(records []domain.AccidentRecord, g *domain.Gazetteer) *phase {
	p := &phase{name: "Location"}
	for _, r := range records {
		switch {
		case r.LocationCountry == nil && r.LocationCountryCanonical != nil:
			p.errorf("%s: canonical country without location_country", r.ID)
		case r.LocationCountry != nil && r.LocationCountryCanonical == nil:
			p.errorf("%s: location_country %q has no canonical form", r.ID, *r.LocationCountry)
		case r.LocationCountry != nil && *r.LocationCountryCanonical != g.CanonicalCountry(*r.LocationCountry):
			p.errorf("%s: canonical country %q should be %q", r.ID, *r.LocationCountryCanonical, g.CanonicalCountry(*r.LocationCountry))
		}
		if r.LocationState != nil && r.LocationCity == nil {
			p.errorf("%s: location_state without location_city", r.ID)
		}
	}
	return p
}

func validateIDs(records []domain.AccidentRecord) *phase {
	p := &phase{name: "IDs"}
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if !strings.HasPrefix(r.ID, "crash-") || len(r.ID) != len("crash-")+16 {
			p.errorf("record %d: malformed id %q", i, r.ID)
		}
		if first, dup := seen[r.ID]; dup {
			p.errorf("record %d: id %s duplicates record %d", i, r.ID, first)
			continue
		}
		seen[r.ID] = i
	}
	return p
}

func intStr(v *int) string {
	if v == nil {
		return "null"
	}
	return strconv.Itoa(*v)
}
