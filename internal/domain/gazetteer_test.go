package domain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGazetteer_LabelSets(t *testing.T) {
	g := DefaultGazetteer()

	assert.Len(t, g.USStates, 50)
	assert.Len(t, g.USStateAbbrevs, 50)
	assert.Equal(t, []string{
		"Helicopter", "Glider", "Amphibian/Seaplane", "Military", "Jet",
		"Turboprop", "Piston/Prop", "Vintage/Early", "Other/Unmapped", "Unknown",
	}, g.AircraftLabels())
	assert.Equal(t, []string{
		"Ground/Taxi", "Takeoff", "Initial climb", "Climb", "Cruise",
		"Descent", "Approach", "Landing", "Go-around", "Unknown",
	}, g.PhaseLabels())
	assert.Equal(t, []string{
		"Storm/Thunderstorm", "Fog/Low visibility", "Snow/Icy surface",
		"Icing (in-flight)", "Rain", "Wind/Wind shear", "Turbulence",
		"Good/Visual conditions", "None/Not mentioned",
	}, g.WeatherLabels())
}

func TestDefaultGazetteer_KeywordsLowerCase(t *testing.T) {
	g := DefaultGazetteer()
	for _, rules := range [][]Rule{g.AircraftRules, g.PhaseRules, g.WeatherRules} {
		for _, r := range rules {
			for _, kw := range r.Keywords {
				assert.Equal(t, strings.ToLower(kw), kw, "rule %s", r.Label)
			}
		}
	}
}

func TestDefaultGazetteer_Independent(t *testing.T) {
	a := DefaultGazetteer()
	b := DefaultGazetteer()
	a.AircraftRules[0].Keywords[0] = "changed"
	a.CountryAliases["USA"] = "changed"

	assert.Equal(t, "helicopter", b.AircraftRules[0].Keywords[0])
	assert.Equal(t, "United States", b.CountryAliases["USA"])
}

func TestGazetteer_Lookups(t *testing.T) {
	g := DefaultGazetteer()

	assert.True(t, g.IsUSState("FL"))
	assert.True(t, g.IsUSState("New Mexico"))
	assert.False(t, g.IsUSState("fl"))
	assert.True(t, g.IsCountry("Soviet Union"))
	assert.False(t, g.IsCountry("Atlantis"))
	assert.True(t, g.ContainsCountry("near the coast of France"))
	assert.True(t, g.IsAdverse("Rain"))
	assert.False(t, g.IsAdverse("Good/Visual conditions"))
	assert.False(t, g.IsAdverse("None/Not mentioned"))
}

func TestGazetteer_CanonicalCountry(t *testing.T) {
	g := DefaultGazetteer()

	tests := []struct {
		in   string
		want string
	}{
		{"USA", "United States"},
		{"U.S.A.", "United States"},
		{"England", "United Kingdom"},
		{"Russia", "Russian Federation"},
		{"Soviet Union", "Russia"},
		{"France", "France"},
		{"Off the coast of Japan", "Off the coast of Japan"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CanonicalCountry(tt.in))
		})
	}
}

func TestLoadGazetteer(t *testing.T) {
	t.Run("empty file keeps defaults", func(t *testing.T) {
		g, err := LoadGazetteer(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultGazetteer(), g)
	})

	t.Run("section replaces defaults wholesale", func(t *testing.T) {
		doc := `
aircraft_categories:
  - label: Jet
    keywords: [BOEING, "Airbus"]
  - label: Balloon
    keywords: [balloon]
`
		g, err := LoadGazetteer(strings.NewReader(doc))
		require.NoError(t, err)

		assert.Equal(t, []string{"Jet", "Balloon", "Other/Unmapped", "Unknown"}, g.AircraftLabels())
		assert.Equal(t, []string{"boeing", "airbus"}, g.AircraftRules[0].Keywords)
		assert.Equal(t, "Jet", CategorizeAircraft("Boeing 247", g))
		assert.Equal(t, "Other/Unmapped", CategorizeAircraft("Bell 206", g))
		assert.Len(t, g.USStates, 50, "untouched sections keep defaults")
	})

	t.Run("country override feeds the resolver", func(t *testing.T) {
		g, err := LoadGazetteer(strings.NewReader("countries: [Atlantis]\n"))
		require.NoError(t, err)

		loc := ResolveLocation("Poseidonis, Atlantis", g)
		assert.Equal(t, "Atlantis", *loc.Country)
		assert.False(t, g.IsCountry("France"))
	})

	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DefaultGazetteer().WriteYAML(&buf))

		g, err := LoadGazetteer(&buf)
		require.NoError(t, err)
		assert.Equal(t, DefaultGazetteer(), g)
	})
}

func TestLoadGazetteer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown section",
			doc:     "airports: [JFK]\n",
			wantErr: "decode gazetteer",
		},
		{
			name:    "rule without keywords",
			doc:     "flight_phases:\n  - label: Hover\n",
			wantErr: "at least one keyword",
		},
		{
			name:    "rule without label",
			doc:     "flight_phases:\n  - keywords: [hover]\n",
			wantErr: "label is required",
		},
		{
			name:    "empty keyword",
			doc:     "weather_conditions:\n  - label: Dust\n    keywords: [\"\"]\n",
			wantErr: "is empty",
		},
		{
			name:    "punctuation-only keyword",
			doc:     "weather_conditions:\n  - label: Dust\n    keywords: [\"/\"]\n",
			wantErr: "no letters or digits",
		},
		{
			name:    "adverse label not a weather rule",
			doc:     "adverse_weather: [Sandstorm]\n",
			wantErr: "not a weather condition",
		},
		{
			name:    "malformed yaml",
			doc:     "us_states: [Alabama\n",
			wantErr: "decode gazetteer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGazetteer(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
