package table

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawCSV = `Date,Time,Location,AC Type,Fatalities,Summary
"September 17, 1908",c 17:15,"Fort Myer, Virginia",Wright Flyer III,1   (passengers:1  crew:0),Propeller separated during descent.
"March 27, 1977",NA,"Tenerife, Canary Islands, Spain",Boeing B-747-206B,?,Takeoff in fog.
`

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"raw.json", FormatJSON},
		{"RAW.JSON", FormatJSON},
		{"raw.csv", FormatCSV},
		{"raw", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForPath(tt.path))
		})
	}
}

func TestReadCSV(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(rawCSV), discardLogger())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, domain.Field{Name: "Date", Value: "September 17, 1908"}, recs[0][0])
	assert.Equal(t, domain.Field{Name: "AC Type", Value: "Wright Flyer III"}, recs[0][3])
	assert.Equal(t, "NA", recs[1][1].Value, "cells are kept verbatim")
	assert.Equal(t, "?", recs[1][4].Value)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "", wantErr: ErrNoRecords.Error()},
		{name: "header only", input: "Date,Location\n", wantErr: ErrNoRecords.Error()},
		{name: "only ragged rows", input: "Date,Location\n1977\n1978,Paris,France\n", wantErr: ErrNoRecords.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), discardLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadCSV_SkipsMalformedRows(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	recs, err := ReadCSV(strings.NewReader("Date,Time\n1908,1718\n1909,1719,extra\n1910,0700\n1911\n"), logger)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, domain.RawRecord{{Name: "Date", Value: "1908"}, {Name: "Time", Value: "1718"}}, recs[0])
	assert.Equal(t, domain.RawRecord{{Name: "Date", Value: "1910"}, {Name: "Time", Value: "0700"}}, recs[1])

	assert.Contains(t, logs.String(), "skipping csv row with wrong field count")
	assert.Contains(t, logs.String(), "line=3")
	assert.Contains(t, logs.String(), "line=5")
	assert.Contains(t, logs.String(), "skipped=2")
}

func TestReadCSV_StrayQuoteKept(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader("Location,Summary\nMiami,The \"Clipper\" stalled\n"), discardLogger())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, `The "Clipper" stalled`, recs[0][1].Value)
}

func TestReadJSON(t *testing.T) {
	recs, err := ReadJSON(strings.NewReader(`[{"Date":"1977-03-27","Aboard":248},{"ac_type":"Bell 206"}]`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, domain.RawRecord{{Name: "Aboard", Value: "248"}, {Name: "Date", Value: "1977-03-27"}}, recs[0])

	_, err = ReadJSON(strings.NewReader(`[{"Date":"x"},{"Summary":{"nested":true}}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")

	_, err = ReadJSON(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), "xlsx", discardLogger())
	require.Error(t, err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func normalizeAll(t *testing.T, raws []domain.RawRecord) []domain.AccidentRecord {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	e := domain.NewEngine(nil)
	out := make([]domain.AccidentRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, e.Normalize(r))
	}
	return out
}

func TestWriteCSV(t *testing.T) {
	raws, err := ReadCSV(strings.NewReader(rawCSV), discardLogger())
	require.NoError(t, err)
	recs := normalizeAll(t, raws)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, domain.TableColumns(recs), header)
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %s missing", name)
		return -1
	}

	assert.Equal(t, "1908-09-17", rows[1][col("date_parsed")])
	assert.Equal(t, "17:15", rows[1][col("time_hhmm")])
	assert.Equal(t, "Vintage/Early", rows[1][col("aircraft_category")])
	assert.Equal(t, "Wright Flyer III", rows[1][col("aircraft_type")])
	assert.Equal(t, "", rows[2][col("time_hhmm")])
	assert.Equal(t, "NA", rows[2][col("time")])
	assert.Equal(t, "Fog/Low visibility", rows[2][col("weather_condition")])
	assert.Equal(t, "true", rows[2][col("weather_adverse")])
}

func TestWriteCSV_Empty(t *testing.T) {
	assert.ErrorIs(t, WriteCSV(&bytes.Buffer{}, nil), ErrNoRecords)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	raws, err := ReadCSV(strings.NewReader(rawCSV), discardLogger())
	require.NoError(t, err)
	recs := normalizeAll(t, raws)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, recs, FormatJSON))

	got, err := ReadAccidentJSON(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(recs))
	for i := range recs {
		assert.Equal(t, recs[i].ID, got[i].ID)
		assert.Equal(t, recs[i].AircraftCategory, got[i].AircraftCategory)
		assert.Equal(t, recs[i].FatalitiesTotal, got[i].FatalitiesTotal)
		assert.Equal(t, recs[i].Source, got[i].Source)
		assert.True(t, recs[i].ProcessedAt.Equal(got[i].ProcessedAt))
	}
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
