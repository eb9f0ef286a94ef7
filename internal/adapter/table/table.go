// Package table reads raw accident tables from CSV or JSON files and writes
// normalized records back out for the batch CLI.
package table

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Output formats accepted by Write.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrNoRecords is returned when an input table has a header but no rows.
var ErrNoRecords = errors.New("table has no records")

// loadOptions keeps every cell as the verbatim string from the file. Type
// detection and NaN substitution would rewrite values such as "NA" or "?".
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	}
}

// FormatForPath picks the input format from a file extension.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Read loads raw records in the given format.
func Read(r io.Reader, format string, logger *slog.Logger) ([]domain.RawRecord, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r, logger)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// ReadCSV loads a CSV table with a header row. Header cells are kept as
// written; the engine canonicalizes them. Duplicate or blank headers are
// renamed by the dataframe loader so every cell keeps a column. Rows whose
// field count differs from the header, or that fail to parse, are logged and
// skipped.
func ReadCSV(r io.Reader, logger *slog.Logger) ([]domain.RawRecord, error) {
	rows, err := readRows(r, logger)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrNoRecords
	}

	df := dataframe.LoadRecords(rows, loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	records := df.Records()
	header, body := records[0], records[1:]
	out := make([]domain.RawRecord, 0, len(body))
	for _, cells := range body {
		rec := make(domain.RawRecord, len(header))
		for i, name := range header {
			rec[i] = domain.Field{Name: name, Value: cells[i]}
		}
		out = append(out, rec)
	}
	return out, nil
}

// readRows returns the header followed by every row with a matching field
// count.
func readRows(r io.Reader, logger *slog.Logger) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	rows := [][]string{header}
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		switch {
		case errors.As(err, &perr):
			logger.Warn("skipping malformed csv row", "line", perr.StartLine, "error", perr.Err)
			skipped++
			continue
		case err != nil:
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if len(row) != len(header) {
			line, _ := cr.FieldPos(0)
			logger.Warn("skipping csv row with wrong field count",
				"line", line,
				"fields", len(row),
				"want", len(header),
			)
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		logger.Warn("csv rows skipped", "skipped", skipped, "kept", len(rows)-1)
	}
	return rows, nil
}

// ReadJSON loads a JSON array of flat objects, the same shape the streaming
// service consumes one message at a time.
func ReadJSON(r io.Reader) ([]domain.RawRecord, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode json table: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoRecords
	}

	out := make([]domain.RawRecord, 0, len(items))
	for i, item := range items {
		rec, err := domain.ParseRawEvent(domain.RawEvent{Value: item})
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Write stores normalized records in the given format.
func Write(w io.Writer, records []domain.AccidentRecord, format string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCSV writes the flat table: the union of source columns in sorted
// order followed by the derived columns.
func WriteCSV(w io.Writer, records []domain.AccidentRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	columns := domain.TableColumns(records)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, columns)
	for _, rec := range records {
		cells := rec.Row()
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = cells[col]
		}
		rows = append(rows, line)
	}

	df := dataframe.LoadRecords(rows, loadOptions()...)
	if df.Err != nil {
		return fmt.Errorf("build output table: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(w io.Writer, records []domain.AccidentRecord) error {
	if records == nil {
		records = []domain.AccidentRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ReadAccidentJSON loads records previously written by WriteJSON.
func ReadAccidentJSON(r io.Reader) ([]domain.AccidentRecord, error) {
	var out []domain.AccidentRecord
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}
