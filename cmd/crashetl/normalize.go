package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/couchcryptid/crash-data-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/crash-data-etl/internal/adapter/table"
	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"github.com/couchcryptid/crash-data-etl/internal/observability"
	"github.com/couchcryptid/crash-data-etl/internal/pipeline"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a raw accident table",
		Long: `Normalize every record of a raw accident table.

Input is a CSV file with a header row, or a JSON array of flat objects when
the file name ends in .json. Output is either the flat CSV table (source
columns followed by derived columns) or a JSON array of records.

Examples:
  crashetl normalize --in raw.csv --out clean.csv
  crashetl normalize --in raw.json --out clean.json --format json
  crashetl normalize --in raw.csv --out - --processed-at 2024-05-01T00:00:00Z
  MAPBOX_TOKEN=... crashetl normalize --in raw.csv --out clean.csv --geocode`,
		Args: cobra.NoArgs,
		RunE: runNormalize,
	}

	cmd.Flags().String("in", "", "raw input file (.csv or .json)")
	cmd.Flags().String("out", "-", "output file, - for stdout")
	cmd.Flags().String("format", table.FormatCSV, "output format: csv or json")
	cmd.Flags().Int("workers", 0, "concurrent workers, 0 for one per CPU")
	cmd.Flags().String("processed-at", "", "fixed RFC 3339 processed_at timestamp for reproducible output")
	cmd.Flags().Bool("geocode", false, "attach coordinates via Mapbox (requires MAPBOX_TOKEN)")
	cmd.Flags().Duration("geocode-timeout", 5*time.Second, "Mapbox request timeout")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	workers, _ := cmd.Flags().GetInt("workers")
	processedAt, _ := cmd.Flags().GetString("processed-at")
	geocode, _ := cmd.Flags().GetBool("geocode")
	geocodeTimeout, _ := cmd.Flags().GetDuration("geocode-timeout")

	if format != table.FormatCSV && format != table.FormatJSON {
		return fmt.Errorf("--format must be %q or %q, got %q", table.FormatCSV, table.FormatJSON, format)
	}

	logger := cliLogger(cmd)

	if processedAt != "" {
		ts, err := time.Parse(time.RFC3339, processedAt)
		if err != nil {
			return fmt.Errorf("--processed-at: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(ts.UTC()))
		defer domain.SetClock(nil)
	}

	g, err := loadGazetteer(cmd)
	if err != nil {
		return err
	}

	raws, err := readTable(in, logger)
	if err != nil {
		return err
	}

	metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
	var geocoder domain.Geocoder
	if geocode {
		token := sharedcfg.EnvOrDefault("MAPBOX_TOKEN", "")
		if token == "" {
			return errors.New("--geocode requires MAPBOX_TOKEN")
		}
		client := mapbox.NewClient(token, geocodeTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, time.Hour, metrics)
	}

	transformer := pipeline.NewTransformer(domain.NewEngine(g), geocoder, logger, metrics)
	start := time.Now()
	records, err := pipeline.TransformAll(cmd.Context(), transformer, raws, workers)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	if err := writeTable(cmd.OutOrStdout(), out, records, format); err != nil {
		return err
	}

	logger.Info("normalization complete",
		"input", in,
		"records", len(records),
		"duration", time.Since(start).String(),
	)
	logSummary(logger, records)
	return nil
}

func readTable(path string, logger *slog.Logger) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	raws, err := table.Read(f, table.FormatForPath(path), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raws, nil
}

func writeTable(stdout io.Writer, path string, records []domain.AccidentRecord, format string) error {
	if path == "-" || path == "" {
		return table.Write(stdout, records, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := table.Write(f, records, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// logSummary reports how often each derived field stayed empty and each
// classifier fell back, the signal for source-format drift.
func logSummary(logger *slog.Logger, records []domain.AccidentRecord) {
	nulls := map[string]int{}
	fallbacks := map[string]int{}
	for _, rec := range records {
		for _, f := range domain.NullFields(rec) {
			nulls[f]++
		}
		for _, f := range domain.FallbackLabels(rec) {
			fallbacks[f]++
		}
	}

	for _, f := range sortedKeys(nulls) {
		logger.Info("derived field empty", "field", f, "records", nulls[f])
	}
	for _, f := range sortedKeys(fallbacks) {
		logger.Info("classifier fallback", "field", f, "records", fallbacks[f])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
