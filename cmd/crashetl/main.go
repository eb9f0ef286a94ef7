// Command crashetl runs the accident-record normalization engine over whole
// files. It shares the engine and gazetteer with the streaming service.
//
// Usage:
//
//	crashetl normalize --in data/mock/accident_records.json --out clean.csv
//	crashetl normalize --in raw.csv --out clean.json --format json --workers 8
//	crashetl gazetteer > gazetteer.yaml
//	crashetl validate --in clean.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"github.com/couchcryptid/crash-data-etl/internal/observability"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crashetl",
		Short: "Normalize and classify aircraft accident records",
		Long: `crashetl turns scraped aircraft-accident tables into analysis-ready records.

Each record gets canonical column names, a parsed date and HH:MM time,
decomposed fatality and aboard counts, a city/state/country split and
keyword-based aircraft, flight phase and weather labels.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("gazetteer", "", "YAML file overriding sections of the built-in gazetteer")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(normalizeCmd())
	root.AddCommand(gazetteerCmd())
	root.AddCommand(validateCmd())
	return root
}

// loadGazetteer returns the built-in gazetteer or the one named by --gazetteer.
func loadGazetteer(cmd *cobra.Command) (*domain.Gazetteer, error) {
	path, _ := cmd.Flags().GetString("gazetteer")
	if path == "" {
		return domain.DefaultGazetteer(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer: %w", err)
	}
	defer f.Close()

	g, err := domain.LoadGazetteer(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// cliLogger logs to stderr so stdout stays free for command output.
func cliLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return observability.NewLoggerTo(cmd.ErrOrStderr(), level, "text")
}
