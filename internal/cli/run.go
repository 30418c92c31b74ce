package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/output"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/pkg/version"
)

var (
	runInput     string
	runOutput    string
	runDelimiter string
	runWorkbook  string
	runPublish   bool
	runConnStr   string
	runSchema    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute every report and write them to the output directory",
	Long: `Read the sales export, derive calendar and status features, compute
every report and write each one as a CSV file in the output directory.
Existing files are overwritten.

Optionally also write all reports to one XLSX workbook, and publish them to
PostgreSQL.

Example:
  salesreport run
  salesreport run --input exports/2024.csv --output pbix_outputs
  salesreport run --workbook reports.xlsx --publish --connection postgres://localhost/bi`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "",
		"path to the sales export (default: Da_Cleaned.csv)")
	runCmd.Flags().StringVar(&runOutput, "output", "",
		"directory the report CSV files are written to (default: pbix_outputs)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "",
		"field separator of the input file (default: ,)")
	runCmd.Flags().StringVar(&runWorkbook, "workbook", "",
		"also write every report to this XLSX workbook")
	runCmd.Flags().BoolVar(&runPublish, "publish", false,
		"also publish the reports to PostgreSQL")
	runCmd.Flags().StringVar(&runConnStr, "connection", "",
		"PostgreSQL connection string used when publishing")
	runCmd.Flags().StringVar(&runSchema, "schema", "",
		"schema the reports are published into (default: salesreport)")
}

// applyRunFlags overrides config with the run and publish flags.
func applyRunFlags() {
	if runInput != "" {
		cfg.Input = runInput
	}
	if runOutput != "" {
		cfg.OutputDir = runOutput
	}
	if runDelimiter != "" {
		cfg.Delimiter = runDelimiter
	}
	if runWorkbook != "" {
		cfg.Workbook = runWorkbook
	}
	if runPublish {
		cfg.Publish.Enabled = true
	}
	if runConnStr != "" {
		cfg.Publish.Connection = runConnStr
	}
	if runSchema != "" {
		cfg.Publish.Schema = runSchema
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// loadDataset reads the configured export and logs its cohorts.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := dataset.Load(ctx, cfg.Input, dataset.Options{Delimiter: cfg.DelimiterRune()})
	if err != nil {
		return nil, err
	}

	stats := ds.Stats()
	logging.Info().
		Str("input", cfg.Input).
		Int("rows", stats.Rows).
		Int("delivered", stats.Delivered).
		Int("cancelled", stats.Cancelled).
		Int("returned", stats.Returned).
		Msg("Loaded sales export")
	if stats.DateFailures > 0 || stats.TimeFailures > 0 {
		logging.Warn().
			Int("date_failures", stats.DateFailures).
			Int("time_failures", stats.TimeFailures).
			Msg("Some dates or times could not be parsed")
	}
	logging.Debug().
		Int("statuses", stats.DistinctStatus).
		Strs("columns", ds.Columns).
		Msg("Dataset details")

	return ds, nil
}

// publish loads tables into PostgreSQL and records the run.
func publish(ctx context.Context, ds *dataset.Dataset, tables []*report.Table) error {
	pool, err := db.Connect(ctx, cfg.Publish.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	_, err = db.Publish(ctx, pool, cfg.Publish.Schema, tables, db.Run{
		Input:   cfg.Input,
		Rows:    ds.Len(),
		Version: version.Short(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish reports: %w", err)
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	applyRunFlags()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := output.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}

	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	tables := report.BuildAll(ds)

	if _, err := output.WriteAll(cfg.OutputDir, tables); err != nil {
		return err
	}

	if cfg.Workbook != "" {
		if err := output.WriteWorkbook(cfg.Workbook, tables); err != nil {
			return err
		}
		logging.Info().
			Str("workbook", cfg.Workbook).
			Msg("Wrote workbook")
	}

	if cfg.Publish.Enabled {
		if err := publish(ctx, ds, tables); err != nil {
			return err
		}
	}

	logging.Info().
		Str("output_dir", cfg.OutputDir).
		Int("tables", len(tables)).
		Msg("All tables exported")
	return nil
}
