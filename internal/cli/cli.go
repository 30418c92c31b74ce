//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesreport.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/config"
	"github.com/pgEdge/pgedge-salesreport/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesreport",
		Short: "Turn a sales export into pre-aggregated BI tables",
		Long: `salesreport reads a transactional sales export, derives calendar and
status features for every line item, and writes a fixed set of aggregated
tables (KPIs, time series, product, category, geography, customer and
revenue leakage) as CSV files ready for a BI dashboard.

The tables can also be written to a single XLSX workbook and published to
PostgreSQL.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesreport.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(profilesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List the reports written by run",
	Long: `List every report table in the order run writes them, with the file
name each is written to inside the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Reports:")
		cmd.Println()
		for _, def := range report.All() {
			cmd.Printf("  %-24s %s\n", def.File, def.Description)
		}
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available activity profiles",
	Long: `List the activity profiles generate can use to shape when synthetic
orders are placed over the day and week.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available activity profiles:")
		cmd.Println()
		for _, name := range profiles.List() {
			p, err := profiles.Get(name, "")
			if err != nil {
				continue
			}
			cmd.Printf("  %-15s - %s\n", name, p.Description())
		}
	},
}
