// Package main provides the CLI entry point for attendsheet.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/attendsheet-go/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	sourcePath string
	year       int
	verbose    bool
	jsonOut    bool
	pretty     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "attendsheet",
	Short: "Query a weekly attendance sheet",
	Long: `attendsheet reads a semi-structured attendance sheet (people in rows,
Saturday-to-Friday week blocks in columns), reconstructs the calendar date of
every day column and answers per-person questions about days worked and pay.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if sourcePath != "" {
			cfg.Source.Path = sourcePath
		}
		if cmd.Flags().Changed("year") {
			cfg.Calendar.Year = year
		}

		logger, err = newLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file path")
	pf.StringVarP(&sourcePath, "source", "s", "", "Sheet file (.xlsx, .xls, .csv); overrides source.path")
	pf.IntVar(&year, "year", 0, "Year the first day column belongs to (default: current year)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&jsonOut, "json", false, "Print results as JSON")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		loadCmd,
		weeksCmd,
		currentCmd,
		daysCmd,
		salaryCmd,
		meCmd,
		selectCmd,
		sampleCmd,
		serveCmd,
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
