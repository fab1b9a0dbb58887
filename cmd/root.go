/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *Config

// Logger is replaced once flags are parsed.
var Logger = zap.NewNop()

var (
	// cfgFile is set from the --config flag.
	cfgFile string
	// noColor toggles ANSI color output off when set via --no-color flag.
	noColor     bool
	logLevel    string
	outDir      string
	resolution  float64
	metricsFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "partgen",
	Short: "Partgen builds printable model rocket parts as STL files",
	Long: `Partgen builds printable parts from a handful of dimensions: a spring clip
that grips the edge of a print bed, and a rocket tail cone with a stabilizer
of straight or curved fins and bayonet latch slots.

Dimensions come from config files, PARTGEN_* environment variables and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}

		// Load config only once; subsequent subcommands in the chain need not reload
		if Cfg == nil {
			var (
				cfg *Config
				err error
			)
			if cfgFile != "" {
				cfg, err = LoadConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
				}
			} else {
				cfg, err = LoadMergedConfig()
				if err != nil {
					return fmt.Errorf("unable to load config: %w", err)
				}
			}
			Cfg = cfg
		}
		applyFlags(cmd, Cfg)
		if err := Cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := newLogger(Cfg.LogLevel)
		if err != nil {
			return err
		}
		Logger = logger

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = Logger.Sync()
	},
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = outDir
	}
	if flags.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config.Level = lvl
	config.Encoding = "console"
	config.Sampling = nil
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = ""

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (partgen.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out-dir", "o", ".", "directory STL files are written to")
	rootCmd.PersistentFlags().Float64Var(&resolution, "resolution", 0.25, "mesh cell size in mm; smaller is finer and slower")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after a build")
}
