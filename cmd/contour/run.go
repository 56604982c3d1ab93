package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/contour/batch"
	"github.com/tsawler/contour/layout"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process all PDFs in the input directory",
	Long: `Run scans the input directory for PDF files and writes one outline JSON
file per input to the output directory, using the same basename.

Files are processed on parallel workers with a per-file timeout. A file
that fails to parse or times out is logged and skipped; it never aborts
the batch or changes the exit code. The exit code is non-zero only for
startup failures such as a missing input directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg := batch.DefaultConfig()
		cfg.InputDir = viper.GetString("input")
		cfg.OutputDir = viper.GetString("output")
		cfg.Workers = viper.GetInt("workers")
		cfg.FileTimeout = viper.GetDuration("timeout")

		// The classifier weights are a calibration surface; expose the
		// acceptance threshold without requiring a full config file
		if viper.IsSet("threshold") {
			classifier := layout.DefaultClassifierConfig()
			classifier.AcceptThreshold = viper.GetFloat64("threshold")
			cfg.Options.Classifier = classifier
		}

		runner := batch.NewRunner(cfg, log)
		result, err := runner.Run(context.Background())
		if err != nil {
			return err
		}

		if result.HasFailures() {
			log.Warn("some files were skipped", "failed", result.Failed)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("input", "/app/input", "directory scanned for PDF files")
	runCmd.Flags().String("output", "/app/output", "directory receiving outline JSON files")
	runCmd.Flags().Int("workers", 4, "number of files processed concurrently")
	runCmd.Flags().Duration("timeout", 60*time.Second, "per-file processing time limit")
	runCmd.Flags().Float64("threshold", 0.4, "minimum heading acceptance score")

	viper.BindPFlag("input", runCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
	viper.BindPFlag("timeout", runCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("threshold", runCmd.Flags().Lookup("threshold"))

	rootCmd.AddCommand(runCmd)
}
