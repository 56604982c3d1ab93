// Package main is the entry point for the contour CLI, a batch PDF
// outline extractor.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the contour CLI.
var rootCmd = &cobra.Command{
	Use:   "contour",
	Short: "Extract structured outlines from PDF documents",
	Long: `contour extracts a structured outline (title plus H1/H2/H3 headings with
page numbers) from PDF documents and writes one JSON file per input.

Extraction is heuristic and CPU-only: a document-wide style profile
establishes the body text baseline, and weighted rules over font size,
boldness, numbering patterns, and whitespace isolation assign heading
levels. No network access or external models are used.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./contour.yaml or ~/.config/contour/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("contour")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "contour"))
		}
	}

	viper.SetEnvPrefix("CONTOUR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
