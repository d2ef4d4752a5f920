// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cms-export CLI, which converts CMS
// CSV exports into per-collection JSON documents for a static front end.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/cms-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts every CSV file in the input directory when run without
// a subcommand.
var rootCmd = &cobra.Command{
	Use:   "cms-export [files...]",
	Short: "Convert CMS CSV exports into per-collection JSON documents",
	Long: `cms-export reads the CSV files exported from the CMS, drops archived and
draft rows, maps the known columns of each collection (testimonials, schools,
ambassadors, teachers) into a normalized schema, orders items by their order
field, and writes one document per file to data/cms-<collection>.json.

With no arguments every .csv file in the input directory is converted. Named
files are converted instead when given. A file that fails to convert is
reported and the remaining files are still processed.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cms-export.yaml or ~/.config/cms-export/cms-export.yaml)")
	rootCmd.PersistentFlags().String("schemas", "", "YAML file with extra or overriding collection schemas")
	bindFlag("schemas_file", rootCmd.PersistentFlags().Lookup("schemas"))

	rootCmd.Flags().String("dir", types.DefaultInputDir, "directory scanned for input files")
	rootCmd.Flags().String("ext", types.DefaultInputExt, "extension of input files")
	rootCmd.Flags().String("out-dir", types.DefaultOutputDir, "directory for output documents")
	rootCmd.Flags().String("prefix", types.DefaultOutputPrefix, "prefix of output file names")
	rootCmd.Flags().String("format", string(types.FormatJSON), "output format: json or yaml")
	rootCmd.Flags().Bool("debug", false, "print per-file and skipped-row details")
	rootCmd.Flags().Bool("strict", false, "exit non-zero when any file fails or no input files are found")

	bindFlag("input_dir", rootCmd.Flags().Lookup("dir"))
	bindFlag("input_ext", rootCmd.Flags().Lookup("ext"))
	bindFlag("output_dir", rootCmd.Flags().Lookup("out-dir"))
	bindFlag("output_prefix", rootCmd.Flags().Lookup("prefix"))
	bindFlag("format", rootCmd.Flags().Lookup("format"))
	bindFlag("debug", rootCmd.Flags().Lookup("debug"))
	bindFlag("strict", rootCmd.Flags().Lookup("strict"))
}

// bindFlag ties a config key to a flag. An explicitly set flag overrides the
// config file and environment.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cms-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cms-export"))
		}
	}

	viper.SetEnvPrefix("CMS_EXPORT")
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
