// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cms-export/internal/convert"
	"github.com/pdiddy/cms-export/pkg/types"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := converterConfig()
	if err != nil {
		return err
	}
	schemas, err := schemaTable(cfg)
	if err != nil {
		return err
	}

	c := convert.New(cfg, schemas, cmd.OutOrStdout())

	var report types.RunReport
	if len(args) > 0 {
		report = c.ConvertPaths(args)
	} else {
		report, err = c.RunAll(cfg.InputDir)
		if errors.Is(err, convert.ErrNoInputFiles) {
			if cfg.Strict {
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}
	}

	if cfg.Strict && report.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", len(report.Failed))
	}
	return nil
}

// converterConfig assembles the run configuration from flags, the config
// file and CMS_EXPORT_* environment variables.
func converterConfig() (types.ConverterConfig, error) {
	var cfg types.ConverterConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// schemaTable returns the built-in schemas merged with the optional schemas file.
func schemaTable(cfg types.ConverterConfig) (convert.SchemaTable, error) {
	schemas := convert.DefaultSchemas()
	if cfg.SchemasFile == "" {
		return schemas, nil
	}
	extra, err := convert.LoadSchemas(cfg.SchemasFile)
	if err != nil {
		return nil, err
	}
	return schemas.Merge(extra), nil
}
