package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"snpview/internal/app"
	"snpview/internal/config"
	"snpview/internal/export"
)

func newExportCmd() *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:   "export <file.sNp> <columns> <out>",
		Short: "Write the chosen matrix entries of one file as CSV or NDJSON",
		Long: `Export the samples of the given columns, e.g.

  snpview export dut.s2p "[1,1],[2,1]" out.csv --where "db < -10"

The format follows the extension of <out> (.json/.ndjson for NDJSON, otherwise CSV)
unless --export is given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Files = []string{args[0]}
			cfg.Columns = args[1]
			cfg.ExportOut = args[2]
			cfg.NoSession = true
			if cfg.ExportFormat == "" {
				cfg.ExportFormat = "csv"
				if ext := strings.ToLower(filepath.Ext(args[2])); ext == ".json" || ext == ".ndjson" {
					cfg.ExportFormat = "json"
				}
			}
			if err := cfg.Finish(); err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(cfg.ExportFormat)
			if err != nil {
				return err
			}
			n, err := a.Export(cfg.ExportOut, f, a.Criteria())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d samples to %s\n", n, cfg.ExportOut)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.ExportFormat, "export", "", "csv|json (default: from the extension)")
	cmd.Flags().StringVar(&cfg.Where, "where", "", "sample filter expression")
	cmd.Flags().StringVar(&cfg.Series, "series", "", "series label filter (text or /regex/)")
	return cmd
}
