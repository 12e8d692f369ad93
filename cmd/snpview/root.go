package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snpview/internal/app"
	"snpview/internal/config"
	"snpview/internal/export"
	"snpview/internal/ui"
	"snpview/internal/util/logx"
	"snpview/internal/version"
)

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	root := &cobra.Command{
		Use:   "snpview [file.sNp ...]",
		Short: "Terminal viewer for Touchstone network parameter files",
		Long: `snpview loads Touchstone (.s1p, .s2p, ... .sNp) files and plots selected
matrix entries against frequency.

Examples:
  snpview dut.s2p --columns "[1,1],[2,1]"       # open the viewer
  snpview -c bench.cfg                           # restore a saved chart
  snpview dut.s2p --columns "[2,1]" --export csv -o s21.csv --where "freq > 1e9"`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Files = append(cfg.Files, args...)
			if err := cfg.Finish(); err != nil {
				return err
			}
			logx.Infof("starting snpview %s: %s", version.String(), cfg.String())
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			if cfg.Headless() {
				return runHeadless(cmd, a)
			}
			return ui.Run(cmd.Context(), a)
		},
	}
	cfg.BindFlags(root.Flags())
	root.AddCommand(newInfoCmd(), newExportCmd(), newVersionCmd())
	return root
}

// runHeadless exports when asked to; otherwise it prints what would be plotted.
func runHeadless(cmd *cobra.Command, a *app.App) error {
	if a.Cfg.ExportFormat == "" {
		res, ok := a.Tree.CurrentSeries()
		if !ok {
			return fmt.Errorf("not a terminal and nothing to export; use --export")
		}
		for _, s := range res.Series {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d points\n", s.Label, len(s.Points))
		}
		return nil
	}
	f, err := export.ParseFormat(a.Cfg.ExportFormat)
	if err != nil {
		return err
	}
	n, err := a.Export(a.Cfg.ExportOut, f, a.Criteria())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d samples to %s\n", n, a.Cfg.ExportOut)
	return a.SaveSession()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "snpview", version.String())
		},
	}
}
