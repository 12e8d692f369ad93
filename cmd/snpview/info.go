package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"snpview/internal/model"
	"snpview/internal/parse"
)

func newInfoCmd() *cobra.Command {
	var comments bool
	cmd := &cobra.Command{
		Use:   "info <file.sNp> [file.sNp ...]",
		Short: "Summarize Touchstone files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, p := range args {
				ds, err := parse.ParseFile(p)
				if err != nil {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("%s: %v", p, err))
					continue
				}
				fmt.Fprintln(color.Output, infoTable(ds, comments))
				fmt.Fprintln(color.Output)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&comments, "comments", false, "also print the header comments")
	return cmd
}

func infoTable(ds *model.Dataset, comments bool) *uitable.Table {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("File"), ds.FilePath)
	tbl.AddRow(bold.Sprint("Ports"), ds.Ports)
	tbl.AddRow(bold.Sprint("Records"), ds.Len())
	if ds.Len() > 0 {
		tbl.AddRow(bold.Sprint("Frequency"), fmt.Sprintf("%g .. %g", ds.Frequencies[0], ds.Frequencies[ds.Len()-1]))
	}
	tbl.AddRow(bold.Sprint("Z0"), ds.Z0)
	tbl.AddRow(bold.Sprint("Options"), ds.Header)
	if comments {
		for i, c := range ds.Comments {
			label := ""
			if i == 0 {
				label = bold.Sprint("Comments")
			}
			tbl.AddRow(label, c)
		}
	}
	tbl.RightAlign(0)
	return tbl
}
