package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simonhull/tablature"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the version tags gptab recognizes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TAG\tSUPPORTED")
		for _, v := range tablature.Formats() {
			fmt.Fprintf(tw, "%s\t%t\n", v.Tag, v.Supported)
		}
		return tw.Flush()
	},
}
