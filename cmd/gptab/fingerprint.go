package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/tablature"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>...",
	Short: "Print the content fingerprint of each file",
	Long: `fingerprint prints the xxHash64 of the decoded bytes of each file.

The hash covers the tablature stream after decompression, so the same
song stored raw and compressed yields the same fingerprint.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := tablature.LoadMany(cmd.Context(), args, loadOptions()...)
		if err != nil {
			return err
		}
		for i, song := range songs {
			fmt.Fprintf(cmd.OutOrStdout(), "%016x  %s\n", song.Fingerprint, args[i])
		}
		return nil
	},
}
