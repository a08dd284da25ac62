package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/tablature"
)

var (
	midiOutput string
	midiBackup bool
)

var midiCmd = &cobra.Command{
	Use:   "midi <file>",
	Short: "Export tempo, meter, markers and instruments as a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := tablature.LoadFile(cmd.Context(), args[0], loadOptions()...)
		if err != nil {
			return err
		}

		out := midiOutput
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".mid"
		}
		opts := []tablature.SaveOption{tablature.WithValidation()}
		if midiBackup {
			opts = append(opts, tablature.WithBackup(".bak"))
		}
		if err := tablature.SaveMIDI(song, out, opts...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

func init() {
	midiCmd.Flags().StringVarP(&midiOutput, "output", "o", "", "output path (default: input with .mid extension)")
	midiCmd.Flags().BoolVar(&midiBackup, "backup", false, "keep an existing output file as <output>.bak")
}
