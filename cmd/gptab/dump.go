package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simonhull/tablature"
)

var dumpJSON bool

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the decoded contents of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := tablature.LoadFile(cmd.Context(), args[0], loadOptions()...)
		if err != nil {
			return err
		}
		if dumpJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(song)
		}
		return writeSummary(cmd.OutOrStdout(), song)
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "print the full song as JSON")
}

func writeSummary(w io.Writer, song *tablature.Song) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Version:\t%s\n", song.Version)
	fmt.Fprintf(tw, "Title:\t%s\n", song.Title)
	if song.Subtitle != "" {
		fmt.Fprintf(tw, "Subtitle:\t%s\n", song.Subtitle)
	}
	fmt.Fprintf(tw, "Artist:\t%s\n", song.Artist)
	fmt.Fprintf(tw, "Album:\t%s\n", song.Album)
	fmt.Fprintf(tw, "Tempo:\t%d\n", song.Tempo)
	fmt.Fprintf(tw, "Key:\t%d\n", song.Key)
	fmt.Fprintf(tw, "Triplet feel:\t%s\n", song.TripletFeel)
	fmt.Fprintf(tw, "Measures:\t%d\n", len(song.Measures))
	fmt.Fprintf(tw, "Fingerprint:\t%016x\n", song.Fingerprint)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tTrack\tStrings\tFrets\tPort\tChannel\tBeats")
	for i := range song.Tracks {
		t := &song.Tracks[i]
		beats := 0
		for m := range song.Grid {
			beats += len(song.Grid[m][i])
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\n", t.ID, t.Title, t.Strings, t.Frets, t.Port, t.Channel, beats)
	}

	if len(song.Warnings) > 0 {
		fmt.Fprintln(tw)
		for _, warn := range song.Warnings {
			fmt.Fprintf(tw, "warning:\t%s\n", warn)
		}
	}
	return tw.Flush()
}
