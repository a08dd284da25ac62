package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/simonhull/tablature"
)

var (
	verbose      bool
	strict       bool
	noDecompress bool
	maxAlloc     uint64
)

var rootCmd = &cobra.Command{
	Use:   "gptab",
	Short: "Inspect Guitar Pro tablature files",
	Long: `gptab decodes Guitar Pro 4 tablature files and prints their contents.

Files may be stored raw or wrapped in gzip, zstd, lz4 or s2 compression.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	rootCmd.Version = tablature.GetVersionInfo().String()

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log decoding progress to stderr")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "treat recoverable anomalies as errors")
	rootCmd.PersistentFlags().BoolVar(&noDecompress, "no-decompress", false, "disable compressed container detection")
	rootCmd.PersistentFlags().Uint64Var(&maxAlloc, "max-alloc", 0, "allocation budget in bytes (0 uses the default)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(versionsCmd)
}

// loadOptions builds the decode options from the persistent flags.
func loadOptions() []tablature.Option {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []tablature.Option{
		tablature.WithLogger(logger),
		tablature.WithDecompression(!noDecompress),
	}
	if strict {
		opts = append(opts, tablature.WithStrictParsing())
	}
	if maxAlloc > 0 {
		opts = append(opts, tablature.WithMaxAllocation(maxAlloc))
	}
	return opts
}
