package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"filemanip/rewriter"
	"filemanip/sources"
	"filemanip/transformations"

	"github.com/spf13/cobra"
)

var outputPath string
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "filemanip <file_path> [command]...",
	Short: "Rewrite fields of tab separated lines",
	Long: `filemanip modifies line fields in a tab separated file.

  <file_path>     path to the file for manipulation
  [N:u]           change every line's field N to upper case letters
  [N:U]           change every line's field N to lower case letters
  [N:RAB]         match character A in every line's field N (B is not written)

Fields are numbered from 0 and empty fields are skipped. Only lines where at
least one command applied are printed. If N does not represent a valid field,
the command is not applied.`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		commands, err := transformations.ParseCommands(args[1:])
		if err != nil {
			return err
		}
		slog.Debug("Commands parsed.", "file", filePath, "commands", len(commands))

		src := &sources.File{Path: filePath}
		rw := rewriter.New(commands, slog.Default())

		if outputPath == "" {
			_, err := rw.Rewrite(src, cmd.OutOrStdout())
			return err
		}

		stats, err := rewriteToFile(rw, src, outputPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d of %d lines to %s\n", stats.Written, stats.Read, outputPath)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rewriteToFile runs rw over src and writes the result to path, creating
// parent directories as needed
func rewriteToFile(rw *rewriter.Rewriter, src rewriter.LineSource, path string) (rewriter.Stats, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return rewriter.Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return rewriter.Stats{}, fmt.Errorf("failed to create output file: %w", err)
	}
	stats, err := rw.Rewrite(src, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write output file %s: %w", path, closeErr)
	}
	return stats, err
}

func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write changed lines to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug information to stderr")
}
