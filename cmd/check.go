/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/tristendillon/scriptexport/core/bundler"
	"github.com/tristendillon/scriptexport/core/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check <root_file_path> <project_root_path> <output_path>",
	Short: "Check that an existing bundle is up to date",
	Long: `Builds the bundle in memory and compares it with output_path without
writing anything. Prints a line diff and exits non-zero when they differ.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		diffs, err := bundler.Check(args[0], args[1], args[2], bundlerOptions()...)
		if errors.Is(err, bundler.ErrStale) {
			printLineDiff(cmd.OutOrStdout(), diffs)
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to bundle %s: %w", args[0], err)
		}

		logger.Info("%s is up to date", args[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func printLineDiff(w io.Writer, diffs []diffmatchpatch.Diff) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, diff := range diffs {
		lines := strings.SplitAfter(diff.Text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				added.Fprint(w, "+ "+strings.TrimRight(line, "\n")+"\n")
			}
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				removed.Fprint(w, "- "+strings.TrimRight(line, "\n")+"\n")
			}
		default:
			if len(lines) > 0 {
				fmt.Fprintf(w, "  ... %d unchanged lines\n", len(lines))
			}
		}
	}
}
