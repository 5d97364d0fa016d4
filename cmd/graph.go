/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scriptexport/core/bundler"
	"github.com/tristendillon/scriptexport/core/report"
	"github.com/tristendillon/scriptexport/core/walker"
)

var graphCmd = &cobra.Command{
	Use:   "graph <root_file_path> <project_root_path>",
	Short: "Show the files a bundle would contain, in output order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter := bundler.NewExporter(args[0], args[1], bundlerOptions()...)
		if err := exporter.Collect(); err != nil {
			return fmt.Errorf("failed to collect %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, report.FileTable(exporter))

		for _, cycle := range exporter.Graph().DetectCycles() {
			names := make([]string, len(cycle))
			for i, path := range cycle {
				names[i] = exporter.RelPath(path)
			}
			fmt.Fprintf(out, "cycle: %s -> %s\n", strings.Join(names, " -> "), names[0])
		}

		sources, err := walker.NewSourceWalker(cfg.Extension, cfg.Watch.Exclude).Walk(args[1])
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", args[1], err)
		}
		bundled := make([]string, 0, len(exporter.Files()))
		for _, details := range exporter.Files() {
			bundled = append(bundled, details.Path)
		}
		for _, path := range walker.Unreached(sources, bundled) {
			fmt.Fprintf(out, "not bundled: %s\n", exporter.RelPath(path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
