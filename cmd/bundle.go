/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scriptexport/core/bundler"
	"github.com/tristendillon/scriptexport/core/logger"
	"github.com/tristendillon/scriptexport/core/report"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle <root_file_path> <project_root_path> <output_path>",
	Short: "Bundle a project into a single file",
	Long: `Bundles the root file and every local file it imports, directly or
transitively, into output_path. Local imports are those whose dotted path
starts with the last segment of project_root_path. The output file is
replaced only when the whole bundle succeeds.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := bundler.Bundle(args[0], args[1], args[2], bundlerOptions()...)
		if err != nil {
			return fmt.Errorf("failed to bundle %s: %w", args[0], err)
		}

		logger.Info("%s", report.Summary(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}
