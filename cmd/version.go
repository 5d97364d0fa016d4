/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scriptexport/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of scriptexport",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "scriptexport %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
