/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scriptexport/core/bundler"
	"github.com/tristendillon/scriptexport/core/config"
	"github.com/tristendillon/scriptexport/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "scriptexport",
	Short: "Bundle a multi-file Python project into a single script.",
	Long: `scriptexport follows the local imports of a root file through a project,
inlines every local file it reaches in dependency-first order and merges all
third-party imports into one deduplicated import block at the top.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	logfile    string
	verbose    bool
	noColor    bool
	cfg        *config.Config
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	logger.SetErrorWriter()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func setup(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.SetVerbose(verbose || cfg.Verbose)
	logger.SetColor(cfg.Color && !noColor)

	if logfile != "" {
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", logfile, err)
		}
		logger.AddWriterForAll(f)
	}

	logger.Debug("%s called", cmd.Name())
	return nil
}

func bundlerOptions() []bundler.Option {
	return []bundler.Option{bundler.WithExtension(cfg.Extension)}
}
