package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scriptexport/core/logger"
	"github.com/tristendillon/scriptexport/core/report"
	"github.com/tristendillon/scriptexport/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <root_file_path> <project_root_path> <output_path>",
	Short: "Rebundle whenever a bundled file changes",
	Long: `Bundles once, then watches project_root_path and rebuilds the bundle
after any file that is part of it changes. Failed rebuilds are reported and
leave the previous bundle in place.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rebundler := watcher.NewRebundler(args[0], args[1], args[2], bundlerOptions()...)
		rebundler.Ignore(logfile)
		if result, err := rebundler.Run(); err != nil {
			logger.Error("Initial bundle failed: %v", err)
		} else {
			logger.Info("%s", report.Summary(result))
		}

		fw, err := watcher.NewFileWatcher(args[1], cfg.Watch.Exclude, cfg.Watch.Debounce)
		if err != nil {
			return err
		}
		defer fw.Close()

		fw.OnChange(func(changed []string) {
			result, err := rebundler.HandleChanges(changed)
			if err != nil {
				logger.Error("Rebundle failed: %v", err)
				return
			}
			if result != nil {
				logger.Info("%s", report.Summary(result))
			}
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("Watching %s for changes (Ctrl+C to stop)", args[1])
		return fw.Watch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
