package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rockstar/posy"
)

var (
	watchPatterns []string
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-parse metadata files as they change",
	Long: `Watch a directory tree and re-parse any metadata file that is created
or modified, printing one line per settled change. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scanner := posy.NewScanner(root,
			posy.WithPatterns(watchPatterns...),
			posy.WithLogger(slog.Default()),
		)
		events, err := scanner.Watch(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", root, err)
			os.Exit(1)
		}

		// Reports flow through the lifecycle source, so a host process
		// could supervise this stream alongside its own.
		source := posy.NewReportSource(events)
		if err := source.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting report source: %v\n", err)
			os.Exit(1)
		}

		slog.Info("watching for metadata changes", "root", root)
		for event := range source.Events() {
			fmt.Println(event)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringArrayVar(&watchPatterns, "pattern", nil, "Glob pattern(s) to match metadata files (repeatable)")
}
