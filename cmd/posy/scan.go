package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rockstar/posy"
)

var (
	scanPatterns []string
	scanStrict   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Find and parse every metadata file under a directory",
	Long: `Walk a directory tree (a virtualenv, a site-packages, an unpacked
wheel), parse every metadata file matched by the glob patterns, and
print one line per file. Broken files are reported and do not stop the
scan; with --strict they make the command exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		scanner := posy.NewScanner(root,
			posy.WithPatterns(scanPatterns...),
			posy.WithLogger(slog.Default()),
		)
		reports, err := scanner.Scan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", root, err)
			os.Exit(1)
		}

		broken := 0
		for _, r := range reports {
			if r.Err != nil {
				broken++
			}
			fmt.Println(r)
		}
		fmt.Printf("%d file(s), %d broken\n", len(reports), broken)

		if scanStrict && broken > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringArrayVar(&scanPatterns, "pattern", nil, "Glob pattern(s) to match metadata files (repeatable)")
	scanCmd.Flags().BoolVar(&scanStrict, "strict", false, "Exit non-zero if any file failed to parse")
}
