package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rockstar/posy"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of posy",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("posy version %s\n", strings.TrimSpace(posy.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
