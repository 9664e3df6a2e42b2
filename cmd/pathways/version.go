package main

import (
	"fmt"

	explorer "github.com/goganux/texas-career-path-explorer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pathways",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pathways version %s\n", explorer.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
