package main

import (
	"os"

	explorer "github.com/goganux/texas-career-path-explorer"
	"github.com/goganux/texas-career-path-explorer/internal/cli"
	"github.com/goganux/texas-career-path-explorer/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore a career interest interactively",
	Long: `Opens an explorer session on a career interest and reads commands from stdin.
Type a node id to select it. Careers highlight their prerequisites; other nodes show their details.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		interestID, _ := cmd.Flags().GetInt("interest")
		sessionID, _ := cmd.Flags().GetString("session")
		plain, _ := cmd.Flags().GetBool("plain")

		styled := !plain && tui.IsTerminal(os.Stdout)
		if styled {
			tui.PrintBanner(os.Stdout, explorer.Version)
		}

		x := cli.NewExplorer(app.Sessions, app.Catalog, os.Stdout, tui.NewRenderer(styled))
		sid, err := x.Run(cmd.Context(), os.Stdin, cli.ExploreOptions{
			InterestID: interestID,
			SessionID:  sessionID,
		})
		if err != nil {
			return err
		}
		app.Logger.Debug("Explorer closed", "session_id", sid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().IntP("interest", "i", 1, "Career interest to open")
	exploreCmd.Flags().StringP("session", "s", "", "Resume a stored session instead of opening a new one")
	exploreCmd.Flags().Bool("plain", false, "Disable Markdown styling")
}
