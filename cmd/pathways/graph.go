package main

import (
	"fmt"

	"github.com/goganux/texas-career-path-explorer/internal/presentation/graph"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export an interest's pathways as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of one career interest with a subgraph per column
and an edge from every prerequisite into its career. With --select the highlighted path of that
career is marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		interestID, _ := cmd.Flags().GetInt("interest")
		careerID, _ := cmd.Flags().GetInt("select")

		set, err := app.Pathways.List(cmd.Context(), interestID)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if careerID > 0 {
			e := pathway.NewEngine(set, pathway.WithLogger(app.Logger))
			node, outcome, err := e.SelectByID(careerID)
			if err != nil {
				return err
			}
			if outcome != pathway.OutcomeHighlighted {
				return fmt.Errorf("node %d (%s) is not a career", node.ID, node.PathwayType)
			}
			overlay = &graph.Overlay{
				SelectedCareerID: node.ID,
				ActiveIDs:        e.Matches().IDs(),
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(set, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().IntP("interest", "i", 1, "Career interest to draw")
	graphCmd.Flags().Int("select", 0, "Career whose prerequisites should be highlighted")
}
