package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var interestsCmd = &cobra.Command{
	Use:   "interests",
	Short: "List the career interests and their pathway counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		interests, err := app.Catalog.ListInterests(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOURSES\tCERTIFICATIONS\tMAJORS\tCAREERS")
		for _, in := range interests {
			set, err := app.Pathways.List(cmd.Context(), in.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n", in.ID, in.Name,
				len(set.Courses), len(set.Certifications), len(set.Majors), len(set.Careers))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(interestsCmd)
}
