package main

import (
	"errors"
	"fmt"

	"github.com/goganux/texas-career-path-explorer/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the pathway data for consistency",
	Long: `Checks every pathway node and career step. Errors (unreadable documents, invalid nodes, unusable steps) fail the command;
warnings (unresolved or cross-interest step ids, title-only matches) are reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		lister, ok := app.Lister()
		if !ok {
			return errors.New("pathway source cannot be enumerated")
		}
		report, err := validator.ValidateLister(cmd.Context(), lister)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			for _, issue := range report.Warnings() {
				fmt.Fprintln(out, issue)
			}
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(out, "%d pathways across %d interests are valid (%d warnings) ✅\n",
			report.Nodes, report.Interests, len(report.Warnings()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("quiet", "q", false, "Only report errors")
}
