package main

import (
	"github.com/spf13/cobra"

	"premium-leave-engine/internal/handlers"
)

var parseDateCmd = &cobra.Command{
	Use:     "parse-date <token>...",
	Short:   "Show how date and period cells are normalized",
	Example: `  leavereport parse-date "01/03/2025" "mar/2025" "01/03/2025 a 29/05/2025"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := handlers.ParseDates(args)
		if jsonOutput {
			return handlers.WriteJSON(cmd.OutOrStdout(), results)
		}
		return handlers.WriteDates(cmd.OutOrStdout(), results)
	},
}
