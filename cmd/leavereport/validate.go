package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"premium-leave-engine/internal/handlers"
	"premium-leave-engine/internal/services/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.csv>",
	Short: "Check that a spreadsheet has the columns the engine needs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h := handlers.NewReportHandler(pipeline.NewFromConfig(cfg), nil)

		result, err := h.ValidateFile(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			err = handlers.WriteJSON(cmd.OutOrStdout(), result)
		} else {
			err = handlers.WriteValidation(cmd.OutOrStdout(), args[0], result)
		}
		if err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("%s: invalid spreadsheet", args[0])
		}
		return nil
	},
}
