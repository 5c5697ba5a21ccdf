package main

import (
	"github.com/spf13/cobra"

	"premium-leave-engine/internal/handlers"
	"premium-leave-engine/internal/services/pipeline"
)

var (
	workers int
	ranked  bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file.csv>",
	Short: "Schedule and classify every employee in a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []pipeline.Option
		if cmd.Flags().Changed("workers") {
			opts = append(opts, pipeline.WithWorkers(workers))
		}
		h := handlers.NewReportHandler(pipeline.NewFromConfig(cfg, opts...), nil)

		result, err := h.EvaluateFile(cmd.Context(), args[0], ranked)
		if err != nil {
			return err
		}

		if jsonOutput {
			return handlers.WriteJSON(cmd.OutOrStdout(), result)
		}
		return handlers.WriteReport(cmd.OutOrStdout(), result)
	},
}

func init() {
	evaluateCmd.Flags().IntVarP(&workers, "workers", "w", pipeline.DefaultWorkers, "records evaluated in parallel (overrides WORKERS)")
	evaluateCmd.Flags().BoolVar(&ranked, "ranked", false, "order by descending urgency score")
}
