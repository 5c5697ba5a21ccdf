package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"premium-leave-engine/internal/config"
	"premium-leave-engine/internal/utils"
)

var (
	jsonOutput bool
	verbose    bool
	cfg        *config.Config
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "leavereport",
	Short: "Premium leave scheduling and urgency reports",
	Long: `leavereport reads personnel spreadsheets exported as CSV, computes the
premium leave calendar of each employee in 30-day months and classifies how
urgently the leave must be rescheduled before retirement.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		if err := utils.InitLogger(level, cfg.Stage); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
		utils.GetLogger().Debug("command start",
			zap.String("command", cmd.CommandPath()),
			zap.String("correlation_id", info.correlationID.String()),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		defer utils.Sync()
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		utils.GetLogger().Debug("command end",
			zap.String("command", cmd.CommandPath()),
			zap.String("correlation_id", info.correlationID.String()),
			zap.Int64("duration_ms", time.Since(info.startedAt).Milliseconds()),
		)
	},
}

// Execute adds all child commands to the root command and runs it until
// completion or an interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a text table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(evaluateCmd, parseDateCmd, validateCmd)
}
