// Command shayarictl runs maintenance tasks against the shayari stores.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anonto42/shayari-hub/backend/internal/app"
	"github.com/anonto42/shayari-hub/backend/pkg/config"
	applogger "github.com/anonto42/shayari-hub/backend/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:          "shayarictl",
	Short:        "Maintenance commands for the shayari backend",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			return a.Migrate(ctx)
		})
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute every shayari's likes and comments counters",
	Long: `Recompute likes_count and comments_count of every shayari from the
like and comment rows, repairing counters left behind by interrupted writes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			n, err := a.Reconciler.Reconcile(ctx)
			if err != nil {
				return fmt.Errorf("reconcile stopped after %d shayaris: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reconciled %d shayaris\n", n)
			return nil
		})
	},
}

// withApp opens the stores, builds the application and runs fn under the
// command timeout.
func withApp(parent context.Context, fn func(context.Context, *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := applogger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	a, err := app.New(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := fn(ctx, a); err != nil {
		logger.Error("command failed", zap.Error(err))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
