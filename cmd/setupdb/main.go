package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikolacukic/exercise-tracker/internal/config"
	"github.com/nikolacukic/exercise-tracker/internal/domain"
	"github.com/nikolacukic/exercise-tracker/internal/logging"
	"github.com/nikolacukic/exercise-tracker/internal/storage"
)

var (
	configDir string
	withSeed  bool
)

var rootCmd = &cobra.Command{
	Use:   "setupdb",
	Short: "Provision the exercise tracker schema",
	Long: `Applies the schema for the configured storage driver. The API server never
creates or migrates tables itself; run this once per database.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configDir, "config", ".", "directory containing config.yaml")
	rootCmd.Flags().BoolVar(&withSeed, "seed", false, "insert demo users and exercises after creating the schema")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := storage.Provision(ctx, store, cfg.Storage.Driver); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("schema applied", zap.String("driver", cfg.Storage.Driver))

	if !withSeed {
		return nil
	}
	users, exercises, err := seed(ctx, domain.NewService(store))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("demo data inserted", zap.Int("users", users), zap.Int("exercises", exercises))
	return nil
}
