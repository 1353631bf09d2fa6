package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/igneous-labs/inf-jup-interface/internal/chain"
	"github.com/igneous-labs/inf-jup-interface/internal/config"
	"github.com/igneous-labs/inf-jup-interface/internal/lstlist"
	"github.com/igneous-labs/inf-jup-interface/internal/storage"
	"github.com/igneous-labs/inf-jup-interface/internal/storage/postgres"
	"github.com/igneous-labs/inf-jup-interface/internal/watcher"
)

func main() {
	root := &cobra.Command{
		Use:          "infquote",
		Short:        "Sanctum Infinity quote engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll chain state and quote pairs on an interval",
		RunE:  runWatch,
	}

	watchCmd.Flags().String("rpc", "", "Solana RPC URL")
	watchCmd.Flags().String("lst-list-url", "", "LST registry URL (default: canonical registry)")
	watchCmd.Flags().StringSlice("pair", nil, "pairs to quote as inputMint:outputMint (comma-separated)")
	watchCmd.Flags().Uint64("amount", 1_000_000_000, "input amount in base units")
	watchCmd.Flags().Duration("interval", 30*time.Second, "refresh interval")
	watchCmd.Flags().String("out", "./data/quotes.jsonl", "output JSONL path")
	watchCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for quote records")
	watchCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	watchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	watchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(watchCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Fetch current state and print a single quote",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("rpc", "", "Solana RPC URL")
	quoteCmd.Flags().String("lst-list-url", "", "LST registry URL (default: canonical registry)")
	quoteCmd.Flags().String("input-mint", "", "input mint")
	quoteCmd.Flags().String("output-mint", "", "output mint")
	quoteCmd.Flags().Uint64("amount", 1_000_000_000, "amount in base units")
	quoteCmd.Flags().String("swap-mode", "exact-in", "exact-in or exact-out")
	quoteCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	pairs, err := watcher.ParsePairs(cfg.Pairs)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("pair list is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient := chain.NewClient(cfg.RPCURL)
	defer chainClient.Close()

	loader := lstlist.NewLoader(lstlist.Config{
		URL:          cfg.LstListURL,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)

	var storageSink storage.Storage
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		storageSink = store
	} else {
		storageSink = storage.NewJsonlStorage(cfg.Out)
	}

	runner := watcher.NewRunner(watcher.RunConfig{
		Pairs:        pairs,
		Amount:       cfg.Amount,
		Interval:     cfg.Interval,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, loader, storageSink, logger)

	logger.Info("watch start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("pairs", len(pairs)),
		zap.Uint64("amount", cfg.Amount),
		zap.Duration("interval", cfg.Interval),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
