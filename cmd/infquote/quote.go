package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/igneous-labs/inf-jup-interface/internal/amm"
	"github.com/igneous-labs/inf-jup-interface/internal/chain"
	"github.com/igneous-labs/inf-jup-interface/internal/config"
	"github.com/igneous-labs/inf-jup-interface/internal/lstlist"
	"github.com/igneous-labs/inf-jup-interface/internal/pool"
	"github.com/igneous-labs/inf-jup-interface/internal/watcher"
)

type quoteOutput struct {
	InputMint  string `json:"input_mint"`
	OutputMint string `json:"output_mint"`
	SwapMode   string `json:"swap_mode"`
	InAmount   uint64 `json:"in_amount"`
	OutAmount  uint64 `json:"out_amount"`
	FeeAmount  uint64 `json:"fee_amount"`
	FeeMint    string `json:"fee_mint"`
	FeePct     string `json:"fee_pct"`
	Epoch      uint64 `json:"epoch"`
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
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

	inputMint, err := solana.PublicKeyFromBase58(cfg.InputMint)
	if err != nil {
		return fmt.Errorf("invalid input mint: %w", err)
	}
	outputMint, err := solana.PublicKeyFromBase58(cfg.OutputMint)
	if err != nil {
		return fmt.Errorf("invalid output mint: %w", err)
	}
	swapMode, err := watcher.ParseSwapMode(cfg.SwapMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient := chain.NewClient(cfg.RPCURL)
	defer chainClient.Close()

	loader := lstlist.NewLoader(lstlist.Config{
		URL:        cfg.LstListURL,
		MaxRetries: cfg.MaxRetries,
	}, logger)
	entries := loader.Load(ctx)

	fetched, err := chainClient.FetchAccounts(ctx, []solana.PublicKey{pool.LstStateListID})
	if err != nil {
		return fmt.Errorf("fetch lst state list: %w", err)
	}
	listData, ok := fetched.Account(pool.LstStateListID)
	if !ok {
		return fmt.Errorf("lst state list account %s not found", pool.LstStateListID)
	}

	clock := amm.NewClockRef()
	inf, err := amm.NewInf(listData, lstlist.SplPools(entries), clock)
	if err != nil {
		return fmt.Errorf("init adapter: %w", err)
	}

	epoch, err := chainClient.CurrentEpoch(ctx)
	if err != nil {
		return fmt.Errorf("current epoch: %w", err)
	}
	clock.Epoch.Store(epoch)

	addrs, err := inf.AccountsToUpdate()
	if err != nil {
		return fmt.Errorf("accounts to update: %w", err)
	}
	accountMap, err := chainClient.FetchAccounts(ctx, addrs)
	if err != nil {
		return fmt.Errorf("fetch accounts: %w", err)
	}
	if err := inf.Update(accountMap); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	q, err := inf.Quote(amm.QuoteParams{
		InputMint:  inputMint,
		OutputMint: outputMint,
		Amount:     cfg.Amount,
		SwapMode:   swapMode,
	})
	if err != nil {
		return fmt.Errorf("quote: %w", err)
	}

	out := quoteOutput{
		InputMint:  inputMint.String(),
		OutputMint: outputMint.String(),
		SwapMode:   cfg.SwapMode,
		InAmount:   q.InAmount,
		OutAmount:  q.OutAmount,
		FeeAmount:  q.FeeAmount,
		FeeMint:    q.FeeMint.String(),
		FeePct:     q.FeePct.String(),
		Epoch:      epoch,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
