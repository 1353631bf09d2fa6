package config

import (
	"github.com/spf13/pflag"
)

// QuoteConfig holds configuration for the one-shot quote command.
type QuoteConfig struct {
	RPCURL     string
	LstListURL string
	InputMint  string
	OutputMint string
	Amount     uint64
	SwapMode   string
	MaxRetries int
	LogLevel   string
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v := newViper()

	v.SetDefault("amount", uint64(1_000_000_000))
	v.SetDefault("swap-mode", "exact-in")
	v.SetDefault("max-retries", 5)
	v.SetDefault("log-level", "info")

	if err := bindAndRead(v, cfgFile, flags); err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		RPCURL:     v.GetString("rpc"),
		LstListURL: v.GetString("lst-list-url"),
		InputMint:  v.GetString("input-mint"),
		OutputMint: v.GetString("output-mint"),
		Amount:     v.GetUint64("amount"),
		SwapMode:   v.GetString("swap-mode"),
		MaxRetries: v.GetInt("max-retries"),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}
