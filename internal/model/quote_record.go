package model

import "time"

// QuoteRecord is one priced quote flattened for persistence.
type QuoteRecord struct {
	QuotedAt   time.Time `json:"quoted_at"`
	Epoch      uint64    `json:"epoch"`
	SwapMode   string    `json:"swap_mode"`
	InputMint  string    `json:"input_mint"`
	OutputMint string    `json:"output_mint"`
	InAmount   uint64    `json:"in_amount"`
	OutAmount  uint64    `json:"out_amount"`
	FeeAmount  uint64    `json:"fee_amount"`
	FeeMint    string    `json:"fee_mint"`
	FeePct     string    `json:"fee_pct"`
}
