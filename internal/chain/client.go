package chain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
)

// getMultipleAccounts caps the number of keys per request.
const fetchChunkSize = 100

// Client wraps a Solana JSON-RPC client and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(rpcURL string) *Client {
	return &Client{rpcClient: rpc.New(rpcURL)}
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// CurrentEpoch returns the cluster's current epoch.
func (c *Client) CurrentEpoch(ctx context.Context) (uint64, error) {
	info, err := c.rpcClient.GetEpochInfo(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get epoch info: %w", err)
	}
	return info.Epoch, nil
}

// FetchAccounts resolves the given addresses to raw account bytes.
// Duplicates are fetched once; addresses with no live account are simply
// absent from the result.
func (c *Client) FetchAccounts(ctx context.Context, pks []solana.PublicKey) (accounts.Map, error) {
	unique := make([]solana.PublicKey, 0, len(pks))
	seen := make(map[solana.PublicKey]struct{}, len(pks))
	for _, pk := range pks {
		if _, ok := seen[pk]; ok {
			continue
		}
		seen[pk] = struct{}{}
		unique = append(unique, pk)
	}

	out := make(accounts.Map, len(unique))
	for start := 0; start < len(unique); start += fetchChunkSize {
		end := start + fetchChunkSize
		if end > len(unique) {
			end = len(unique)
		}
		chunk := unique[start:end]

		res, err := c.rpcClient.GetMultipleAccountsWithOpts(ctx, chunk, &rpc.GetMultipleAccountsOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: rpc.CommitmentConfirmed,
		})
		if err != nil {
			return nil, fmt.Errorf("get multiple accounts: %w", err)
		}
		for i, acc := range res.Value {
			if acc == nil || acc.Data == nil {
				continue
			}
			out[chunk[i]] = acc.Data.GetBinary()
		}
	}

	return out, nil
}
