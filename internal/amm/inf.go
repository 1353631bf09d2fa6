package amm

import (
	"sync/atomic"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/calc"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
	"github.com/igneous-labs/inf-jup-interface/internal/pool"
)

// MsolMintID is Marinade's mSOL mint. Its exchange rate carries no
// per-epoch reward step, so it is exempt from the staleness gate.
var MsolMintID = solana.MustPublicKeyFromBase58("mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So")

// ClockRef shares the current epoch between an external clock source and
// quote-time staleness checks. Reads and writes are atomic but unordered;
// a quote racing an epoch rollover may see either value.
type ClockRef struct {
	Epoch *atomic.Uint64
}

// NewClockRef returns a ClockRef at epoch 0.
func NewClockRef() ClockRef {
	return ClockRef{Epoch: new(atomic.Uint64)}
}

// Inf adapts a Sanctum Infinity pool to the Amm contract.
type Inf struct {
	pool  *pool.Pool
	clock ClockRef
}

var _ Amm = (*Inf)(nil)

// NewInf builds an adapter from the raw LST state list account, the
// mint to stake-pool table for SPL-backend calculators, and a shared
// epoch counter.
func NewInf(lstStateListData []byte, splPools calc.SplPoolTable, clock ClockRef) (*Inf, error) {
	p, err := pool.New(lstStateListData, splPools)
	if err != nil {
		return nil, err
	}
	if clock.Epoch == nil {
		clock = NewClockRef()
	}
	return &Inf{pool: p, clock: clock}, nil
}

func (a *Inf) Label() string { return "Sanctum Infinity" }

func (a *Inf) ProgramID() solana.PublicKey { return pool.ProgramID }

// Key identifies this pool instance to the host. The controller is
// one-pool-per-program, so the program id doubles as the key.
func (a *Inf) Key() solana.PublicKey { return pool.ProgramID }

func (a *Inf) ReserveMints() []solana.PublicKey { return a.pool.ReserveMints() }

func (a *Inf) SupportsExactOut() bool { return true }

func (a *Inf) ProgramDependencies() []ProgramDependency {
	return []ProgramDependency{
		{ID: calc.SplCalcProgramID, Label: "spl_calculator"},
		{ID: calc.SanctumSplCalcProgramID, Label: "sanctum_spl_calculator"},
		{ID: calc.SanctumSplMultiCalcProgramID, Label: "sanctum_spl_multi_calculator"},
		{ID: calc.LidoCalcProgramID, Label: "lido_calculator"},
		{ID: calc.MarinadeCalcProgramID, Label: "marinade_calculator"},
		{ID: calc.WsolCalcProgramID, Label: "wsol_calculator"},
		{ID: a.pool.State().PricingProgram, Label: "pricing_program"},
	}
}

func (a *Inf) AccountsToUpdate() ([]solana.PublicKey, error) {
	return a.pool.AccountsToUpdate()
}

func (a *Inf) Update(f accounts.Fetcher) error {
	return a.pool.Update(f)
}

// epochImmune reports whether a mint bypasses the staleness gate.
func (a *Inf) epochImmune(mint solana.PublicKey) bool {
	return mint == a.pool.LpTokenMint() ||
		mint == pool.WsolMintID ||
		mint == MsolMintID
}

// checkFresh fails if the mint's calculator has not been recomputed for
// the current epoch. Which side of the trade tripped the gate is not
// reported; the caller sees one generic input-side error either way.
func (a *Inf) checkFresh(mint solana.PublicKey) error {
	if a.epochImmune(mint) {
		return nil
	}
	c, ok := a.pool.Calc(mint)
	if !ok {
		return &inferr.MissingCalcData{Mint: mint}
	}
	if !c.Kind().EpochAffected() {
		return nil
	}
	if c.LastUpdateEpoch() < a.clock.Epoch.Load() {
		return &inferr.CalcStale{Kind: c.Kind().String()}
	}
	return nil
}

func saturatingAdd(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint64(0)
}

// Quote prices a trade from the current mirror, gating both sides on
// calculator freshness first.
func (a *Inf) Quote(params QuoteParams) (Quote, error) {
	if err := a.checkFresh(params.InputMint); err != nil {
		return Quote{}, err
	}
	if err := a.checkFresh(params.OutputMint); err != nil {
		return Quote{}, err
	}

	q, err := a.pool.QuoteTrade(pool.Pair{Inp: params.InputMint, Out: params.OutputMint}, params.Amount, params.SwapMode)
	if err != nil {
		return Quote{}, err
	}

	feeAmount := saturatingAdd(q.LpFee, q.ProtocolFee)
	denominator := q.Inp
	if q.FeeMint != q.InpMint {
		denominator = saturatingAdd(q.Out, feeAmount)
	}
	feePct, err := feePercentage(feeAmount, denominator)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		InAmount:  q.Inp,
		OutAmount: q.Out,
		FeeAmount: feeAmount,
		FeeMint:   q.FeeMint,
		FeePct:    feePct,
	}, nil
}

// feePercentage is feeAmount/denominator as a decimal fraction. A zero
// denominator has no finite quotient and fails conversion.
func feePercentage(feeAmount, denominator uint64) (decimal.Decimal, error) {
	if denominator == 0 {
		return decimal.Decimal{}, inferr.ErrPercentageConversion
	}
	num := decimal.NewFromUint64(feeAmount)
	den := decimal.NewFromUint64(denominator)
	return num.Div(den), nil
}

func (a *Inf) SwapAccounts(params SwapParams) (pool.TradeIx, error) {
	return a.pool.TradeAccounts(pool.TradeArgs{
		Quote:           params.Quote,
		Signer:          params.TokenTransferAuthority,
		InpTokenAccount: params.SourceTokenAccount,
		OutTokenAccount: params.DestinationTokenAccount,
	})
}

// Clone deep-copies the owned state for independent concurrent use. The
// epoch counter stays shared: every clone gates against the same clock.
func (a *Inf) Clone() Amm {
	return &Inf{pool: a.pool.Clone(), clock: a.clock}
}
