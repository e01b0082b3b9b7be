package session

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/apollo/journal"
	"github.com/rustyeddy/apollo/market"
	"github.com/rustyeddy/apollo/stake"
)

// Reference ledger for the default conservative session against the
// always-lose source (stop loss 50, base stake 1, margin 0.02, payout 1.20).
var conservativeStakes = []float64{1.00, 1.00, 1.70, 3.15, 5.82, 10.77, 19.92, 36.86}

func TestRunner_ReferenceConservativeRun(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(DefaultConfig(), AlwaysLose{}, nil)
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, StoppedOut, res.Status)
	assert.Equal(t, 8, res.Steps)
	assert.InDelta(t, -80.22, res.FinalBalance, 1e-9)
	assert.InDelta(t, 80.22, res.TotalInvested, 1e-9)
	assert.NotEmpty(t, res.RunID)

	ledger := r.Ledger()
	require.Len(t, ledger, len(conservativeStakes))

	for i, want := range conservativeStakes {
		rec := ledger[i]
		assert.Equal(t, i+1, rec.Step)
		assert.InDelta(t, want, rec.Stake, 1e-9, "step %d stake", i+1)
		assert.Equal(t, market.Loss, rec.Outcome)

		if i < 2 {
			assert.Equal(t, market.Normal, rec.Instrument)
		} else {
			assert.Equal(t, market.Recovery, rec.Instrument)
		}
	}

	// Spot checks from the reference run.
	assert.InDelta(t, -3.70, ledger[2].BalanceAfter, 1e-9)
	assert.InDelta(t, 3.70, ledger[2].AccumulatedLossAfter, 1e-9)
	assert.InDelta(t, -80.22, ledger[7].BalanceAfter, 1e-9)
}

func TestRunner_ReferenceAggressiveRun(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = Aggressive

	r, err := NewRunner(cfg, AlwaysLose{}, nil)
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, StoppedOut, res.Status)
	assert.Equal(t, 7, res.Steps)
	assert.InDelta(t, -57.67, res.FinalBalance, 1e-9)
	assert.InDelta(t, 57.67, res.TotalInvested, 1e-9)
}

// While no win occurs, accumulated loss mirrors the balance exactly, and
// every recovery stake satisfies the sizing rule against the loss entering
// the step.
func TestRunner_LossRunInvariants(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.StopLoss = 10_000 // run to the step cap
	cfg.MaxSteps = 15

	r, err := NewRunner(cfg, AlwaysLose{}, nil)
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, MaxStepsReached, res.Status)
	assert.Equal(t, 15, res.Steps)

	var accBefore float64
	for _, rec := range r.Ledger() {
		assert.InDelta(t, -rec.BalanceAfter, rec.AccumulatedLossAfter, 1e-9, "step %d", rec.Step)

		streakBefore := rec.Step - 1
		if streakBefore < 2 {
			assert.InDelta(t, cfg.BaseStake, rec.Stake, 1e-9, "step %d", rec.Step)
		} else {
			want := stake.RecoveryStake(accBefore, cfg.Mode.ProfitMargin(), cfg.PayoutRecovery, 0.35)
			assert.InDelta(t, want, rec.Stake, 1e-9, "step %d", rec.Step)
			assert.GreaterOrEqual(t, rec.Stake, 0.35)
		}
		accBefore = rec.AccumulatedLossAfter
	}
}

func TestRunner_WinResetsStreak(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxSteps = 5

	// Three losses engage recovery, the recovery bet wins, then one more
	// loss restarts the ladder at the base stake.
	src := NewSequence(market.Loss, market.Loss, market.Loss, market.Win, market.Loss)

	r, err := NewRunner(cfg, src, nil)
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, MaxStepsReached, res.Status)

	ledger := r.Ledger()
	require.Len(t, ledger, 5)

	// Step 4: recovery stake 3.15 wins and pays 3.15 * 1.20 = 3.78,
	// recovering the 3.70 of accumulated loss plus the margin.
	win := ledger[3]
	assert.Equal(t, market.Recovery, win.Instrument)
	assert.Equal(t, market.Win, win.Outcome)
	assert.InDelta(t, 3.15, win.Stake, 1e-9)
	assert.InDelta(t, 0.08, win.BalanceAfter, 1e-9)
	assert.InDelta(t, 0.0, win.AccumulatedLossAfter, 1e-9)

	// Step 5 starts a fresh ladder.
	next := ledger[4]
	assert.Equal(t, market.Normal, next.Instrument)
	assert.InDelta(t, cfg.BaseStake, next.Stake, 1e-9)
	assert.InDelta(t, win.BalanceAfter-cfg.BaseStake, next.BalanceAfter, 1e-9)
	assert.InDelta(t, cfg.BaseStake, next.AccumulatedLossAfter, 1e-9)
}

func TestRunner_DeterministicReplay(t *testing.T) {
	t.Parallel()

	run := func() ([]BetRecord, Result) {
		r, err := NewRunner(DefaultConfig(), AlwaysLose{}, nil)
		require.NoError(t, err)
		res, err := r.Run()
		require.NoError(t, err)
		return r.Ledger(), res
	}

	ledgerA, resA := run()
	ledgerB, resB := run()

	assert.Equal(t, ledgerA, ledgerB)
	assert.Equal(t, resA.Status, resB.Status)
	assert.Equal(t, resA.Steps, resB.Steps)
	assert.Equal(t, resA.FinalBalance, resB.FinalBalance)
	assert.Equal(t, resA.TotalInvested, resB.TotalInvested)
}

func TestRunner_StopOutImpliesThresholdCrossed(t *testing.T) {
	t.Parallel()

	for _, stopLoss := range []float64{3.70, 12.67, 50.0, 80.0} {
		cfg := DefaultConfig()
		cfg.StopLoss = stopLoss

		r, err := NewRunner(cfg, AlwaysLose{}, nil)
		require.NoError(t, err)

		res, err := r.Run()
		require.NoError(t, err)

		// A default loss run accumulates 80.22 by step 8, so every one of
		// these thresholds must be crossed inside the cap.
		assert.LessOrEqual(t, res.Steps, cfg.MaxSteps)
		assert.Equal(t, StoppedOut, res.Status, "stop loss %v", stopLoss)
		assert.GreaterOrEqual(t, math.Abs(res.FinalBalance), stopLoss)
	}
}

func TestNewRunner_Validation(t *testing.T) {
	t.Parallel()

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.BaseStake = -1

		_, err := NewRunner(cfg, AlwaysLose{}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing outcome source", func(t *testing.T) {
		t.Parallel()

		_, err := NewRunner(DefaultConfig(), nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outcome source is required")
	})
}

func TestRunner_SingleUse(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(DefaultConfig(), AlwaysLose{}, nil)
	require.NoError(t, err)

	_, err = r.Run()
	require.NoError(t, err)

	_, err = r.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already executed")
}

func TestRunner_LedgerReturnsCopy(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(DefaultConfig(), AlwaysLose{}, nil)
	require.NoError(t, err)

	_, err = r.Run()
	require.NoError(t, err)

	got := r.Ledger()
	got[0].Stake = 999

	assert.InDelta(t, 1.0, r.Ledger()[0].Stake, 1e-9)
}

func TestRunner_RecordsToJournal(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	j, err := journal.NewSQLite(filepath.Join(tmp, "apollo.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	r, err := NewRunner(DefaultConfig(), AlwaysLose{}, j)
	require.NoError(t, err)

	res, err := r.Run()
	require.NoError(t, err)

	rec, err := j.GetSession(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, string(StoppedOut), rec.Status)
	assert.InDelta(t, res.FinalBalance, rec.FinalBalance, 1e-9)
	assert.InDelta(t, res.TotalInvested, rec.TotalInvested, 1e-9)
	assert.Equal(t, res.Steps, rec.Steps)

	bets, err := j.ListBetsByRun(res.RunID)
	require.NoError(t, err)
	require.Len(t, bets, res.Steps)
	for i, b := range bets {
		assert.Equal(t, i+1, b.Step)
		assert.InDelta(t, conservativeStakes[i], b.Stake, 1e-9)
	}
}

func TestOutcomeSources(t *testing.T) {
	t.Parallel()

	t.Run("always lose", func(t *testing.T) {
		t.Parallel()
		src := AlwaysLose{}
		for step := 1; step <= 3; step++ {
			assert.Equal(t, market.Loss, src.NextOutcome(step, market.Normal, 1.0))
		}
	})

	t.Run("sequence loses past the end", func(t *testing.T) {
		t.Parallel()
		src := NewSequence(market.Win)
		assert.Equal(t, market.Win, src.NextOutcome(1, market.Normal, 1.0))
		assert.Equal(t, market.Loss, src.NextOutcome(2, market.Normal, 1.0))
		assert.Equal(t, market.Loss, src.NextOutcome(3, market.Normal, 1.0))
	})

	t.Run("func adapter", func(t *testing.T) {
		t.Parallel()
		src := OutcomeFunc(func(step int, _ market.Instrument, _ float64) market.Outcome {
			if step%2 == 0 {
				return market.Win
			}
			return market.Loss
		})
		assert.Equal(t, market.Loss, src.NextOutcome(1, market.Normal, 1.0))
		assert.Equal(t, market.Win, src.NextOutcome(2, market.Normal, 1.0))
	})
}
