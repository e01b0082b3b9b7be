package session

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/apollo/journal"
	"github.com/rustyeddy/apollo/market"
	"github.com/rustyeddy/apollo/pkg/id"
	"github.com/rustyeddy/apollo/stake"
)

// State is the mutable per-session state, owned exclusively by the Runner.
// While no win occurs, AccumulatedLoss == -Balance after every step.
type State struct {
	Balance         float64
	LossStreak      int
	AccumulatedLoss float64
}

// BetRecord is one immutable ledger entry, appended after each step.
type BetRecord struct {
	Step                 int
	Instrument           market.Instrument
	Stake                float64
	Outcome              market.Outcome
	BalanceAfter         float64
	AccumulatedLossAfter float64
}

type Status string

const (
	StoppedOut      Status = "STOPPED_OUT"
	MaxStepsReached Status = "MAX_STEPS_REACHED"
)

// Result is the terminal report of a run.
type Result struct {
	RunID         string
	Status        Status
	FinalBalance  float64
	TotalInvested float64 // sum of all stakes placed
	Steps         int
	Start         time.Time
	End           time.Time
}

// Runner drives the step loop: ask the policy for the next bet, apply the
// outcome, append a ledger entry, check termination. It is single-use.
type Runner struct {
	cfg    Config
	policy stake.Policy
	source OutcomeSource
	j      journal.Journal // optional; nil disables recording

	runID  string
	state  State
	ledger []BetRecord
	done   bool
}

// NewRunner validates the config and wires the collaborators. A nil journal
// is allowed; a nil outcome source is not.
func NewRunner(cfg Config, source OutcomeSource, j journal.Journal) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("session: outcome source is required")
	}

	return &Runner{
		cfg: cfg,
		policy: stake.Policy{
			BaseStake:      cfg.BaseStake,
			ProfitMargin:   cfg.Mode.ProfitMargin(),
			PayoutRecovery: cfg.PayoutRecovery,
			MinStake:       market.Instruments[market.Recovery].MinStake,
		},
		source: source,
		j:      j,
		runID:  id.New(),
	}, nil
}

func (r *Runner) RunID() string { return r.runID }

// State returns a copy of the current session state.
func (r *Runner) State() State { return r.state }

// Ledger returns a copy of the bet records appended so far.
func (r *Runner) Ledger() []BetRecord {
	out := make([]BetRecord, len(r.ledger))
	copy(out, r.ledger)
	return out
}

// Run executes the session until the stop loss is crossed or the step cap
// is reached, whichever comes first.
func (r *Runner) Run() (Result, error) {
	if r.done {
		return Result{}, fmt.Errorf("session: run %s already executed", r.runID)
	}
	r.done = true

	start := time.Now()
	var invested float64
	var status Status
	steps := 0

	for step := 1; step <= r.cfg.MaxSteps; step++ {
		dec := r.policy.Decide(r.state.LossStreak, r.state.AccumulatedLoss)
		outcome := r.source.NextOutcome(step, dec.Instrument, dec.Stake)

		r.apply(dec, outcome)
		invested += dec.Stake
		steps = step

		rec := BetRecord{
			Step:                 step,
			Instrument:           dec.Instrument,
			Stake:                dec.Stake,
			Outcome:              outcome,
			BalanceAfter:         r.state.Balance,
			AccumulatedLossAfter: r.state.AccumulatedLoss,
		}
		r.ledger = append(r.ledger, rec)

		if r.j != nil {
			if err := r.j.RecordBet(journal.BetRecord{
				RunID:                r.runID,
				Step:                 rec.Step,
				Instrument:           rec.Instrument,
				Stake:                rec.Stake,
				Outcome:              rec.Outcome,
				BalanceAfter:         rec.BalanceAfter,
				AccumulatedLossAfter: rec.AccumulatedLossAfter,
			}); err != nil {
				return Result{}, fmt.Errorf("record bet: %w", err)
			}
		}

		// Stop loss is evaluated first; the step that crossed it stays in
		// the ledger, so the final balance may overshoot the threshold.
		if math.Abs(r.state.Balance) >= r.cfg.StopLoss {
			status = StoppedOut
			break
		}
	}

	if status == "" {
		status = MaxStepsReached
	}

	res := Result{
		RunID:         r.runID,
		Status:        status,
		FinalBalance:  r.state.Balance,
		TotalInvested: invested,
		Steps:         steps,
		Start:         start,
		End:           time.Now(),
	}

	if r.j != nil {
		if err := r.j.RecordSession(journal.SessionRecord{
			RunID:         res.RunID,
			Mode:          string(r.cfg.Mode),
			StopLoss:      r.cfg.StopLoss,
			BaseStake:     r.cfg.BaseStake,
			Status:        string(res.Status),
			FinalBalance:  res.FinalBalance,
			TotalInvested: res.TotalInvested,
			Steps:         res.Steps,
			StartTime:     res.Start,
			EndTime:       res.End,
		}); err != nil {
			return Result{}, fmt.Errorf("record session: %w", err)
		}
	}

	return res, nil
}

// apply books one outcome into the state. A loss extends the streak, a win
// pays out at the instrument's rate and resets the streak and the
// accumulated loss.
func (r *Runner) apply(dec stake.Decision, outcome market.Outcome) {
	if outcome == market.Win {
		r.state.Balance += dec.Stake * r.cfg.PayoutRate(dec.Instrument)
		r.state.AccumulatedLoss = 0
		r.state.LossStreak = 0
		return
	}

	r.state.Balance -= dec.Stake
	r.state.AccumulatedLoss += dec.Stake
	r.state.LossStreak++
}
