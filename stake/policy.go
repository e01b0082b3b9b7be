package stake

// Streak tiers:
// 0 -> Normal at base stake
// 1 -> Normal at base stake (retry, recovery not engaged yet)
// >=2 -> Recovery, sized to win back the whole loss run plus the margin

import (
	"math"

	"github.com/rustyeddy/apollo/market"
)

// Policy holds the staking parameters for one session. It has no state of
// its own; the runner passes the current streak and accumulated loss in on
// every call, so the recovery stake recomputes as losses compound.
type Policy struct {
	BaseStake      float64
	ProfitMargin   float64 // 0.02 conservative, 0.15 aggressive
	PayoutRecovery float64 // profit per unit staked on the recovery contract
	MinStake       float64 // minimum tradable unit, 0.35
}

// Decision is the policy's answer for a single step.
type Decision struct {
	Instrument market.Instrument
	Stake      float64
}

const recoveryThreshold = 2

// Decide returns the instrument and stake for the next bet given the
// current loss streak and the loss accumulated since the streak began.
func (p Policy) Decide(streak int, accumulatedLoss float64) Decision {
	if streak < recoveryThreshold {
		return Decision{Instrument: market.Normal, Stake: p.BaseStake}
	}
	return Decision{
		Instrument: market.Recovery,
		Stake:      RecoveryStake(accumulatedLoss, p.ProfitMargin, p.PayoutRecovery, p.MinStake),
	}
}

// InRecovery reports whether the policy would place a recovery bet at the
// given streak.
func (p Policy) InRecovery(streak int) bool {
	return streak >= recoveryThreshold
}

// RecoveryStake sizes a bet so that a win returns the accumulated loss plus
// the profit margin. The result is rounded to cents and floored at the
// minimum tradable unit; both adjustments are load-bearing for matching
// reference ledgers.
func RecoveryStake(accumulatedLoss, profitMargin, payout, minStake float64) float64 {
	target := accumulatedLoss * (1 + profitMargin)
	s := roundCents(target / payout)
	if s < minStake {
		s = minStake
	}
	return s
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
